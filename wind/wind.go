// Package wind loads monthly ERA5 surface-wind grids and answers
// nearest-point lookups for the ships.
package wind

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Sample is one grid point of the monthly surface-wind CSV.
type Sample struct {
	Lat float64 `csv:"LAT"`
	Lon float64 `csv:"LON"`
	U10 float64 `csv:"U10_E+_W-[m/s]"`
	V10 float64 `csv:"V10_N+_S-[m/s]"`
}

// Field is one month's wind grid.
type Field struct {
	samples []Sample
}

// LoadField reads a monthly wind CSV.
func LoadField(path string) (*Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wind data: %w", err)
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("parsing wind data %s: %w", path, err)
	}
	return NewField(samples), nil
}

// NewField wraps a slice of samples.
func NewField(samples []Sample) *Field {
	return &Field{samples: samples}
}

// Nearest returns the u/v components at the grid point closest to the
// position by |dLat|+|dLon|. A nil or empty field reads as calm.
func (f *Field) Nearest(lat, lon float64) (u, v float64) {
	if f == nil || len(f.samples) == 0 {
		return 0, 0
	}
	best := 0
	bestDiff := math.Inf(1)
	for i, s := range f.samples {
		diff := math.Abs(lat-s.Lat) + math.Abs(lon-s.Lon)
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return f.samples[best].U10, f.samples[best].V10
}

// Loader fetches the wind field for a given year and month from a directory
// of monthly CSVs.
type Loader struct {
	Dir     string
	Pattern string // fmt pattern taking year, month
}

// Load reads the field for year/month.
func (l *Loader) Load(year int, month int) (*Field, error) {
	name := fmt.Sprintf(l.Pattern, year, month)
	return LoadField(filepath.Join(l.Dir, name))
}
