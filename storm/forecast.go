package storm

import (
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/mitsuyukiLab/tpg-ship-sim/geo"
)

// ForecastPoint is one forecast fix for an active typhoon.
type ForecastPoint struct {
	ValidUnix int64
	Number    int
	Lat       float64 // forecast latitude
	Lon       float64 // forecast longitude
}

// Forecaster produces track forecasts for the typhoons the catalog holds
// active, plus those forming inside the forecast window. Positional error
// grows linearly with lead time at ErrorSlopeKmPerH; the offset direction
// is drawn per (typhoon, valid time) from a seeded hash, so the forecast
// for a fix converges onto the truth as lead time shrinks and a run is
// fully reproducible.
type Forecaster struct {
	ForecastTimeHours int
	ErrorSlopeKmPerH  float64
	Seed              int64

	catalog *Catalog
}

// NewForecaster builds a forecaster over the active-typhoon catalog.
func NewForecaster(catalog *Catalog, forecastTimeHours int, errorSlopeKmPerH float64, seed int64) *Forecaster {
	return &Forecaster{
		ForecastTimeHours: forecastTimeHours,
		ErrorSlopeKmPerH:  errorSlopeKmPerH,
		Seed:              seed,
		catalog:           catalog,
	}
}

// CreateForecast returns the forecast fixes valid in (now, now+forecastTime],
// in time order. Fixes land on the simulation interval, so the earliest is
// one time step ahead. The catalog must have been advanced to now.
func (f *Forecaster) CreateForecast(now int64) []ForecastPoint {
	last := now + int64(f.ForecastTimeHours)*3600
	tracks := f.catalog.Tracks()

	numbers := make([]int, 0, 8)
	for _, p := range f.catalog.Active() {
		numbers = append(numbers, p.Number)
	}
	for num, genesis := range tracks.genesis {
		if genesis > now && genesis <= last {
			numbers = append(numbers, num)
		}
	}

	var src []TrackPoint
	for _, num := range numbers {
		for _, p := range tracks.Track(num) {
			if p.Unixtime > now && p.Unixtime <= last {
				src = append(src, p)
			}
		}
	}
	sort.Slice(src, func(i, j int) bool {
		if src[i].Unixtime != src[j].Unixtime {
			return src[i].Unixtime < src[j].Unixtime
		}
		return src[i].Number < src[j].Number
	})

	out := make([]ForecastPoint, 0, len(src))
	for _, p := range src {
		leadHours := float64(p.Unixtime-now) / 3600
		pos := f.perturb(p, leadHours)
		out = append(out, ForecastPoint{
			ValidUnix: p.Unixtime,
			Number:    p.Number,
			Lat:       pos.Lat,
			Lon:       pos.Lon,
		})
	}
	return out
}

// perturb displaces a fix by errorSlope*lead km on a hash-derived bearing.
func (f *Forecaster) perturb(p TrackPoint, leadHours float64) geo.Point {
	truth := geo.Point{Lat: p.Lat, Lon: p.Lon}
	dist := f.ErrorSlopeKmPerH * leadHours
	if dist <= 0 {
		return truth
	}
	rng := rand.New(rand.NewSource(f.fixSeed(p)))
	bearing := rng.Float64() * 360
	return geo.Offset(truth, bearing, dist)
}

func (f *Forecaster) fixSeed(p TrackPoint) int64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v int64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	put(f.Seed)
	put(int64(p.Number))
	put(p.Unixtime)
	return int64(h.Sum64())
}
