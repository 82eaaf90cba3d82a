// Package storm manages typhoon best-track data, the set of typhoons active
// at a simulation time, and track forecasting.
package storm

import (
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

// TrackPoint is one best-track fix at the simulation interval.
type TrackPoint struct {
	Unixtime int64   `csv:"unixtime"`
	Number   int     `csv:"TYPHOON NUMBER"`
	Lat      float64 `csv:"LAT"`
	Lon      float64 `csv:"LON"`
}

// TrackSet holds the full best-track dataset indexed for time queries.
type TrackSet struct {
	byTime   map[int64][]TrackPoint
	byNumber map[int][]TrackPoint // each slice sorted by time
	genesis  map[int]int64        // first fix per typhoon number
	lastFix  map[int]int64        // final fix per typhoon number
}

// LoadTracks reads a best-track CSV.
func LoadTracks(path string) (*TrackSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening typhoon data: %w", err)
	}
	defer f.Close()

	var points []TrackPoint
	if err := gocsv.UnmarshalFile(f, &points); err != nil {
		return nil, fmt.Errorf("parsing typhoon data %s: %w", path, err)
	}
	return NewTrackSet(points), nil
}

// NewTrackSet indexes a slice of fixes.
func NewTrackSet(points []TrackPoint) *TrackSet {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Unixtime != points[j].Unixtime {
			return points[i].Unixtime < points[j].Unixtime
		}
		return points[i].Number < points[j].Number
	})

	ts := &TrackSet{
		byTime:   make(map[int64][]TrackPoint),
		byNumber: make(map[int][]TrackPoint),
		genesis:  make(map[int]int64),
		lastFix:  make(map[int]int64),
	}
	for _, p := range points {
		ts.byTime[p.Unixtime] = append(ts.byTime[p.Unixtime], p)
		ts.byNumber[p.Number] = append(ts.byNumber[p.Number], p)
		if g, ok := ts.genesis[p.Number]; !ok || p.Unixtime < g {
			ts.genesis[p.Number] = p.Unixtime
		}
		if l, ok := ts.lastFix[p.Number]; !ok || p.Unixtime > l {
			ts.lastFix[p.Number] = p.Unixtime
		}
	}
	return ts
}

// At returns the fixes valid at the given time.
func (ts *TrackSet) At(unix int64) []TrackPoint {
	return ts.byTime[unix]
}

// Track returns all fixes of one typhoon in time order.
func (ts *TrackSet) Track(number int) []TrackPoint {
	return ts.byNumber[number]
}

// GenesisTime returns the first fix time of a typhoon, or ok=false when the
// number is unknown.
func (ts *TrackSet) GenesisTime(number int) (int64, bool) {
	t, ok := ts.genesis[number]
	return t, ok
}

// LastFixTime returns the final fix time of a typhoon.
func (ts *TrackSet) LastFixTime(number int) (int64, bool) {
	t, ok := ts.lastFix[number]
	return t, ok
}

// GenesisTimes returns the genesis time per typhoon number.
func (ts *TrackSet) GenesisTimes() map[int]int64 {
	out := make(map[int]int64, len(ts.genesis))
	for k, v := range ts.genesis {
		out[k] = v
	}
	return out
}
