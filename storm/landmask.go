package storm

// latLonBand is one latitude band with the minimum longitude a point must
// reach to clear the coastline east of the Japanese archipelago.
type latLonBand struct {
	latMin, latMax float64
	lonMin         float64
}

// Piecewise envelope of the coastline from the Philippines up through the
// Kurils. A forecast point inside any band counts as open sea.
var openSeaBands = []latLonBand{
	{0, 13, 127.5},
	{13, 15, 125},
	{15, 24, 123},
	{24, 26, 126},
	{26, 28, 130.1},
	{28, 32.2, 132.4},
	{32.2, 34, 137.2},
	{34, 41.2, 143},
	{41.2, 44, 149},
	{44, 50, 156},
}

// OverOpenSea reports whether a position is in open water reachable by the
// generation ship. Positions west of the coastline envelope are excluded
// from target selection.
func OverOpenSea(lat, lon float64) bool {
	if lat >= 50 {
		return true
	}
	for _, b := range openSeaBands {
		if lat >= b.latMin && lat <= b.latMax && lon >= b.lonMin {
			return true
		}
	}
	return false
}
