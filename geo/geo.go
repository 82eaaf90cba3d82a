// Package geo provides the great-circle and course math used by the ships.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	ktToKmh = 1.852
	ktToMps = 0.514444
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// KtToKmh converts a speed in knots to km/h.
func KtToKmh(kt float64) float64 {
	return kt * ktToKmh
}

// KtToMps converts a speed in knots to m/s.
func KtToMps(kt float64) float64 {
	return kt * ktToMps
}

// MpsToKt converts a speed in m/s to knots.
func MpsToKt(mps float64) float64 {
	return mps / ktToMps
}

// Distance returns the great-circle distance between a and b in km.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(s)))
}

// InitialBearing returns the initial great-circle course from a to b,
// in degrees clockwise from north, normalized to [0, 360).
func InitialBearing(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return normalizeDeg(degrees(math.Atan2(y, x)))
}

// RelativeDirection returns the direction from origin to target measured
// against due north, counterclockwise positive, in degrees within
// [-180, 180]. It works on flat lat/lon vectors: the cross product picks
// the turning sense and the dot product the magnitude.
func RelativeDirection(origin, target Point) float64 {
	// Reference point 10 degrees of latitude due north of the origin.
	x1, y1 := origin.Lat+10, origin.Lon
	x2, y2 := origin.Lat, origin.Lon
	x3, y3 := target.Lat, target.Lon

	cross := (x1-x2)*(y3-y2) - (y1-y2)*(x3-x2)
	dot := (x1-x2)*(x3-x2) + (y1-y2)*(y3-y2)
	n12 := math.Hypot(x1-x2, y1-y2)
	n32 := math.Hypot(x3-x2, y3-y2)

	var dir float64
	switch {
	case cross == 0 && dot < 0:
		dir = math.Pi
	case cross == 0:
		dir = 0
	case cross < 0:
		dir = -math.Acos(dot / (n12 * n32))
	default:
		dir = math.Acos(dot / (n12 * n32))
	}
	return degrees(dir)
}

// Advance moves from pos toward target by speedKmh over stepHours, linearly
// in lat/lon. The position snaps to the target when it is reachable within
// the step. A zero-distance leg stays in place.
func Advance(pos, target Point, speedKmh float64, stepHours float64) Point {
	dist := Distance(pos, target)
	if dist == 0 {
		return pos
	}
	ratio := speedKmh * stepHours / dist
	if ratio >= 1 {
		return target
	}
	if ratio <= 0 {
		return pos
	}
	return Point{
		Lat: pos.Lat + (target.Lat-pos.Lat)*ratio,
		Lon: pos.Lon + (target.Lon-pos.Lon)*ratio,
	}
}

// Offset returns the point reached from p by travelling distKm on the given
// bearing (degrees clockwise from north) along the great circle.
func Offset(p Point, bearingDeg, distKm float64) Point {
	lat1 := radians(p.Lat)
	lon1 := radians(p.Lon)
	brg := radians(bearingDeg)
	d := distKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Point{Lat: degrees(lat2), Lon: degrees(lon2)}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
