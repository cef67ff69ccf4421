package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used to turn miles into angular radii
const EarthRadiusMiles = 3963.2

// Point is a WGS84 coordinate
type Point struct {
	Latitude  float64
	Longitude float64
}

// MilesToRadians converts a surface distance to the angle it subtends at the Earth's centre
func MilesToRadians(miles float64) float64 {
	return miles / EarthRadiusMiles
}

// CentralAngle returns the great-circle angle between two points in radians (haversine formula)
func CentralAngle(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceMiles returns the great-circle distance between two points
func DistanceMiles(a, b Point) float64 {
	return CentralAngle(a, b) * EarthRadiusMiles
}

// Epsilon absorbs floating-point error at the circle boundary
const Epsilon = 1e-9

// WithinRadius reports whether p lies inside or on the spherical cap of the given angular radius around center
func WithinRadius(center, p Point, radians float64) bool {
	return CentralAngle(center, p) <= radians+Epsilon
}

// LatitudeSQL and LongitudeSQL read the stored point out of the jsonb location.
// The location index is built over exactly these expressions.
const (
	LatitudeSQL  = `(location->'coordinates'->>1)::float8`
	LongitudeSQL = `(location->'coordinates'->>0)::float8`
)

// HaversineSQL is the Postgres expression for the central angle between
// (?, ?) = (lat, lng) of the centre and the bootcamp location stored in jsonb.
// It binds the centre latitude twice and the centre longitude once, in that order: lat, lat, lng.
// least() keeps asin in its domain when rounding pushes the root past 1.
const HaversineSQL = `2 * asin(least(1.0, sqrt(
	power(sin((radians(` + LatitudeSQL + `) - radians(?)) / 2), 2) +
	cos(radians(?)) * cos(radians(` + LatitudeSQL + `)) *
	power(sin((radians(` + LongitudeSQL + `) - radians(?)) / 2), 2)
)))`

// Box is a latitude/longitude window in degrees.
// AllLongitudes is set when the window crosses a pole or the antimeridian,
// in which case MinLng and MaxLng carry no restriction.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	AllLongitudes  bool
}

// BoundingBox returns the smallest lat/lng window holding every point within
// the given angular radius of center
func BoundingBox(center Point, radians float64) Box {
	r := radians + Epsilon
	lat := center.Latitude * math.Pi / 180.0
	lng := center.Longitude * math.Pi / 180.0

	minLat, maxLat := lat-r, lat+r
	if minLat <= -math.Pi/2 || maxLat >= math.Pi/2 {
		return Box{
			MinLat:        math.Max(minLat, -math.Pi/2) * 180.0 / math.Pi,
			MaxLat:        math.Min(maxLat, math.Pi/2) * 180.0 / math.Pi,
			MinLng:        -180,
			MaxLng:        180,
			AllLongitudes: true,
		}
	}

	dLng := math.Asin(math.Min(1, math.Sin(r)/math.Cos(lat)))
	minLng, maxLng := lng-dLng, lng+dLng

	box := Box{
		MinLat: minLat * 180.0 / math.Pi,
		MaxLat: maxLat * 180.0 / math.Pi,
		MinLng: minLng * 180.0 / math.Pi,
		MaxLng: maxLng * 180.0 / math.Pi,
	}
	if box.MinLng < -180 || box.MaxLng > 180 {
		box.MinLng, box.MaxLng, box.AllLongitudes = -180, 180, true
	}
	return box
}

// Contains reports whether p lies inside the window
func (b Box) Contains(p Point) bool {
	if p.Latitude < b.MinLat || p.Latitude > b.MaxLat {
		return false
	}
	return b.AllLongitudes || (p.Longitude >= b.MinLng && p.Longitude <= b.MaxLng)
}
