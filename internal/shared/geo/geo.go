package geo

import sgeo "github.com/skypies/geo"

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) latlong() sgeo.Latlong {
	return sgeo.Latlong{Lat: p.Lat, Long: p.Lng}
}

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	return Point{lat1, lng1}.latlong().DistKM(Point{lat2, lng2}.latlong())
}

// PathLengthKm is the summed length of consecutive segments.
func PathLengthKm(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].latlong().DistKM(path[i].latlong())
	}
	return total
}

// PointAlong returns the position at fraction (0..1) of the path's length.
// Fractions outside the range are clamped to the path's ends.
func PointAlong(path []Point, fraction float64) Point {
	if len(path) == 0 {
		return Point{}
	}
	if fraction <= 0 || len(path) == 1 {
		return path[0]
	}
	if fraction >= 1 {
		return path[len(path)-1]
	}

	target := PathLengthKm(path) * fraction
	walked := 0.0
	for i := 1; i < len(path); i++ {
		seg := path[i-1].latlong().DistKM(path[i].latlong())
		if seg > 0 && walked+seg >= target {
			ll := path[i-1].latlong().InterpolateTo(path[i].latlong(), (target-walked)/seg)
			return Point{Lat: ll.Lat, Lng: ll.Long}
		}
		walked += seg
	}
	return path[len(path)-1]
}
