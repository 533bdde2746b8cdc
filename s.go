package geo
import "math"
type Latlong struct{ Lat, Long float64 }
func (a Latlong) DistKM(b Latlong) float64 {
	r := math.Pi / 180
	dlat, dlng := (b.Lat-a.Lat)*r, (b.Long-a.Long)*r
	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(a.Lat*r)*math.Cos(b.Lat*r)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * 6371 * math.Asin(math.Sqrt(h))
}
func (a Latlong) InterpolateTo(b Latlong, f float64) Latlong { return Latlong{a.Lat + (b.Lat-a.Lat)*f, a.Long + (b.Long-a.Long)*f} }
