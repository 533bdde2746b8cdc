package demo

import (
	"fmt"

	"backend-erickshaw/internal/shared/geo"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// GeoJSON read models for map clients. Coordinates are (lng, lat).

func pointGeometry(lat, lng float64) (*geom.Point, error) {
	return geom.NewPoint(geom.XY).SetCoords(geom.Coord{lng, lat})
}

func lineGeometry(route []geo.Point) (*geom.LineString, error) {
	coords := make([]geom.Coord, 0, len(route))
	for _, p := range route {
		coords = append(coords, geom.Coord{p.Lng, p.Lat})
	}
	return geom.NewLineString(geom.XY).SetCoords(coords)
}

func HotspotCollection() (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	for _, h := range hotspots {
		pt, err := pointGeometry(h.Lat, h.Lng)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       h.ID,
			Geometry: pt,
			Properties: map[string]interface{}{
				"kind": "hotspot",
				"name": h.Name,
			},
		})
	}
	return fc, nil
}

// MarkerCollection places students at their pickup hotspot and drivers at
// their live trip position when moving, otherwise at their parked coordinate.
func (s *Store) MarkerCollection() (*geojson.FeatureCollection, error) {
	snap := s.Snapshot()

	livePosition := map[string]geo.Point{}
	for _, t := range snap.Trips {
		if t.Status == TripStarted && t.CurrentPosition != nil {
			livePosition[t.DriverID] = *t.CurrentPosition
		}
	}

	fc := &geojson.FeatureCollection{}
	for _, st := range snap.Students {
		h, ok := HotspotByID(st.Pickup)
		if !ok {
			continue
		}
		pt, err := pointGeometry(h.Lat, h.Lng)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       st.ID,
			Geometry: pt,
			Properties: map[string]interface{}{
				"kind":    "student",
				"name":    st.Name,
				"status":  string(st.Status),
				"color":   st.Color,
				"pool_id": st.PoolID,
			},
		})
	}
	for _, d := range snap.Drivers {
		lat, lng := d.Lat, d.Lng
		if pos, ok := livePosition[d.ID]; ok {
			lat, lng = pos.Lat, pos.Lng
		}
		pt, err := pointGeometry(lat, lng)
		if err != nil {
			return nil, err
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       d.ID,
			Geometry: pt,
			Properties: map[string]interface{}{
				"kind":             "driver",
				"name":             d.Name,
				"plate":            d.Plate,
				"status":           string(d.Status),
				"assigned_pool_id": d.AssignedPoolID,
			},
		})
	}
	return fc, nil
}

func (s *Store) TripFeature(id string) (*geojson.Feature, error) {
	t, ok := s.Trip(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	line, err := lineGeometry(t.Route)
	if err != nil {
		return nil, err
	}
	props := map[string]interface{}{
		"pool_id":   t.PoolID,
		"driver_id": t.DriverID,
		"progress":  t.Progress,
		"status":    string(t.Status),
		"length_km": geo.PathLengthKm(t.Route),
	}
	if t.CurrentPosition != nil {
		props["current_position"] = []float64{t.CurrentPosition.Lng, t.CurrentPosition.Lat}
	}
	return &geojson.Feature{ID: t.ID, Geometry: line, Properties: props}, nil
}
