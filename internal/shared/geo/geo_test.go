package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Agira Hall to E Block on the Thapar campus is a little over 0.7 km.
	d := HaversineKm(30.351606, 76.364327, 30.353463, 76.372207)
	if d < 0.6 || d > 0.9 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestPathLengthKm(t *testing.T) {
	path := []Point{{0, 0}, {0, 1}, {0, 2}}
	total := PathLengthKm(path)
	single := HaversineKm(0, 0, 0, 1)
	if math.Abs(total-2*single) > 1e-6 {
		t.Fatalf("expected two equal segments, got %v", total)
	}
	if PathLengthKm(path[:1]) != 0 {
		t.Fatalf("expected zero length for a single point")
	}
}

func TestPointAlongEnds(t *testing.T) {
	path := []Point{{30.35, 76.36}, {30.36, 76.37}}
	if got := PointAlong(path, 0); got != path[0] {
		t.Fatalf("expected start, got %v", got)
	}
	if got := PointAlong(path, -1); got != path[0] {
		t.Fatalf("expected clamp to start, got %v", got)
	}
	if got := PointAlong(path, 1); got != path[1] {
		t.Fatalf("expected end, got %v", got)
	}
	if got := PointAlong(path, 3); got != path[1] {
		t.Fatalf("expected clamp to end, got %v", got)
	}
	if got := PointAlong(nil, 0.5); got != (Point{}) {
		t.Fatalf("expected zero point for empty path")
	}
}

func TestPointAlongMidpoint(t *testing.T) {
	path := []Point{{0, 0}, {0, 1}, {0, 2}}
	mid := PointAlong(path, 0.5)
	if math.Abs(mid.Lat) > 1e-6 || math.Abs(mid.Lng-1) > 1e-3 {
		t.Fatalf("expected midpoint near (0,1), got %v", mid)
	}

	quarter := PointAlong(path, 0.25)
	if math.Abs(quarter.Lng-0.5) > 1e-3 {
		t.Fatalf("expected quarter point near lng 0.5, got %v", quarter)
	}
}
