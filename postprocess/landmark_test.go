package postprocess

import (
	"math"
	"reflect"
	"testing"
)

// almostEqual checks if two float32 values are approximately equal
func almostEqual(a, b, tolerance float32) bool {
	return float32(math.Abs(float64(a)-float64(b))) <= tolerance
}

// TestMapLandmarksThreshold tests the confidence threshold filter keeps
// scores at or above the threshold and drops the rest
func TestMapLandmarksThreshold(t *testing.T) {

	poly := []NormalizedVertex{
		{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.1}, {X: 0.2, Y: 0.2}, {X: 0.1, Y: 0.2},
	}

	tests := []struct {
		name      string
		threshold float32
		score     float32
		kept      bool
	}{
		{"above threshold", 0.2, 0.9, true},
		{"equal threshold kept", 0.2, 0.2, true},
		{"below threshold", 0.2, 0.19, false},
		{"zero threshold keeps all", 0.0, 0.0, true},
		{"max threshold drops below one", 1.0, 0.99, false},
		{"max threshold keeps one", 1.0, 1.0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			proc := NewLandmark(LandmarkParams{ConfThreshold: tc.threshold})

			raw := []RawLandmark{
				{Description: "tower", Score: tc.score, Polygon: poly},
			}

			results := proc.MapLandmarks(raw, 640, 480)

			if got := len(results) == 1; got != tc.kept {
				t.Errorf("score %f with threshold %f: kept=%v, want %v",
					tc.score, tc.threshold, got, tc.kept)
			}
		})
	}
}

// TestMapLandmarksScaling tests normalized vertices are scaled exactly by
// the image dimensions with vertex order preserved
func TestMapLandmarksScaling(t *testing.T) {

	proc := NewLandmark(LandmarkDefaultParams())

	raw := []RawLandmark{
		{
			Description: "bridge",
			Score:       0.75,
			Polygon: []NormalizedVertex{
				{X: 0.0, Y: 0.0},
				{X: 1.0, Y: 0.0},
				{X: 1.0, Y: 1.0},
				{X: 0.25, Y: 0.5},
			},
		},
	}

	results := proc.MapLandmarks(raw, 800, 600)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	want := []Point{
		{X: 0, Y: 0},
		{X: 800, Y: 0},
		{X: 800, Y: 600},
		{X: 200, Y: 300},
	}

	if !reflect.DeepEqual(results[0].Polygon, want) {
		t.Errorf("polygon = %v, want %v", results[0].Polygon, want)
	}
}

// TestMapLandmarksOrdering tests input ordering of landmarks survives the
// threshold filter without sorting by confidence
func TestMapLandmarksOrdering(t *testing.T) {

	proc := NewLandmark(LandmarkParams{ConfThreshold: 0.5})

	poly := []NormalizedVertex{{X: 0.5, Y: 0.5}}

	raw := []RawLandmark{
		{Description: "first", Score: 0.6, Polygon: poly},
		{Description: "dropped", Score: 0.4, Polygon: poly},
		{Description: "second", Score: 0.9, Polygon: poly},
		{Description: "third", Score: 0.5, Polygon: poly},
	}

	results := proc.MapLandmarks(raw, 100, 100)

	wantLabels := []string{"first", "second", "third"}

	if len(results) != len(wantLabels) {
		t.Fatalf("expected %d results, got %d", len(wantLabels), len(results))
	}

	for i, want := range wantLabels {
		if results[i].Label != want {
			t.Errorf("result %d label = %s, want %s", i, results[i].Label, want)
		}
	}
}

// TestMapLandmarksIdempotent tests mapping the same response twice yields
// identical output
func TestMapLandmarksIdempotent(t *testing.T) {

	proc := NewLandmark(LandmarkParams{ConfThreshold: 0.3})

	raw := []RawLandmark{
		{
			Description: "arch",
			Score:       0.82,
			Polygon: []NormalizedVertex{
				{X: 0.13, Y: 0.27}, {X: 0.61, Y: 0.27}, {X: 0.61, Y: 0.88},
			},
			Locations: []LatLng{{Latitude: 48.85, Longitude: 2.29}},
		},
		{Description: "noise", Score: 0.1},
	}

	first := proc.MapLandmarks(raw, 1920, 1080)
	second := proc.MapLandmarks(raw, 1920, 1080)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated mapping differs: %v vs %v", first, second)
	}
}

// TestMapLandmarksScenario tests the full mapping of a mixed response where
// one landmark passes the threshold and one is dropped
func TestMapLandmarksScenario(t *testing.T) {

	proc := NewLandmark(LandmarkParams{ConfThreshold: 0.2})

	raw := []RawLandmark{
		{
			Description: "arc",
			Score:       0.9,
			Polygon: []NormalizedVertex{
				{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.1},
				{X: 0.2, Y: 0.2}, {X: 0.1, Y: 0.2},
			},
		},
		{
			Description: "low",
			Score:       0.1,
			Polygon: []NormalizedVertex{
				{X: 0.5, Y: 0.5}, {X: 0.6, Y: 0.5}, {X: 0.6, Y: 0.6},
			},
		},
	}

	results := proc.MapLandmarks(raw, 1000, 500)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	got := results[0]

	if got.Label != "arc" {
		t.Errorf("label = %s, want arc", got.Label)
	}

	if !almostEqual(got.Confidence, 0.9, 1e-6) {
		t.Errorf("confidence = %f, want 0.9", got.Confidence)
	}

	wantPoly := []Point{
		{X: 100, Y: 50}, {X: 200, Y: 50}, {X: 200, Y: 100}, {X: 100, Y: 100},
	}

	if !reflect.DeepEqual(got.Polygon, wantPoly) {
		t.Errorf("polygon = %v, want %v", got.Polygon, wantPoly)
	}

	wantBox := BoxRect{Left: 100, Top: 50, Right: 200, Bottom: 100}

	if got.Box != wantBox {
		t.Errorf("box = %v, want %v", got.Box, wantBox)
	}
}

// TestMapLandmarksEmpty tests an empty response maps to an empty result list
func TestMapLandmarksEmpty(t *testing.T) {

	proc := NewLandmark(LandmarkDefaultParams())

	results := proc.MapLandmarks(nil, 640, 480)

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

// TestPolygonBox tests bounding box derivation from polygon extents
func TestPolygonBox(t *testing.T) {

	tests := []struct {
		name    string
		polygon []Point
		want    BoxRect
	}{
		{
			"quad",
			[]Point{{X: 10, Y: 40}, {X: 90, Y: 35}, {X: 85, Y: 120}, {X: 12, Y: 118}},
			BoxRect{Left: 10, Top: 35, Right: 90, Bottom: 120},
		},
		{
			"single point",
			[]Point{{X: 7, Y: 3}},
			BoxRect{Left: 7, Top: 3, Right: 7, Bottom: 3},
		},
		{
			"empty",
			nil,
			BoxRect{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := polygonBox(tc.polygon); got != tc.want {
				t.Errorf("polygonBox = %v, want %v", got, tc.want)
			}
		})
	}
}
