package postprocess

import (
	"gonum.org/v1/gonum/floats"
)

// NormalizedVertex is a polygon vertex expressed as a fraction of the image
// width and height, in the range [0,1]
type NormalizedVertex struct {
	X float32
	Y float32
}

// LatLng is a geographic location of a detected landmark
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawLandmark is a single landmark annotation as returned by the remote
// service, before threshold filtering and pixel mapping
type RawLandmark struct {
	// Description is the landmark name
	Description string
	// Score is the detection confidence in the range [0,1]
	Score float32
	// Polygon is the bounding polygon in normalized coordinates, vertex
	// order preserved from the service response
	Polygon []NormalizedVertex
	// Locations are the geographic locations of the landmark, when known
	Locations []LatLng
}

// Landmark defines the struct for landmark detection response post
// processing
type Landmark struct {
	// Params are the post processing configuration parameters
	Params LandmarkParams
}

// LandmarkParams defines the struct containing the landmark parameters to
// use for post processing operations
type LandmarkParams struct {
	// ConfThreshold is the minimum confidence score required for a landmark
	// to be retained.  A score equal to the threshold is kept.
	ConfThreshold float32
}

// LandmarkDefaultParams returns an instance of LandmarkParams configured
// with default values
func LandmarkDefaultParams() LandmarkParams {
	return LandmarkParams{
		ConfThreshold: 0.2,
	}
}

// NewLandmark returns an instance of the landmark post processor
func NewLandmark(p LandmarkParams) *Landmark {
	return &Landmark{
		Params: p,
	}
}

// Point is a polygon vertex in pixel space
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// BoxRect are the dimensions of the bounding box enclosing a detected
// landmark's polygon
type BoxRect struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// LandmarkResult defines the attributes of a single landmark detected
type LandmarkResult struct {
	// Label is the landmark name returned by the service
	Label string `json:"label"`
	// Confidence is the detection score of the landmark
	Confidence float32 `json:"confidence"`
	// Polygon is the bounding polygon in pixel coordinates, winding order
	// preserved from the service response
	Polygon []Point `json:"polygon"`
	// Box is the axis aligned bounding box enclosing the polygon
	Box BoxRect `json:"box"`
	// Locations are the geographic locations of the landmark, when known
	Locations []LatLng `json:"locations,omitempty"`
}

// MapLandmarks converts raw landmark annotations into pixel space results.
// Landmarks scoring below the confidence threshold are dropped, all others
// have their normalized vertices scaled by the image dimensions.  Input
// ordering is preserved, results are not sorted by confidence.
func (l *Landmark) MapLandmarks(raw []RawLandmark,
	width, height int) []LandmarkResult {

	results := make([]LandmarkResult, 0, len(raw))

	for _, r := range raw {

		if r.Score < l.Params.ConfThreshold {
			// skip detections with lower score
			continue
		}

		next := LandmarkResult{
			Label:      r.Description,
			Confidence: r.Score,
			Polygon:    make([]Point, 0, len(r.Polygon)),
			Locations:  r.Locations,
		}

		for _, v := range r.Polygon {
			next.Polygon = append(next.Polygon, Point{
				X: v.X * float32(width),
				Y: v.Y * float32(height),
			})
		}

		next.Box = polygonBox(next.Polygon)

		results = append(results, next)
	}

	return results
}

// polygonBox returns the axis aligned bounding box of the polygon vertices
func polygonBox(polygon []Point) BoxRect {

	if len(polygon) == 0 {
		return BoxRect{}
	}

	xs := make([]float64, len(polygon))
	ys := make([]float64, len(polygon))

	for i, pt := range polygon {
		xs[i] = float64(pt.X)
		ys[i] = float64(pt.Y)
	}

	return BoxRect{
		Left:   int(floats.Min(xs)),
		Top:    int(floats.Min(ys)),
		Right:  int(floats.Max(xs)),
		Bottom: int(floats.Max(ys)),
	}
}
