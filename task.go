package landmark

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ikomia-hub/go-vision-landmark/postprocess"
	"github.com/ikomia-hub/go-vision-landmark/render"
)

// Result holds the output of one detection run
type Result struct {
	// Detections are the landmarks retained after threshold filtering,
	// mapped to pixel space
	Detections []postprocess.LandmarkResult
	// Overlay is a copy of the input image with the detection polygons and
	// labels drawn on it.  Caller must Close it when finished.
	Overlay gocv.Mat
}

// JSON exports the structured detections
func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r.Detections)
}

// Task is the landmark detection algorithm.  It resolves credentials, calls
// the remote service, maps the response and renders the overlay for one
// image per run.  Runs are serialized, a Task is either idle or running.
type Task struct {
	// Params are the task parameters, immutable once a run starts
	Params Params

	// annotator is lazily created on first run when none was injected
	annotator Annotator
	processor *postprocess.Landmark

	mu sync.Mutex
}

// NewTask returns a detection task using the given parameters.  The remote
// client is created on first run from the resolved credentials.
func NewTask(p Params) (*Task, error) {
	return newTask(p, nil)
}

// NewTaskWithAnnotator returns a detection task running against the supplied
// Annotator instead of constructing a Vision API client
func NewTaskWithAnnotator(p Params, a Annotator) (*Task, error) {
	return newTask(p, a)
}

func newTask(p Params, a Annotator) (*Task, error) {

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Task{
		Params:    p,
		annotator: a,
		processor: postprocess.NewLandmark(postprocess.LandmarkParams{
			ConfThreshold: p.ConfThreshold,
		}),
	}, nil
}

// Run executes one detection on the given image.  Credentials are resolved
// before any network activity, any failure aborts the run with no output.
// A run that finds zero landmarks succeeds with an empty detection list and
// an unmodified overlay.
func (t *Task) Run(ctx context.Context, img *Image) (*Result, error) {

	t.mu.Lock()
	defer t.mu.Unlock()

	creds, err := ResolveCredentials(t.Params.CredentialsFile)

	if err != nil {
		return nil, err
	}

	if t.annotator == nil {
		client, err := NewClient(ctx, creds)

		if err != nil {
			return nil, err
		}

		t.annotator = client
	}

	raw, err := t.annotator.DetectLandmarks(ctx, img, t.Params.MaxResults)

	if err != nil {
		return nil, fmt.Errorf("landmark detection failed: %w", err)
	}

	detections := t.processor.MapLandmarks(raw, img.Width(), img.Height())

	overlay := img.Mat().Clone()
	render.Landmarks(&overlay, detections, render.DefaultFont(), 2)

	return &Result{
		Detections: detections,
		Overlay:    overlay,
	}, nil
}

// Close releases the remote client if one was created
func (t *Task) Close() error {

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.annotator == nil {
		return nil
	}

	err := t.annotator.Close()
	t.annotator = nil

	return err
}
