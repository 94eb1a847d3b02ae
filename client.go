package landmark

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/ikomia-hub/go-vision-landmark/postprocess"
)

// Aliases for the response types defined in the postprocess package, so
// callers of the client do not need a second import.
type (
	RawLandmark      = postprocess.RawLandmark
	NormalizedVertex = postprocess.NormalizedVertex
	LatLng           = postprocess.LatLng
)

// Annotator issues a single landmark detection request per image.  It is the
// injected capability the detection task runs against, so tests can use a
// stub without a network dependency.
type Annotator interface {
	DetectLandmarks(ctx context.Context, img *Image, maxResults int) ([]RawLandmark, error)
	Close() error
}

// Client is an Annotator backed by the Google Cloud Vision API
type Client struct {
	ic *vision.ImageAnnotatorClient
	// CallOptions are applied to every annotation request, eg. gax retry or
	// timeout settings
	CallOptions []gax.CallOption
}

// NewClient opens an authenticated channel to the Vision service using the
// resolved credentials.  Connection lifecycle, retries and timeouts are
// owned by the SDK.
func NewClient(ctx context.Context, creds Credentials,
	opts ...option.ClientOption) (*Client, error) {

	useOpts := make([]option.ClientOption, 0, len(opts)+1)

	if creds.File != "" {
		useOpts = append(useOpts, option.WithCredentialsFile(creds.File))
	}

	useOpts = append(useOpts, opts...)

	ic, err := vision.NewImageAnnotatorClient(ctx, useOpts...)

	if err != nil {
		// the constructor parses the key file before any network traffic,
		// so a failure here is a credentials problem not a service one
		return nil, fmt.Errorf("%w: creating image annotator client: %v",
			ErrConfiguration, err)
	}

	return &Client{ic: ic}, nil
}

// DetectLandmarks encodes the image and issues exactly one landmark
// detection request.  A response with zero landmarks returns an empty slice
// and no error.
func (c *Client) DetectLandmarks(ctx context.Context, img *Image,
	maxResults int) ([]RawLandmark, error) {

	content, err := img.EncodeJPEG()

	if err != nil {
		return nil, err
	}

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: content},
		Features: []*visionpb.Feature{
			{
				Type:       visionpb.Feature_LANDMARK_DETECTION,
				MaxResults: int32(maxResults),
			},
		},
	}

	res, err := c.ic.AnnotateImage(ctx, req, c.CallOptions...)

	if err != nil {
		return nil, wrapRPCError(err)
	}

	// the batch call can succeed while the per image annotation failed
	if resErr := res.GetError(); resErr != nil && resErr.GetMessage() != "" {
		return nil, fmt.Errorf("%w: %s\nFor more info on error messages, "+
			"check: https://cloud.google.com/apis/design/errors",
			ErrService, resErr.GetMessage())
	}

	return rawFromAnnotations(res.GetLandmarkAnnotations(),
		img.Width(), img.Height()), nil
}

// rawFromAnnotations converts the SDK annotation types into RawLandmarks.
// The landmark feature populates pixel space vertices, so when normalized
// vertices are absent the pixel ones are normalized by the frame dimensions
// to keep the data model resolution independent.
func rawFromAnnotations(anns []*visionpb.EntityAnnotation,
	width, height int) []RawLandmark {

	raw := make([]RawLandmark, 0, len(anns))

	for _, ann := range anns {

		next := RawLandmark{
			Description: ann.GetDescription(),
			Score:       ann.GetScore(),
		}

		poly := ann.GetBoundingPoly()

		if norms := poly.GetNormalizedVertices(); len(norms) > 0 {
			for _, v := range norms {
				next.Polygon = append(next.Polygon, NormalizedVertex{
					X: v.GetX(),
					Y: v.GetY(),
				})
			}

		} else {
			for _, v := range poly.GetVertices() {
				next.Polygon = append(next.Polygon, NormalizedVertex{
					X: float32(v.GetX()) / float32(width),
					Y: float32(v.GetY()) / float32(height),
				})
			}
		}

		for _, loc := range ann.GetLocations() {
			if ll := loc.GetLatLng(); ll != nil {
				next.Locations = append(next.Locations, LatLng{
					Latitude:  ll.GetLatitude(),
					Longitude: ll.GetLongitude(),
				})
			}
		}

		raw = append(raw, next)
	}

	return raw
}

// Close closes the connection to the Vision service
func (c *Client) Close() error {
	return c.ic.Close()
}
