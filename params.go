package landmark

import (
	"fmt"
)

const (
	// default confidence threshold applied to detected landmarks
	DefaultConfThreshold = 0.2
	// default maximum number of landmark annotations requested per image
	DefaultMaxResults = 10
)

// Params defines the struct containing the task parameters used for a
// detection run
type Params struct {
	// ConfThreshold is the minimum confidence score a detected landmark must
	// meet to be retained in the results, in the range [0,1]
	ConfThreshold float32
	// CredentialsFile is the path to the Google service account key file.
	// When empty the GOOGLE_APPLICATION_CREDENTIALS environment variable is
	// used instead
	CredentialsFile string
	// MaxResults is the maximum number of landmark annotations requested
	// from the remote service per image
	MaxResults int
}

// DefaultParams returns an instance of Params configured with default values
func DefaultParams() Params {
	return Params{
		ConfThreshold: DefaultConfThreshold,
		MaxResults:    DefaultMaxResults,
	}
}

// Validate checks the parameters are within their allowed ranges
func (p Params) Validate() error {

	if p.ConfThreshold < 0 || p.ConfThreshold > 1 {
		return fmt.Errorf("%w: confidence threshold %f out of range [0,1]",
			ErrConfiguration, p.ConfThreshold)
	}

	if p.MaxResults < 1 {
		return fmt.Errorf("%w: max results must be at least 1, got %d",
			ErrConfiguration, p.MaxResults)
	}

	return nil
}
