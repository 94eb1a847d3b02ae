package landmark

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Errors returned by a detection run.  All are terminal for the current run,
// nothing is retried locally.
var (
	// ErrConfiguration indicates a missing or invalid credentials path or
	// out of range parameter
	ErrConfiguration = errors.New("configuration error")
	// ErrAuthentication indicates the remote service rejected the supplied
	// credentials
	ErrAuthentication = errors.New("authentication error")
	// ErrNetwork indicates the channel to the remote service could not be
	// established or timed out
	ErrNetwork = errors.New("network error")
	// ErrService indicates the remote call returned a non success status
	ErrService = errors.New("service error")
)

// wrapRPCError classifies an error returned by the Vision API call into the
// local error taxonomy using its gRPC status code
func wrapRPCError(err error) error {

	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)

	if !ok {
		// non gRPC error, typically a dial or transport failure
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrAuthentication, st.Message())

	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrNetwork, st.Message())

	default:
		return fmt.Errorf("%w: rpc %s: %s", ErrService, st.Code(), st.Message())
	}
}
