package landmark

import (
	"fmt"
	"os"
)

// CredentialsEnv is the environment variable holding the default service
// account key file path when no explicit path is given
const CredentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"

// Credentials is a resolved path to a Google service account key file
type Credentials struct {
	// File is the path to the key file on disk
	File string
}

// ResolveCredentials locates the service account key file to authenticate
// with.  An explicit path takes precedence, otherwise the
// GOOGLE_APPLICATION_CREDENTIALS environment variable is read.  The resolved
// path must exist on disk.  The environment is never modified.
func ResolveCredentials(explicit string) (Credentials, error) {

	file := explicit

	if file == "" {
		file = os.Getenv(CredentialsEnv)
	}

	if file == "" {
		return Credentials{}, fmt.Errorf("%w: no credentials file given and "+
			"%s is not set", ErrConfiguration, CredentialsEnv)
	}

	info, err := os.Stat(file)

	if err != nil {
		return Credentials{}, fmt.Errorf("%w: credentials file %s: %v",
			ErrConfiguration, file, err)
	}

	if info.IsDir() {
		return Credentials{}, fmt.Errorf("%w: credentials path %s is a directory",
			ErrConfiguration, file)
	}

	return Credentials{File: file}, nil
}
