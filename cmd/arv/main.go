package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // All required checks passed
	ExitRequiredFailed = 1 // One or more required checks failed
	ExitError          = 2 // Configuration or runtime error
)

// RequiredFailureError indicates that verification ran to completion,
// but at least one required check failed or a blocking violation was found.
type RequiredFailureError struct {
	Message string
}

func (e *RequiredFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var requiredErr *RequiredFailureError
		if errors.As(err, &requiredErr) {
			os.Exit(ExitRequiredFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
