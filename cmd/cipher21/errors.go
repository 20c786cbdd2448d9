package main

import (
	"errors"

	"github.com/ksurdacki/cipher21/keysource"
)

// argumentError represents a bad flag combination or value caught by this
// command layer itself, as opposed to the core or the key source.
type argumentError struct {
	msg string
}

func (e argumentError) Error() string {
	return e.msg
}

// timestampRejectedError represents a decrypted stream whose embedded
// timestamp did not clear the --after threshold.
type timestampRejectedError struct {
	threshold string
}

func (e timestampRejectedError) Error() string {
	return "Not encrypted --after " + e.threshold + "."
}

// exitCode maps an error returned by run to the process exit code: 0 for
// success, 2 for an argument or key-source error, 1 for anything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var argErr argumentError
	var schemeErr keysource.SchemeError
	var envErr keysource.EnvVarError
	var sourceErr keysource.SourceError
	var afterErr malformedAfterError

	switch {
	case errors.As(err, &argErr),
		errors.As(err, &schemeErr),
		errors.As(err, &envErr),
		errors.As(err, &sourceErr),
		errors.As(err, &afterErr):
		return 2
	default:
		return 1
	}
}
