package httpx

import "errors"

// Sentinel errors services join onto their failures so handlers can pick a
// status code without knowing the domain.
var (
	// ErrValidation marks input the service refused.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an authorization decision that came back false.
	ErrForbidden = errors.New("forbidden")
)
