package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFetchFailed covers every way the listing fetch can fail: transport,
	// status, malformed JSON and unexpected envelope shape.
	ErrFetchFailed = errors.New("restaurant listing fetch failed")

	// ErrProfileFailed indicates the profile card could not be loaded
	ErrProfileFailed = errors.New("profile fetch failed")
)
