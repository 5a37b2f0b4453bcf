package domain

import "context"

// ListingSource acquires the restaurant listing. One call issues one request.
type ListingSource interface {
	FetchListing(ctx context.Context) (Collection, error)
}

// ProfileSource loads a single user profile
type ProfileSource interface {
	FetchProfile(ctx context.Context, login string) (*Profile, error)
}

// ConnectivityMonitor reports whether the process currently has network access.
type ConnectivityMonitor interface {
	Online() bool
}
