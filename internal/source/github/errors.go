package github

import "errors"

// FetchErrorKind distinguishes fetch failures for user messaging.
// The kinds carry no behavioral difference; none of them is retried.
type FetchErrorKind int

const (
	// FetchNotFound means the repository does not exist or is not visible.
	FetchNotFound FetchErrorKind = iota

	// FetchRateLimited means GitHub rejected the request with a 403,
	// typically the anonymous rate limit.
	FetchRateLimited

	// FetchAPI covers every other listing failure.
	FetchAPI
)

// FetchError is returned when the first listing page cannot be retrieved.
// Failures on later pages are not errors; the client degrades to the items
// accumulated so far.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return e.Message
}

// AsFetchError extracts a FetchError from err's chain, or returns nil.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
