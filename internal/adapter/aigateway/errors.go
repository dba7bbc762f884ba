package aigateway

import "errors"

// Gateway error taxonomy. Callers map these to distinct user-facing
// messages; none of them triggers an automatic retry.
var (
	// ErrNotConfigured means the API key is missing or rejected.
	ErrNotConfigured = errors.New("insight service is not configured")

	// ErrRateLimited means the provider returned 429.
	ErrRateLimited = errors.New("insight service rate limit exceeded")

	// ErrQuotaExhausted means the provider returned 402 (credits spent).
	ErrQuotaExhausted = errors.New("insight service quota exhausted")

	// ErrConnection means the request never produced an HTTP response.
	ErrConnection = errors.New("insight service unreachable")

	// ErrEmptyResponse means the provider answered with no usable content.
	ErrEmptyResponse = errors.New("insight service returned an empty response")

	// ErrBadResponse means the reply could not be parsed as expected.
	ErrBadResponse = errors.New("insight service returned a malformed response")
)
