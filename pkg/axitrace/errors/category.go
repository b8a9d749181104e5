// Package errors defines the error taxonomy of the axitrace client and
// helpers for classifying failures.
//
// The taxonomy has four concrete types:
//   - ConfigurationError: invalid secret key, base URL or timeout
//   - ValidationError: an event failed its local checks, nothing was sent
//   - AuthenticationError: the API answered 401 or 403
//   - APIError: any other non-2xx answer or a connection failure
//
// The client never retries on its own. Categorize, IsRetryable and WithRetry
// exist for callers that layer a retry policy on top.
package errors

import "errors"

// ErrNilEvent is returned when a nil event is passed to a dispatch call.
var ErrNilEvent = errors.New("event cannot be nil")

// Category represents how an error should be handled.
type Category int

const (
	// CategoryTransient indicates a retry will likely help.
	// Examples: rate limits, gateway timeouts, connection failures.
	CategoryTransient Category = iota

	// CategoryPermanent indicates a retry won't help.
	// Examples: invalid events, bad credentials, invalid configuration.
	CategoryPermanent
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransient:
		return "transient"
	case CategoryPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Categorize determines how an error should be handled.
func Categorize(err error) Category {
	if err == nil {
		return CategoryPermanent // shouldn't happen, fail safe
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 0:
			return CategoryTransient // connection level
		case apiErr.StatusCode == 408, apiErr.StatusCode == 429:
			return CategoryTransient
		case apiErr.StatusCode >= 500:
			return CategoryTransient
		default:
			return CategoryPermanent
		}
	}

	// Validation, configuration and authentication problems need a code or
	// credential change, and unknown errors fail safe.
	return CategoryPermanent
}

// IsRetryable reports whether the error should be retried.
func IsRetryable(err error) bool {
	return Categorize(err) == CategoryTransient
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ValidationKindOf returns the kind of the first ValidationError in err's
// chain, or ValidationUnknown if there is none.
func ValidationKindOf(err error) ValidationKind {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Kind
	}
	return ValidationUnknown
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}
	return 0
}
