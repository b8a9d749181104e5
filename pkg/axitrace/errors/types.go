package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ConfigurationError indicates an invalid client configuration.
// It is only ever returned while building a Config.
type ConfigurationError struct {
	// Field is the configuration key at fault ("secret_key", "base_url", "timeout").
	Field   string
	Message string
	// Value is a redacted rendering of the offending value, if useful.
	Value string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("configuration error on %s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("configuration error on %s: %s", e.Field, e.Message)
}

// MissingSecretKey reports an empty secret key.
func MissingSecretKey() *ConfigurationError {
	return &ConfigurationError{
		Field:   "secret_key",
		Message: "secret key is required",
	}
}

// InvalidSecretKey reports a key without the sk_live_ or sk_test_ prefix.
// Only the first 8 characters of the key are kept.
func InvalidSecretKey(key string) *ConfigurationError {
	prefix := key
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return &ConfigurationError{
		Field:   "secret_key",
		Message: `secret key must start with "sk_live_" or "sk_test_"`,
		Value:   prefix + "...",
	}
}

// InvalidBaseURL reports a base URL that is not an absolute http(s) URL.
func InvalidBaseURL(url string) *ConfigurationError {
	return &ConfigurationError{
		Field:   "base_url",
		Message: "base URL must be a valid http or https URL",
		Value:   url,
	}
}

// InvalidTimeout reports a non-positive timeout.
func InvalidTimeout(seconds int) *ConfigurationError {
	return &ConfigurationError{
		Field:   "timeout",
		Message: "timeout must be a positive number of seconds",
		Value:   fmt.Sprintf("%d", seconds),
	}
}

// ValidationKind distinguishes the reasons an event can fail validation.
type ValidationKind int

const (
	// ValidationUnknown is returned by ValidationKindOf for non-validation errors.
	ValidationUnknown ValidationKind = iota
	// ValidationMissingUserIdentifier: no client, user or session identifier.
	ValidationMissingUserIdentifier
	// ValidationMissingField: a required field is empty or absent.
	ValidationMissingField
	// ValidationNonPositiveValue: a numeric field must be > 0.
	ValidationNonPositiveValue
	// ValidationEmptyItems: an item collection must not be empty.
	ValidationEmptyItems
	// ValidationInvalidItemsCount: an item collection has the wrong size.
	ValidationInvalidItemsCount
	// ValidationInvalidEmail: an email address is malformed.
	ValidationInvalidEmail
	// ValidationInvalidValue: a value is outside its allowed set.
	ValidationInvalidValue
)

// String returns the kind name.
func (k ValidationKind) String() string {
	switch k {
	case ValidationMissingUserIdentifier:
		return "missing_user_identifier"
	case ValidationMissingField:
		return "missing_field"
	case ValidationNonPositiveValue:
		return "non_positive_value"
	case ValidationEmptyItems:
		return "empty_items"
	case ValidationInvalidItemsCount:
		return "invalid_items_count"
	case ValidationInvalidEmail:
		return "invalid_email"
	case ValidationInvalidValue:
		return "invalid_value"
	default:
		return "unknown"
	}
}

// ValidationError indicates an event failed its local checks.
// It is always produced before any network I/O.
type ValidationError struct {
	Kind ValidationKind
	// Field is the offending field, e.g. "url" or "products[0].name".
	Field string
	// EventType is the action name of the event, when known.
	EventType string
	Message   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.EventType != "" {
		return fmt.Sprintf("%s (%s event)", e.Message, e.EventType)
	}
	return e.Message
}

// MissingUserIdentifier reports an event with no identity at all.
func MissingUserIdentifier(eventType string) *ValidationError {
	return &ValidationError{
		Kind:      ValidationMissingUserIdentifier,
		EventType: eventType,
		Message:   "missing user identifier: at least one of client_id, user_id, or session_id is required",
	}
}

// MissingField reports an empty required field.
func MissingField(field, eventType string) *ValidationError {
	return &ValidationError{
		Kind:      ValidationMissingField,
		Field:     field,
		EventType: eventType,
		Message:   "missing required field: " + field,
	}
}

// NonPositiveValue reports a numeric field that must be positive.
func NonPositiveValue(field, eventType string, value float64) *ValidationError {
	return &ValidationError{
		Kind:      ValidationNonPositiveValue,
		Field:     field,
		EventType: eventType,
		Message:   fmt.Sprintf("%s must be positive, got %s", field, formatValue(value)),
	}
}

// EmptyItems reports an empty item collection.
func EmptyItems(field, eventType string) *ValidationError {
	return &ValidationError{
		Kind:      ValidationEmptyItems,
		Field:     field,
		EventType: eventType,
		Message:   field + " must not be empty",
	}
}

// InvalidItemsCount reports an item collection of the wrong size.
func InvalidItemsCount(field, eventType string, want, got int) *ValidationError {
	return &ValidationError{
		Kind:      ValidationInvalidItemsCount,
		Field:     field,
		EventType: eventType,
		Message:   fmt.Sprintf("%s must contain exactly %d item(s), got %d", field, want, got),
	}
}

// InvalidEmail reports a malformed email address.
// The address itself is not echoed in the message.
func InvalidEmail(field, eventType string) *ValidationError {
	return &ValidationError{
		Kind:      ValidationInvalidEmail,
		Field:     field,
		EventType: eventType,
		Message:   "invalid email format for " + field,
	}
}

// InvalidValue reports a value outside its allowed set.
func InvalidValue(field, eventType, got string, allowed []string) *ValidationError {
	return &ValidationError{
		Kind:      ValidationInvalidValue,
		Field:     field,
		EventType: eventType,
		Message:   fmt.Sprintf("invalid %s: %s (valid: %s)", field, got, strings.Join(allowed, ", ")),
	}
}

// AuthenticationError indicates the API rejected the credentials.
type AuthenticationError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Unauthorized is returned for HTTP 401.
func Unauthorized() *AuthenticationError {
	return &AuthenticationError{
		StatusCode: 401,
		Message:    "authentication failed, check the API secret key",
	}
}

// Forbidden is returned for HTTP 403.
func Forbidden(reason string) *AuthenticationError {
	msg := "access forbidden"
	if reason != "" {
		msg += ": " + reason
	}
	return &AuthenticationError{StatusCode: 403, Message: msg}
}

// APIError represents a non-2xx response or a connection failure.
// StatusCode is 0 when no response was received.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	// Body is the raw response body, if any.
	Body []byte
	// Err is the underlying transport error for connection failures.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		if e.Endpoint != "" {
			return fmt.Sprintf("connection error at %s: %s", e.Endpoint, e.Message)
		}
		return "connection error: " + e.Message
	}
	if e.Endpoint != "" {
		return fmt.Sprintf("HTTP %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying transport error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// FromResponse builds an APIError for a failed response. The message is taken
// from the body's "error" or "message" field when present, otherwise a
// default message for the status is used.
func FromResponse(statusCode int, endpoint string, body []byte) *APIError {
	msg := DefaultStatusMessage(statusCode)

	var decoded map[string]any
	if len(body) > 0 && json.Unmarshal(body, &decoded) == nil {
		if s, ok := decoded["error"].(string); ok && s != "" {
			msg = s
		} else if s, ok := decoded["message"].(string); ok && s != "" {
			msg = s
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
		Endpoint:   endpoint,
		Body:       body,
	}
}

// ConnectionError wraps a failure that produced no HTTP response.
func ConnectionError(endpoint string, err error) *APIError {
	return &APIError{
		Message:  err.Error(),
		Endpoint: endpoint,
		Err:      err,
	}
}

var statusMessages = map[int]string{
	400: "bad request, check the request parameters",
	401: "unauthorized, check the API key",
	403: "forbidden, no access to this resource",
	404: "not found",
	405: "method not allowed",
	408: "request timeout",
	422: "unprocessable entity",
	429: "too many requests",
	500: "internal server error",
	502: "bad gateway",
	503: "service unavailable",
	504: "gateway timeout",
}

// DefaultStatusMessage returns the fallback message for an HTTP status.
func DefaultStatusMessage(statusCode int) string {
	if msg, ok := statusMessages[statusCode]; ok {
		return msg
	}
	return fmt.Sprintf("HTTP error %d", statusCode)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}
