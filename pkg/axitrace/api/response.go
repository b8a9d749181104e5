package api

import (
	"encoding/json"

	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// Response is the result of one request to the tracking API.
type Response struct {
	// Success is true when the status is 2xx and the body does not carry
	// a false "success" flag.
	Success    bool
	EventID    string
	Action     string
	Error      string
	StatusCode int
	// Raw is the decoded response body; empty when the body was not a JSON object.
	Raw map[string]any
}

// ResponseFromBody decodes a response body. A body that is not a JSON
// object yields an empty Raw map.
func ResponseFromBody(statusCode int, body []byte) *Response {
	var data map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			data = nil
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	success := statusCode >= 200 && statusCode < 300
	// A null flag counts as absent.
	if flag, ok := data["success"]; ok && flag != nil {
		success = success && truthy(flag)
	}
	return newResponse(success, statusCode, data)
}

// NewSuccessResponse builds a successful 200 response.
func NewSuccessResponse(eventID, action string) *Response {
	return newResponse(true, 200, map[string]any{
		"success": true,
		"eventId": eventID,
		"action":  action,
	})
}

// NewErrorResponse builds a failed response with the given message.
func NewErrorResponse(message string, statusCode int) *Response {
	return newResponse(false, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

func newResponse(success bool, statusCode int, data map[string]any) *Response {
	r := &Response{
		Success:    success,
		StatusCode: statusCode,
		Raw:        data,
	}
	// Servers sometimes send numeric ids; scalars are coerced to text.
	r.EventID, _ = model.AsString(data["eventId"])
	r.Action, _ = model.AsString(data["action"])
	r.Error, _ = model.AsString(data["error"])
	return r
}

// Get returns a field of the raw body, or defaultVal if it is absent or null.
func (r *Response) Get(key string, defaultVal any) any {
	if v, ok := r.Raw[key]; ok && v != nil {
		return v
	}
	return defaultVal
}

// Map returns a summary {success, status_code, event_id, action, error};
// unset string fields are nil.
func (r *Response) Map() map[string]any {
	return map[string]any{
		"success":     r.Success,
		"status_code": r.StatusCode,
		"event_id":    nilIfEmpty(r.EventID),
		"action":      nilIfEmpty(r.Action),
		"error":       nilIfEmpty(r.Error),
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// truthy interprets a decoded JSON value as a flag.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != "" && val != "0"
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}
	return true
}
