package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/axitrace/pkg/axitrace/api"
)

func TestResponseFromBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
		eventID string
		errMsg  string
	}{
		{"2xx with success", 200, `{"success":true,"eventId":"e1","action":"page_view"}`, true, "e1", ""},
		{"2xx without flag", 201, `{"eventId":"e2"}`, true, "e2", ""},
		{"body flag overrides status", 200, `{"success":false,"error":"dup"}`, false, "", "dup"},
		{"numeric flag", 200, `{"success":0}`, false, "", ""},
		{"non-2xx", 302, `{"success":true}`, false, "", ""},
		{"empty body", 204, ``, true, "", ""},
		{"not json", 200, `<html>`, true, "", ""},
		{"json array", 200, `[1,2]`, true, "", ""},
		{"null flag counts as absent", 200, `{"success":null,"eventId":"e3"}`, true, "e3", ""},
		{"numeric event id", 200, `{"eventId":42}`, true, "42", ""},
		{"structured error ignored", 400, `{"error":{"code":7}}`, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := api.ResponseFromBody(tt.status, []byte(tt.body))
			assert.Equal(t, tt.success, r.Success)
			assert.Equal(t, tt.status, r.StatusCode)
			assert.Equal(t, tt.eventID, r.EventID)
			assert.Equal(t, tt.errMsg, r.Error)
			assert.NotNil(t, r.Raw)
		})
	}
}

func TestResponseHelpers(t *testing.T) {
	ok := api.NewSuccessResponse("e1", "search")
	assert.True(t, ok.Success)
	assert.Equal(t, 200, ok.StatusCode)
	assert.Equal(t, "search", ok.Action)
	assert.Equal(t, map[string]any{
		"success":     true,
		"status_code": 200,
		"event_id":    "e1",
		"action":      "search",
		"error":       nil,
	}, ok.Map())

	bad := api.NewErrorResponse("rate limited", 429)
	assert.False(t, bad.Success)
	assert.Equal(t, "rate limited", bad.Error)
	assert.Equal(t, 429, bad.Map()["status_code"])
	assert.Nil(t, bad.Map()["event_id"])

	r := api.ResponseFromBody(200, []byte(`{"queued":3,"note":null}`))
	assert.Equal(t, float64(3), r.Get("queued", 0))
	assert.Equal(t, "none", r.Get("note", "none"))
	assert.Equal(t, "none", r.Get("missing", "none"))
}
