package event

import (
	"maps"
	"regexp"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
)

// Event is implemented by the fixed set of variants in this package and by
// nothing else.
//
// Serialize is a pure function of the event's current state: it returns a
// fresh map on every call and never mutates the event.
type Event interface {
	Kind() Kind
	Endpoint() string
	Action() string
	Validate() error
	Serialize() map[string]any

	// Common exposes the shared identity and parameter state.
	Common() *Tracking

	isEvent()
}

// Params is a free-form parameter bag merged into the wire payload.
type Params map[string]any

// Tracking holds the identity and parameters shared by every variant.
// Variants embed it by value. An empty string means "not set".
type Tracking struct {
	clientID  string
	userID    string
	sessionID string
	params    Params
}

// Option configures the shared Tracking state at construction.
type Option func(*Tracking)

// WithClientID sets the visitor ID (vt_vid cookie).
func WithClientID(id string) Option {
	return func(t *Tracking) { t.clientID = id }
}

// WithUserID sets the authenticated user ID.
func WithUserID(id string) Option {
	return func(t *Tracking) { t.userID = id }
}

// WithSessionID sets the session ID (vt_sid cookie).
func WithSessionID(id string) Option {
	return func(t *Tracking) { t.sessionID = id }
}

// WithParams merges params into the event's parameter bag.
func WithParams(params map[string]any) Option {
	return func(t *Tracking) { t.SetParams(params) }
}

func (t *Tracking) apply(opts []Option) {
	for _, opt := range opts {
		opt(t)
	}
}

// Common returns the receiver; it gives every variant access to the
// shared state through the Event interface.
func (t *Tracking) Common() *Tracking { return t }

// SetClientID sets the visitor ID.
func (t *Tracking) SetClientID(id string) { t.clientID = id }

// SetUserID sets the authenticated user ID.
func (t *Tracking) SetUserID(id string) { t.userID = id }

// SetSessionID sets the session ID.
func (t *Tracking) SetSessionID(id string) { t.sessionID = id }

// ClientID returns the visitor ID, or "".
func (t *Tracking) ClientID() string { return t.clientID }

// UserID returns the user ID, or "".
func (t *Tracking) UserID() string { return t.userID }

// SessionID returns the session ID, or "".
func (t *Tracking) SessionID() string { return t.sessionID }

// SetParams merges params into the bag; existing keys are overwritten.
func (t *Tracking) SetParams(params map[string]any) {
	if len(params) == 0 {
		return
	}
	if t.params == nil {
		t.params = make(Params, len(params))
	}
	maps.Copy(t.params, params)
}

// AddParam sets a single parameter.
func (t *Tracking) AddParam(key string, value any) {
	if t.params == nil {
		t.params = make(Params)
	}
	t.params[key] = value
}

// Param returns a parameter and whether it is present.
func (t *Tracking) Param(key string) (any, bool) {
	v, ok := t.params[key]
	return v, ok
}

// Params returns a copy of the parameter bag.
func (t *Tracking) Params() Params {
	return maps.Clone(t.params)
}

// SetFbp sets the Facebook browser ID (_fbp cookie).
func (t *Tracking) SetFbp(fbp string) { t.AddParam("fbp", fbp) }

// SetFbc sets the Facebook click ID (_fbc cookie).
func (t *Tracking) SetFbc(fbc string) { t.AddParam("fbc", fbc) }

// SetPhone sets the customer phone number.
func (t *Tracking) SetPhone(phone string) { t.AddParam("phone", phone) }

// SetFirstName sets the customer first name.
func (t *Tracking) SetFirstName(name string) { t.AddParam("first_name", name) }

// SetLastName sets the customer last name.
func (t *Tracking) SetLastName(name string) { t.AddParam("last_name", name) }

// SetCity sets the customer city.
func (t *Tracking) SetCity(city string) { t.AddParam("city", city) }

// SetState sets the customer state or region.
func (t *Tracking) SetState(state string) { t.AddParam("state", state) }

// SetZip sets the customer postal code.
func (t *Tracking) SetZip(zip string) { t.AddParam("zip", zip) }

// SetCountry sets the customer country.
func (t *Tracking) SetCountry(country string) { t.AddParam("country", country) }

// HasUserIdentifier reports whether a client, user or session ID is set.
func (t *Tracking) HasUserIdentifier() bool {
	return t.clientID != "" || t.userID != "" || t.sessionID != ""
}

func (t *Tracking) validateIdentity(action string) error {
	if !t.HasUserIdentifier() {
		return axerrors.MissingUserIdentifier(action)
	}
	return nil
}

// flatIdentity renders the snake_case identity keys used at the payload root.
func (t *Tracking) flatIdentity() map[string]any {
	data := make(map[string]any, 8)
	if t.clientID != "" {
		data["client_id"] = t.clientID
	}
	if t.userID != "" {
		data["user_id"] = t.userID
	}
	if t.sessionID != "" {
		data["session_id"] = t.sessionID
	}
	return data
}

// nestParams stores a copy of params under "params" when non-empty.
// The copy is a plain map so callers see the decoded-JSON shape.
func nestParams(data map[string]any, params map[string]any) map[string]any {
	if len(params) > 0 {
		data["params"] = map[string]any(maps.Clone(params))
	}
	return data
}

// clientObject renders the nested client object of the label envelope.
func (t *Tracking) clientObject() map[string]any {
	client := make(map[string]any, 2)
	if t.clientID != "" {
		client["customId"] = t.clientID
	}
	if t.userID != "" {
		client["uuid"] = t.userID
	}
	return client
}

// labelEnvelope renders {label, client, sessionId?}.
func (t *Tracking) labelEnvelope(label string) map[string]any {
	data := map[string]any{
		"label":  label,
		"client": t.clientObject(),
	}
	if t.sessionID != "" {
		data["sessionId"] = t.sessionID
	}
	return data
}

// mergeParams returns base with the free-form params laid over it.
func (t *Tracking) mergeParams(base map[string]any) map[string]any {
	maps.Copy(base, t.params)
	return base
}

var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9.!#$%&'*+/=?^_{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$`,
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	return emailPattern.MatchString(s)
}
