package event

import (
	"maps"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// FormSubmit records a submitted form. Like Transaction it identifies the
// visitor through a model.ClientIdentity.
type FormSubmit struct {
	Tracking
	label      string
	client     *model.ClientIdentity
	formParams map[string]any
	eventSalt  string
}

// NewFormSubmit creates a form submission with the given label.
func NewFormSubmit(label string, opts ...Option) *FormSubmit {
	e := &FormSubmit{
		label:      label,
		client:     &model.ClientIdentity{},
		formParams: make(map[string]any),
	}
	e.apply(opts)
	return e
}

func (*FormSubmit) isEvent() {}

// Kind returns KindFormSubmit.
func (*FormSubmit) Kind() Kind { return KindFormSubmit }

// Endpoint returns the form submission path.
func (*FormSubmit) Endpoint() string { return KindFormSubmit.Endpoint() }

// Action returns "form.submit".
func (*FormSubmit) Action() string { return KindFormSubmit.Action() }

// Label returns the form label.
func (e *FormSubmit) Label() string { return e.label }

// SetClient replaces the client identity.
func (e *FormSubmit) SetClient(client *model.ClientIdentity) *FormSubmit {
	if client == nil {
		client = &model.ClientIdentity{}
	}
	e.client = client
	return e
}

// Client returns the client identity.
func (e *FormSubmit) Client() *model.ClientIdentity { return e.client }

// SetClientCustomID sets client.customId.
func (e *FormSubmit) SetClientCustomID(id string) *FormSubmit {
	e.client.SetCustomID(id)
	return e
}

// SetClientEmail sets client.email.
func (e *FormSubmit) SetClientEmail(email string) *FormSubmit {
	e.client.SetEmail(email)
	return e
}

// SetEmail sets the "email" form field.
func (e *FormSubmit) SetEmail(email string) *FormSubmit {
	e.formParams["email"] = email
	return e
}

// SetFormParams merges form fields.
func (e *FormSubmit) SetFormParams(params map[string]any) *FormSubmit {
	maps.Copy(e.formParams, params)
	return e
}

// AddFormParam sets one form field.
func (e *FormSubmit) AddFormParam(key string, value any) *FormSubmit {
	e.formParams[key] = value
	return e
}

// FormParams returns a copy of the form fields.
func (e *FormSubmit) FormParams() map[string]any { return maps.Clone(e.formParams) }

// SetEventSalt sets the deduplication salt.
func (e *FormSubmit) SetEventSalt(salt string) *FormSubmit {
	e.eventSalt = salt
	return e
}

// Validate checks client identity, label, a non-empty field set, and the
// "email" field when one is given.
func (e *FormSubmit) Validate() error {
	action := e.Action()
	if !e.client.HasIdentifier() {
		return axerrors.MissingUserIdentifier(action)
	}
	if e.label == "" {
		return axerrors.MissingField("label", action)
	}
	if len(e.formParams) == 0 {
		return axerrors.MissingField("params", action)
	}
	if email, ok := e.formParams["email"]; ok && !isBlank(email) {
		s, isString := email.(string)
		if !isString || !IsValidEmail(s) {
			return axerrors.InvalidEmail("params.email", action)
		}
	}
	return nil
}

// Serialize renders {label, client, params: form fields + params, sessionId?, eventSalt?}.
func (e *FormSubmit) Serialize() map[string]any {
	params := maps.Clone(e.formParams)
	if params == nil {
		params = make(map[string]any)
	}
	maps.Copy(params, e.params)

	data := map[string]any{
		"label":  e.label,
		"client": e.client.Map(),
		"params": params,
	}
	if e.sessionID != "" {
		data["sessionId"] = e.sessionID
	}
	if e.eventSalt != "" {
		data["eventSalt"] = e.eventSalt
	}
	return data
}
