// Package cookie reads the AxiTrace and Facebook tracking cookies that the
// browser-side script sets.
//
// The client never touches an HTTP request directly; it asks a Source. Use
// FromRequest inside an HTTP handler, or Static in tests and jobs that carry
// the values along by other means.
package cookie

import "net/http"

// Cookie names.
const (
	VisitorID = "vt_vid"
	SessionID = "vt_sid"
	UserID    = "vt_uid"
	Fbp       = "_fbp"
	Fbc       = "_fbc"
)

// Source looks up raw cookie values by name.
type Source interface {
	Lookup(name string) (string, bool)
}

// Static is a Source backed by a map.
type Static map[string]string

// Lookup implements Source.
func (s Static) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

type requestSource struct {
	r *http.Request
}

// FromRequest returns a Source reading the cookies of r.
func FromRequest(r *http.Request) Source {
	return requestSource{r: r}
}

// Lookup implements Source.
func (s requestSource) Lookup(name string) (string, bool) {
	if s.r == nil {
		return "", false
	}
	c, err := s.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// Get returns the named cookie. Missing cookies and the values "" and "0"
// are reported as absent. A nil src has no cookies.
func Get(src Source, name string) (string, bool) {
	if src == nil {
		return "", false
	}
	v, ok := src.Lookup(name)
	if !ok || v == "" || v == "0" {
		return "", false
	}
	return v, true
}

// Values is a snapshot of every tracking cookie; absent cookies are "".
type Values struct {
	VisitorID string
	SessionID string
	UserID    string
	Fbp       string
	Fbc       string
}

// Read takes a snapshot of all tracking cookies in src.
func Read(src Source) Values {
	get := func(name string) string {
		v, _ := Get(src, name)
		return v
	}
	return Values{
		VisitorID: get(VisitorID),
		SessionID: get(SessionID),
		UserID:    get(UserID),
		Fbp:       get(Fbp),
		Fbc:       get(Fbc),
	}
}

// AxiTrace returns the visitor, session and user IDs keyed by
// "visitor_id", "session_id" and "user_id". Absent cookies are omitted.
func (v Values) AxiTrace() map[string]string {
	return present(map[string]string{
		"visitor_id": v.VisitorID,
		"session_id": v.SessionID,
		"user_id":    v.UserID,
	})
}

// Facebook returns the Facebook browser and click IDs keyed by "fbp" and
// "fbc". Absent cookies are omitted.
func (v Values) Facebook() map[string]string {
	return present(map[string]string{
		"fbp": v.Fbp,
		"fbc": v.Fbc,
	})
}

func present(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
