package axitrace

import (
	"context"

	"github.com/randalmurphal/axitrace/pkg/axitrace/api"
	"github.com/randalmurphal/axitrace/pkg/axitrace/config"
	"github.com/randalmurphal/axitrace/pkg/axitrace/cookie"
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/event"
	"github.com/randalmurphal/axitrace/pkg/axitrace/transport"
)

// Client sends tracking events with identity defaults applied.
//
// A Client is not safe for concurrent mutation of its identity; the send
// methods themselves hold no shared state.
type Client struct {
	cfg     *config.Config
	http    *transport.Client
	events  *api.EventsAPI
	cookies cookie.Source

	clientID        string
	userID          string
	sessionID       string
	autoReadCookies bool
}

// New creates a Client for an already validated config.
func New(cfg *config.Config, opts ...Option) *Client {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	tOpts := []transport.Option{transport.WithLogger(o.logger)}
	if o.httpClient != nil {
		tOpts = append(tOpts, transport.WithHTTPClient(o.httpClient))
	}
	httpClient := transport.New(cfg, tOpts...)

	var poster api.Poster = httpClient
	if o.retry != nil {
		poster = transport.NewRetryPoster(httpClient, *o.retry, o.logger)
	}

	return &Client{
		cfg:  cfg,
		http: httpClient,
		events: api.NewEventsAPI(poster,
			api.WithLogger(o.logger),
			api.WithMetrics(o.metrics),
			api.WithTracing(o.tracing),
		),
		cookies:         o.cookies,
		autoReadCookies: true,
	}
}

// Init validates secretKey together with any WithConfig options and
// creates a Client.
func Init(secretKey string, opts ...Option) (*Client, error) {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg, err := config.New(secretKey, o.configOpts...)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// FromEnvironment builds the config from AXITRACE_* environment variables.
// WithConfig options override the environment.
func FromEnvironment(opts ...Option) (*Client, error) {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	cfg, err := config.FromEnvironment(o.configOpts...)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// SetClientID sets the default visitor ID.
func (c *Client) SetClientID(id string) *Client {
	c.clientID = id
	return c
}

// SetUserID sets the default user ID.
func (c *Client) SetUserID(id string) *Client {
	c.userID = id
	return c
}

// SetSessionID sets the default session ID.
func (c *Client) SetSessionID(id string) *Client {
	c.sessionID = id
	return c
}

// DisableAutoReadCookies stops identity and Facebook params from being
// read from cookies.
func (c *Client) DisableAutoReadCookies() *Client {
	c.autoReadCookies = false
	return c
}

// EnableAutoReadCookies turns cookie reading back on.
func (c *Client) EnableAutoReadCookies() *Client {
	c.autoReadCookies = true
	return c
}

// VisitorID returns the default visitor ID: the one set on the Client, or
// the vt_vid cookie while auto-read is enabled.
func (c *Client) VisitorID() string {
	return c.resolve(c.clientID, cookie.VisitorID)
}

// SessionID returns the default session ID: the one set on the Client, or
// the vt_sid cookie while auto-read is enabled.
func (c *Client) SessionID() string {
	return c.resolve(c.sessionID, cookie.SessionID)
}

// UserID returns the default user ID: the one set on the Client, or the
// vt_uid cookie while auto-read is enabled.
func (c *Client) UserID() string {
	return c.resolve(c.userID, cookie.UserID)
}

func (c *Client) resolve(explicit, cookieName string) string {
	if explicit != "" {
		return explicit
	}
	if !c.autoReadCookies {
		return ""
	}
	v, _ := cookie.Get(c.cookies, cookieName)
	return v
}

// Track fills in missing identity on ev and sends it. ev is modified in
// place.
func (c *Client) Track(ctx context.Context, ev event.Event) (*api.Response, error) {
	if ev == nil {
		return nil, axerrors.ErrNilEvent
	}
	c.applyIdentity(ev)
	return c.events.Send(ctx, ev)
}

// applyIdentity fills identity fields the event leaves unset. Values already
// on the event are never overwritten.
func (c *Client) applyIdentity(ev event.Event) {
	t := ev.Common()
	visitorID := c.VisitorID()

	if t.ClientID() == "" && visitorID != "" {
		t.SetClientID(visitorID)
	}
	if t.UserID() == "" {
		if id := c.UserID(); id != "" {
			t.SetUserID(id)
		}
	}
	if t.SessionID() == "" {
		if id := c.SessionID(); id != "" {
			t.SetSessionID(id)
		}
	}

	if visitorID != "" {
		switch e := ev.(type) {
		case *event.Transaction:
			if _, ok := e.Client().CustomID(); !ok {
				e.SetClientCustomID(visitorID)
			}
		case *event.FormSubmit:
			if _, ok := e.Client().CustomID(); !ok {
				e.SetClientCustomID(visitorID)
			}
		}
	}

	if c.autoReadCookies {
		for key, v := range cookie.Read(c.cookies).Facebook() {
			if _, ok := t.Param(key); !ok {
				t.AddParam(key, v)
			}
		}
	}
}

// Events returns the underlying dispatch API, for SendBatch and SendRaw.
// Events sent through it get no identity defaults.
func (c *Client) Events() *api.EventsAPI { return c.events }

// Transport returns the HTTP client.
func (c *Client) Transport() *transport.Client { return c.http }

// Config returns the client configuration.
func (c *Client) Config() *config.Config { return c.cfg }
