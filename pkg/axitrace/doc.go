/*
Package axitrace is a server-side client for the AxiTrace tracking API.

# Overview

A Client validates tracking events, fills in visitor identity and posts
them to the API. Events are built in the event package, sent through the
api package and carried over HTTP by the transport package; Client ties
these together and adds identity defaults.

# Basic Usage

	cfg, err := config.New("sk_live_...")
	if err != nil {
	    log.Fatal(err)
	}
	client := axitrace.New(cfg, axitrace.WithLogger(slog.Default()))

	resp, err := client.PageView(ctx, "https://example.com/pricing", map[string]any{
	    "title": "Pricing",
	})

Init and FromEnvironment build the config in the same call:

	client, err := axitrace.FromEnvironment() // AXITRACE_SECRET_KEY etc.

# Identity

Most events need a client, user or session ID. Client fills in whatever
the event leaves unset, in this order:

 1. the value set on the event itself
 2. the value set on the Client (SetClientID, SetUserID, SetSessionID)
 3. the tracking cookie (vt_vid, vt_uid, vt_sid) from the cookie source

Cookies are read only while auto-read is enabled, which is the default.
With auto-read enabled, the Facebook _fbp and _fbc cookies are attached as
the "fbp" and "fbc" params unless the event already carries them.

Transaction and FormSubmit identify the visitor through a client object;
the visitor ID becomes client.customId when none is set.

Cookies come from a cookie.Source, typically the incoming request:

	client := axitrace.New(cfg, axitrace.WithCookies(cookie.FromRequest(r)))

A Client holds per-visitor identity defaults, so create one per request
when cookies or identities differ between callers.

# Errors

Every send returns either a response or an error from the errors package:
a *errors.ValidationError before any request is made, an
*errors.AuthenticationError for 401 and 403, or an *errors.APIError for any
other failure. A 2xx response whose body says "success": false is returned
as a response with Success false, not as an error.
*/
package axitrace
