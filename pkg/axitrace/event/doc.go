// Package event defines the tracking events sent to the AxiTrace API.
//
// # Overview
//
// Every event is one of a fixed set of variants, each bound to one API
// endpoint and one action name:
//
//   - PageView, ProductView, AddToCart
//   - RemoveFromCart, BeginCheckout, AddShippingInfo, AddPaymentInfo
//   - Transaction, FormSubmit
//   - Subscribe, StartTrial, Search, ViewItemList, SelectItem
//
// The Event interface is sealed; only this package implements it.
//
// # Lifecycle
//
// An event is constructed with its required arguments, optionally mutated
// through chained setters, validated, and serialized:
//
//	ev := event.NewBeginCheckout("usd", 59.98, event.WithClientID(vid)).
//	    AddItem(model.NewProduct("SKU-1").SetPrice(29.99).SetQuantity(2)).
//	    SetCoupon("WELCOME10")
//	if err := ev.Validate(); err != nil {
//	    return err
//	}
//	payload := ev.Serialize()
//
// Validate is idempotent and returns the first failure, checking identity
// first, then required fields, then value constraints. Serialize builds a
// fresh map on every call and never mutates the event.
//
// # Identity
//
// Most variants embed Tracking, which carries the client, user and session
// IDs plus a free-form parameter bag. At least one ID is required.
// Transaction and FormSubmit instead identify the visitor with a
// model.ClientIdentity, which must have at least one field set.
//
// # Payload shapes
//
// Each Kind reports the Shape it serializes into:
//
//   - ShapeClientEnvelope: {label, client:{customId, uuid}, sessionId?, params}
//   - ShapeFlatCart: {client_id?, user_id?, session_id?, currency, value, items, params?}
//   - ShapeClientIdentity: {client:{customId, id, uuid, email}, ...}
//   - ShapeFlat: identity at the root plus variant fields, params nested when non-empty
package event
