package event

// Kind identifies one of the fixed set of event variants.
type Kind int

// Event kinds. The zero value is not a valid kind.
const (
	KindPageView Kind = iota + 1
	KindProductView
	KindAddToCart
	KindRemoveFromCart
	KindBeginCheckout
	KindAddShippingInfo
	KindAddPaymentInfo
	KindTransaction
	KindSubscribe
	KindStartTrial
	KindSearch
	KindFormSubmit
	KindViewItemList
	KindSelectItem
)

// Shape names the envelope layout an event serializes into.
type Shape int

const (
	// ShapeClientEnvelope is {label, client:{customId, uuid}, sessionId?, params}.
	ShapeClientEnvelope Shape = iota + 1
	// ShapeFlatCart is {client_id, session_id?, user_id?, currency, value, items, ..., params?}.
	ShapeFlatCart
	// ShapeClientIdentity uses a client object built from model.ClientIdentity.
	ShapeClientIdentity
	// ShapeFlat is identity at the root plus variant fields, params nested when non-empty.
	ShapeFlat
)

// String returns a short shape name.
func (s Shape) String() string {
	switch s {
	case ShapeClientEnvelope:
		return "client_envelope"
	case ShapeFlatCart:
		return "flat_cart"
	case ShapeClientIdentity:
		return "client_identity"
	case ShapeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

type kindInfo struct {
	endpoint string
	action   string
	shape    Shape
}

var kinds = map[Kind]kindInfo{
	KindPageView:        {"/v1/page/view", "page_view", ShapeClientEnvelope},
	KindProductView:     {"/v1/product/view", "product_view", ShapeClientEnvelope},
	KindAddToCart:       {"/v1/product/addToCart", "add_to_cart", ShapeClientEnvelope},
	KindRemoveFromCart:  {"/v1/cart/remove", "remove_from_cart", ShapeFlatCart},
	KindBeginCheckout:   {"/v1/checkout/begin", "begin_checkout", ShapeFlatCart},
	KindAddShippingInfo: {"/v1/checkout/add_shipping_info", "add_shipping_info", ShapeFlatCart},
	KindAddPaymentInfo:  {"/v1/checkout/add_payment_info", "add_payment_info", ShapeFlatCart},
	KindTransaction:     {"/v1/transaction", "transaction", ShapeClientIdentity},
	KindSubscribe:       {"/v1/subscribe", "subscribe", ShapeFlat},
	KindStartTrial:      {"/v1/start_trial", "start_trial", ShapeFlat},
	KindSearch:          {"/v1/search", "search", ShapeFlat},
	KindFormSubmit:      {"/v1/form/submit", "form.submit", ShapeClientIdentity},
	KindViewItemList:    {"/v1/catalog/view_list", "view_item_list", ShapeFlat},
	KindSelectItem:      {"/v1/catalog/select_item", "select_item", ShapeFlat},
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := KindPageView; k <= KindSelectItem; k++ {
		out = append(out, k)
	}
	return out
}

// Endpoint returns the API path events of this kind are posted to.
func (k Kind) Endpoint() string { return kinds[k].endpoint }

// Action returns the action name used on the wire and in responses.
func (k Kind) Action() string { return kinds[k].action }

// Shape returns the envelope layout of this kind.
func (k Kind) Shape() Shape { return kinds[k].shape }

// String returns the action name, or "unknown".
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.action
	}
	return "unknown"
}
