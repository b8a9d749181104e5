package event

import "github.com/randalmurphal/axitrace/pkg/axitrace/model"

// RemoveFromCart records items removed from the cart.
type RemoveFromCart struct {
	Tracking
	cart
}

// NewRemoveFromCart creates a remove-from-cart event.
func NewRemoveFromCart(currency string, value float64, opts ...Option) *RemoveFromCart {
	e := &RemoveFromCart{cart: newCart(currency, value)}
	e.apply(opts)
	return e
}

func (*RemoveFromCart) isEvent() {}

// Kind returns KindRemoveFromCart.
func (*RemoveFromCart) Kind() Kind { return KindRemoveFromCart }

// Endpoint returns the cart removal path.
func (*RemoveFromCart) Endpoint() string { return KindRemoveFromCart.Endpoint() }

// Action returns "remove_from_cart".
func (*RemoveFromCart) Action() string { return KindRemoveFromCart.Action() }

// AddItem appends an item.
func (e *RemoveFromCart) AddItem(p *model.Product) *RemoveFromCart {
	e.addItem(p)
	return e
}

// SetItems replaces the items.
func (e *RemoveFromCart) SetItems(items []*model.Product) *RemoveFromCart {
	e.setItems(items)
	return e
}

// Validate checks identity, currency, value > 0 and a non-empty item list.
func (e *RemoveFromCart) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	return e.cart.validate(e.Action())
}

// Serialize renders the flat cart shape.
func (e *RemoveFromCart) Serialize() map[string]any {
	return nestParams(e.flatCart(&e.Tracking), e.params)
}

// BeginCheckout records the start of checkout.
type BeginCheckout struct {
	Tracking
	cart
	coupon string
}

// NewBeginCheckout creates a begin-checkout event.
func NewBeginCheckout(currency string, value float64, opts ...Option) *BeginCheckout {
	e := &BeginCheckout{cart: newCart(currency, value)}
	e.apply(opts)
	return e
}

func (*BeginCheckout) isEvent() {}

// Kind returns KindBeginCheckout.
func (*BeginCheckout) Kind() Kind { return KindBeginCheckout }

// Endpoint returns the checkout start path.
func (*BeginCheckout) Endpoint() string { return KindBeginCheckout.Endpoint() }

// Action returns "begin_checkout".
func (*BeginCheckout) Action() string { return KindBeginCheckout.Action() }

// AddItem appends an item.
func (e *BeginCheckout) AddItem(p *model.Product) *BeginCheckout {
	e.addItem(p)
	return e
}

// SetItems replaces the items.
func (e *BeginCheckout) SetItems(items []*model.Product) *BeginCheckout {
	e.setItems(items)
	return e
}

// SetCoupon sets the coupon code.
func (e *BeginCheckout) SetCoupon(coupon string) *BeginCheckout {
	e.coupon = coupon
	return e
}

// Validate checks identity, currency, value > 0 and a non-empty item list.
func (e *BeginCheckout) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	return e.cart.validate(e.Action())
}

// Serialize renders the flat cart shape plus coupon.
func (e *BeginCheckout) Serialize() map[string]any {
	data := e.flatCart(&e.Tracking)
	if e.coupon != "" {
		data["coupon"] = e.coupon
	}
	return nestParams(data, e.params)
}

// AddShippingInfo records the shipping step of checkout.
type AddShippingInfo struct {
	Tracking
	cart
	shippingTier string
	coupon       string
}

// NewAddShippingInfo creates an add-shipping-info event.
func NewAddShippingInfo(currency string, value float64, opts ...Option) *AddShippingInfo {
	e := &AddShippingInfo{cart: newCart(currency, value)}
	e.apply(opts)
	return e
}

func (*AddShippingInfo) isEvent() {}

// Kind returns KindAddShippingInfo.
func (*AddShippingInfo) Kind() Kind { return KindAddShippingInfo }

// Endpoint returns the shipping info path.
func (*AddShippingInfo) Endpoint() string { return KindAddShippingInfo.Endpoint() }

// Action returns "add_shipping_info".
func (*AddShippingInfo) Action() string { return KindAddShippingInfo.Action() }

// AddItem appends an item.
func (e *AddShippingInfo) AddItem(p *model.Product) *AddShippingInfo {
	e.addItem(p)
	return e
}

// SetItems replaces the items.
func (e *AddShippingInfo) SetItems(items []*model.Product) *AddShippingInfo {
	e.setItems(items)
	return e
}

// SetShippingTier sets the shipping tier, e.g. "express".
func (e *AddShippingInfo) SetShippingTier(tier string) *AddShippingInfo {
	e.shippingTier = tier
	return e
}

// SetCoupon sets the coupon code.
func (e *AddShippingInfo) SetCoupon(coupon string) *AddShippingInfo {
	e.coupon = coupon
	return e
}

// Validate checks identity, currency, value > 0 and a non-empty item list.
func (e *AddShippingInfo) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	return e.cart.validate(e.Action())
}

// Serialize renders the flat cart shape plus shipping_tier and coupon.
func (e *AddShippingInfo) Serialize() map[string]any {
	data := e.flatCart(&e.Tracking)
	if e.shippingTier != "" {
		data["shipping_tier"] = e.shippingTier
	}
	if e.coupon != "" {
		data["coupon"] = e.coupon
	}
	return nestParams(data, e.params)
}

// AddPaymentInfo records the payment step of checkout.
type AddPaymentInfo struct {
	Tracking
	cart
	paymentType string
	coupon      string
}

// NewAddPaymentInfo creates an add-payment-info event.
func NewAddPaymentInfo(currency string, value float64, opts ...Option) *AddPaymentInfo {
	e := &AddPaymentInfo{cart: newCart(currency, value)}
	e.apply(opts)
	return e
}

func (*AddPaymentInfo) isEvent() {}

// Kind returns KindAddPaymentInfo.
func (*AddPaymentInfo) Kind() Kind { return KindAddPaymentInfo }

// Endpoint returns the payment info path.
func (*AddPaymentInfo) Endpoint() string { return KindAddPaymentInfo.Endpoint() }

// Action returns "add_payment_info".
func (*AddPaymentInfo) Action() string { return KindAddPaymentInfo.Action() }

// AddItem appends an item.
func (e *AddPaymentInfo) AddItem(p *model.Product) *AddPaymentInfo {
	e.addItem(p)
	return e
}

// SetItems replaces the items.
func (e *AddPaymentInfo) SetItems(items []*model.Product) *AddPaymentInfo {
	e.setItems(items)
	return e
}

// SetPaymentType sets the payment type, e.g. "credit_card".
func (e *AddPaymentInfo) SetPaymentType(paymentType string) *AddPaymentInfo {
	e.paymentType = paymentType
	return e
}

// SetCoupon sets the coupon code.
func (e *AddPaymentInfo) SetCoupon(coupon string) *AddPaymentInfo {
	e.coupon = coupon
	return e
}

// Validate checks identity, currency, value > 0 and a non-empty item list.
func (e *AddPaymentInfo) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	return e.cart.validate(e.Action())
}

// Serialize renders the flat cart shape plus payment_type and coupon.
func (e *AddPaymentInfo) Serialize() map[string]any {
	data := e.flatCart(&e.Tracking)
	if e.paymentType != "" {
		data["payment_type"] = e.paymentType
	}
	if e.coupon != "" {
		data["coupon"] = e.coupon
	}
	return nestParams(data, e.params)
}
