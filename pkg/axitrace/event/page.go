package event

import (
	"strings"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// PageView records a page impression.
type PageView struct {
	Tracking
	url       string
	title     string
	referrer  string
	eventSalt string
}

// NewPageView creates a page view for url.
func NewPageView(url string, opts ...Option) *PageView {
	e := &PageView{url: url}
	e.apply(opts)
	return e
}

func (*PageView) isEvent() {}

// Kind returns KindPageView.
func (*PageView) Kind() Kind { return KindPageView }

// Endpoint returns the page view path.
func (*PageView) Endpoint() string { return KindPageView.Endpoint() }

// Action returns "page_view".
func (*PageView) Action() string { return KindPageView.Action() }

// SetTitle sets the page title.
func (e *PageView) SetTitle(title string) *PageView {
	e.title = title
	return e
}

// SetReferrer sets the referring URL.
func (e *PageView) SetReferrer(referrer string) *PageView {
	e.referrer = referrer
	return e
}

// SetEventSalt sets the deduplication salt.
func (e *PageView) SetEventSalt(salt string) *PageView {
	e.eventSalt = salt
	return e
}

// Validate checks identity and that the URL is non-empty.
func (e *PageView) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	if e.url == "" {
		return axerrors.MissingField("url", e.Action())
	}
	return nil
}

// Serialize renders {label, client, sessionId?, eventSalt?, params:{url, title?, referrer?, ...}}.
func (e *PageView) Serialize() map[string]any {
	data := e.labelEnvelope(e.Action())
	if e.eventSalt != "" {
		data["eventSalt"] = e.eventSalt
	}

	params := map[string]any{"url": e.url}
	if e.title != "" {
		params["title"] = e.title
	}
	if e.referrer != "" {
		params["referrer"] = e.referrer
	}
	data["params"] = e.mergeParams(params)
	return data
}

// ProductView records a product detail view.
type ProductView struct {
	Tracking
	product *model.Product
}

// NewProductView creates a product view. A nil product is treated as a
// product with an empty item ID.
func NewProductView(product *model.Product, opts ...Option) *ProductView {
	if product == nil {
		product = model.NewProduct("")
	}
	e := &ProductView{product: product}
	e.apply(opts)
	return e
}

// NewProductViewFromMap builds the product with model.ProductFromMap.
func NewProductViewFromMap(data map[string]any, opts ...Option) *ProductView {
	return NewProductView(model.ProductFromMap(data), opts...)
}

func (*ProductView) isEvent() {}

// Kind returns KindProductView.
func (*ProductView) Kind() Kind { return KindProductView }

// Endpoint returns the product view path.
func (*ProductView) Endpoint() string { return KindProductView.Endpoint() }

// Action returns "product_view".
func (*ProductView) Action() string { return KindProductView.Action() }

// Product returns the viewed product.
func (e *ProductView) Product() *model.Product { return e.product }

// Validate checks identity and the product item ID.
func (e *ProductView) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	if e.product.ItemID() == "" {
		return axerrors.MissingField("product.item_id", e.Action())
	}
	return nil
}

// Serialize renders the label envelope with the product flattened into params.
func (e *ProductView) Serialize() map[string]any {
	data := e.labelEnvelope(e.Action())

	params := map[string]any{"sku": e.product.ItemID()}
	if v, ok := e.product.ItemName(); ok {
		params["name"] = v
	}
	if v, ok := e.product.Price(); ok {
		params["price"] = v
	}
	if v, ok := e.product.Currency(); ok {
		params["currency"] = v
	}
	if v, ok := e.product.ItemCategory(); ok {
		params["category"] = v
	}
	if v, ok := e.product.ItemBrand(); ok {
		params["brand"] = v
	}
	data["params"] = e.mergeParams(params)
	return data
}

// AddToCart records items added to the cart.
type AddToCart struct {
	Tracking
	cart
}

// NewAddToCart creates an add-to-cart event. The currency is uppercased.
func NewAddToCart(currency string, value float64, opts ...Option) *AddToCart {
	e := &AddToCart{cart: newCart(currency, value)}
	e.apply(opts)
	return e
}

func (*AddToCart) isEvent() {}

// Kind returns KindAddToCart.
func (*AddToCart) Kind() Kind { return KindAddToCart }

// Endpoint returns the add-to-cart path.
func (*AddToCart) Endpoint() string { return KindAddToCart.Endpoint() }

// Action returns "add_to_cart".
func (*AddToCart) Action() string { return KindAddToCart.Action() }

// AddItem appends an item.
func (e *AddToCart) AddItem(p *model.Product) *AddToCart {
	e.addItem(p)
	return e
}

// SetItems replaces the items.
func (e *AddToCart) SetItems(items []*model.Product) *AddToCart {
	e.setItems(items)
	return e
}

// Validate checks identity, currency, value > 0 and a non-empty item list.
func (e *AddToCart) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	return e.cart.validate(e.Action())
}

// Serialize renders the label envelope. A single item is flattened into
// params as {sku, quantity, name?, finalUnitPrice?}; several items are sent
// as {currency, value, items}.
func (e *AddToCart) Serialize() map[string]any {
	data := e.labelEnvelope(e.Action())

	var params map[string]any
	if len(e.items) == 1 {
		item := e.items[0]
		quantity, ok := item.Quantity()
		if !ok {
			quantity = 1
		}
		params = map[string]any{
			"sku":      item.ItemID(),
			"quantity": quantity,
		}
		if name, ok := item.ItemName(); ok {
			params["name"] = name
		}
		if price, ok := item.Price(); ok {
			currency, ok := item.Currency()
			if !ok {
				currency = e.currency
			}
			params["finalUnitPrice"] = model.NewMoney(price, currency).Map()
		}
	} else {
		params = map[string]any{
			"currency": e.currency,
			"value":    e.value,
			"items":    e.itemMaps(),
		}
	}

	data["params"] = e.mergeParams(params)
	return data
}

// cart is the currency/value/items triple shared by cart and checkout events.
type cart struct {
	currency string
	value    float64
	items    []*model.Product
}

func newCart(currency string, value float64) cart {
	return cart{currency: strings.ToUpper(currency), value: value}
}

func (c *cart) addItem(p *model.Product) {
	if p != nil {
		c.items = append(c.items, p)
	}
}

func (c *cart) setItems(items []*model.Product) {
	c.items = c.items[:0:0]
	for _, p := range items {
		c.addItem(p)
	}
}

// Currency returns the uppercased currency.
func (c *cart) Currency() string { return c.currency }

// Value returns the monetary value.
func (c *cart) Value() float64 { return c.value }

// Items returns the items.
func (c *cart) Items() []*model.Product { return c.items }

func (c *cart) validate(action string) error {
	if c.currency == "" {
		return axerrors.MissingField("currency", action)
	}
	if c.value <= 0 {
		return axerrors.NonPositiveValue("value", action, c.value)
	}
	if len(c.items) == 0 {
		return axerrors.EmptyItems("items", action)
	}
	return nil
}

func (c *cart) itemMaps() []map[string]any {
	out := make([]map[string]any, len(c.items))
	for i, p := range c.items {
		out[i] = p.Map()
	}
	return out
}

// flatCart renders the flat cart root: identity, currency, value, items.
func (c *cart) flatCart(t *Tracking) map[string]any {
	data := t.flatIdentity()
	data["currency"] = c.currency
	data["value"] = c.value
	data["items"] = c.itemMaps()
	return data
}
