package axitrace

import (
	"context"
	"maps"

	"github.com/randalmurphal/axitrace/pkg/axitrace/api"
	"github.com/randalmurphal/axitrace/pkg/axitrace/event"
	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// The methods below build one event each from loosely typed arguments and
// send it with Track. Recognized keys are taken out of params and applied
// through the event's setters; whatever is left becomes free-form params.
// params is never modified.

// PageView tracks a page view. Recognized params: title, referrer.
func (c *Client) PageView(ctx context.Context, url string, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewPageView(url)
	if s, ok := b.takeString("title"); ok {
		ev.SetTitle(s)
	}
	if s, ok := b.takeString("referrer"); ok {
		ev.SetReferrer(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// ProductView tracks a product detail view. product is read with
// model.ProductFromMap.
func (c *Client) ProductView(ctx context.Context, product map[string]any, params map[string]any) (*api.Response, error) {
	var p *model.Product
	if product != nil {
		p = model.ProductFromMap(product)
	}
	ev := event.NewProductView(p, event.WithParams(params))
	return c.Track(ctx, ev)
}

// AddToCart tracks items added to the cart.
func (c *Client) AddToCart(ctx context.Context, value float64, currency string, items []map[string]any, params map[string]any) (*api.Response, error) {
	ev := event.NewAddToCart(currency, value, event.WithParams(params)).
		SetItems(model.ProductsFromAny(items))
	return c.Track(ctx, ev)
}

// RemoveFromCart tracks items removed from the cart.
func (c *Client) RemoveFromCart(ctx context.Context, value float64, currency string, items []map[string]any, params map[string]any) (*api.Response, error) {
	ev := event.NewRemoveFromCart(currency, value, event.WithParams(params)).
		SetItems(model.ProductsFromAny(items))
	return c.Track(ctx, ev)
}

// BeginCheckout tracks the start of checkout. Recognized params: coupon.
func (c *Client) BeginCheckout(ctx context.Context, value float64, currency string, items []map[string]any, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewBeginCheckout(currency, value).SetItems(model.ProductsFromAny(items))
	if s, ok := b.takeString("coupon"); ok {
		ev.SetCoupon(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// AddShippingInfo tracks submitted shipping details. Recognized params:
// shipping_tier, coupon.
func (c *Client) AddShippingInfo(ctx context.Context, value float64, currency string, items []map[string]any, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewAddShippingInfo(currency, value).SetItems(model.ProductsFromAny(items))
	if s, ok := b.takeString("shipping_tier"); ok {
		ev.SetShippingTier(s)
	}
	if s, ok := b.takeString("coupon"); ok {
		ev.SetCoupon(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// AddPaymentInfo tracks submitted payment details. Recognized params:
// payment_type, coupon.
func (c *Client) AddPaymentInfo(ctx context.Context, value float64, currency string, items []map[string]any, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewAddPaymentInfo(currency, value).SetItems(model.ProductsFromAny(items))
	if s, ok := b.takeString("payment_type"); ok {
		ev.SetPaymentType(s)
	}
	if s, ok := b.takeString("coupon"); ok {
		ev.SetCoupon(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// Transaction tracks a completed order. Each product line must carry "sku"
// and "name".
//
// Recognized params: source (default WEB_DESKTOP), email (client email),
// discount_amount with discount_currency, metadata. Other params are
// dropped; the transaction payload has no free-form params.
func (c *Client) Transaction(ctx context.Context, orderID string, revenue, value float64, currency, paymentMethod string, products []map[string]any, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.CreateTransaction(orderID, revenue, value, currency, paymentMethod).
		SetProducts(products)
	if s, ok := b.takeString("source"); ok {
		ev.SetSource(event.Source(s))
	}
	if s, ok := b.takeString("email"); ok {
		ev.SetClientEmail(s)
	}
	if b.has("discount_amount") && b.has("discount_currency") {
		amount, _ := b.takeFloat("discount_amount")
		cur, _ := b.takeString("discount_currency")
		ev.SetDiscountAmount(model.NewMoney(amount, cur))
	}
	if v, ok := b.take("metadata"); ok {
		if m, ok := v.(map[string]any); ok {
			ev.SetMetadata(m)
		}
	}
	return c.Track(ctx, ev)
}

// Subscribe tracks a mailing list signup. Recognized params:
// subscription_type.
func (c *Client) Subscribe(ctx context.Context, email string, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewSubscribe(email)
	if s, ok := b.takeString("subscription_type"); ok {
		ev.SetSubscriptionType(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// StartTrial tracks the start of a trial. Recognized params:
// trial_period_days, trial_value with trial_currency, predicted_ltv, email.
func (c *Client) StartTrial(ctx context.Context, planName string, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewStartTrial(planName)
	if n, ok := b.takeInt("trial_period_days"); ok {
		ev.SetTrialPeriodDays(n)
	}
	if b.has("trial_value") && b.has("trial_currency") {
		v, _ := b.takeFloat("trial_value")
		cur, _ := b.takeString("trial_currency")
		ev.SetTrialValue(v, cur)
	}
	if f, ok := b.takeFloat("predicted_ltv"); ok {
		ev.SetPredictedLTV(f)
	}
	if s, ok := b.takeString("email"); ok {
		ev.SetEmail(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// Search tracks a site search. Recognized params: results_count, category,
// filters, sort_by, page.
func (c *Client) Search(ctx context.Context, term string, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewSearch(term)
	if n, ok := b.takeInt("results_count"); ok {
		ev.SetResultsCount(n)
	}
	if s, ok := b.takeString("category"); ok {
		ev.SetCategory(s)
	}
	if v, ok := b.take("filters"); ok {
		if m, ok := v.(map[string]any); ok {
			ev.SetFilters(m)
		}
	}
	if s, ok := b.takeString("sort_by"); ok {
		ev.SetSortBy(s)
	}
	if n, ok := b.takeInt("page"); ok {
		ev.SetPage(n)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// FormSubmit tracks a submitted form. An "email" field in formData also
// becomes the client email.
func (c *Client) FormSubmit(ctx context.Context, label string, formData map[string]any, params map[string]any) (*api.Response, error) {
	ev := event.NewFormSubmit(label, event.WithParams(params)).SetFormParams(formData)
	if s, ok := model.AsString(formData["email"]); ok && s != "" {
		ev.SetClientEmail(s)
	}
	return c.Track(ctx, ev)
}

// ViewItemList tracks a product list impression. Recognized params:
// item_list_id, item_list_name, items (maps or *model.Product values).
func (c *Client) ViewItemList(ctx context.Context, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewViewItemList()
	if s, ok := b.takeString("item_list_id"); ok {
		ev.SetItemListID(s)
	}
	if s, ok := b.takeString("item_list_name"); ok {
		ev.SetItemListName(s)
	}
	if v, ok := b.take("items"); ok {
		ev.SetItems(model.ProductsFromAny(v))
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// SelectItem tracks the selection of one item from a list. Recognized
// params: item_list_id, item_list_name.
func (c *Client) SelectItem(ctx context.Context, item map[string]any, params map[string]any) (*api.Response, error) {
	b := newBag(params)
	ev := event.NewSelectItem(nil)
	if item != nil {
		ev.SetItem(model.ProductFromMap(item))
	}
	if s, ok := b.takeString("item_list_id"); ok {
		ev.SetItemListID(s)
	}
	if s, ok := b.takeString("item_list_name"); ok {
		ev.SetItemListName(s)
	}
	ev.SetParams(b)
	return c.Track(ctx, ev)
}

// bag is a private copy of caller params that recognized keys are taken from.
type bag map[string]any

func newBag(params map[string]any) bag {
	b := bag(maps.Clone(params))
	if b == nil {
		b = bag{}
	}
	return b
}

func (b bag) has(key string) bool {
	return b[key] != nil
}

// take removes key and returns its value; nil values count as absent.
func (b bag) take(key string) (any, bool) {
	v, ok := b[key]
	if !ok {
		return nil, false
	}
	delete(b, key)
	return v, v != nil
}

func (b bag) takeString(key string) (string, bool) {
	v, ok := b.take(key)
	if !ok {
		return "", false
	}
	return model.AsString(v)
}

func (b bag) takeInt(key string) (int, bool) {
	v, ok := b.take(key)
	if !ok {
		return 0, false
	}
	return model.AsInt(v)
}

func (b bag) takeFloat(key string) (float64, bool) {
	v, ok := b.take(key)
	if !ok {
		return 0, false
	}
	return model.AsFloat(v)
}
