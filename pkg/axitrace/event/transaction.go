package event

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"

	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// Source is the channel a transaction originated from.
type Source string

// Valid transaction sources.
const (
	SourceWebDesktop Source = "WEB_DESKTOP"
	SourceWebMobile  Source = "WEB_MOBILE"
	SourceMobileApp  Source = "MOBILE_APP"
	SourcePOS        Source = "POS"
	SourceMobile     Source = "MOBILE"
	SourceDesktop    Source = "DESKTOP"
)

// Sources returns every valid source.
func Sources() []Source {
	return []Source{SourceWebDesktop, SourceWebMobile, SourceMobileApp, SourcePOS, SourceMobile, SourceDesktop}
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	return slices.Contains(Sources(), s)
}

// Transaction records a completed order.
//
// Identity comes from a model.ClientIdentity rather than the shared client,
// user and session IDs. The transaction payload has no session or params
// fields, so values set through the embedded Tracking are not sent.
type Transaction struct {
	Tracking
	orderID        string
	source         Source
	revenue        model.Money
	value          model.Money
	paymentMethod  string
	client         *model.ClientIdentity
	products       []map[string]any
	discountAmount *model.Money
	metadata       map[string]any
	eventSalt      string
}

// NewTransaction creates a transaction from Money values.
func NewTransaction(orderID string, source Source, revenue, value model.Money, paymentMethod string) *Transaction {
	return &Transaction{
		orderID:       orderID,
		source:        source,
		revenue:       revenue,
		value:         value,
		paymentMethod: paymentMethod,
		client:        &model.ClientIdentity{},
	}
}

// CreateTransaction creates a transaction with revenue and value in one
// currency and source WEB_DESKTOP.
func CreateTransaction(orderID string, revenue, value float64, currency, paymentMethod string) *Transaction {
	return NewTransaction(orderID, SourceWebDesktop,
		model.NewMoney(revenue, currency), model.NewMoney(value, currency), paymentMethod)
}

func (*Transaction) isEvent() {}

// Kind returns KindTransaction.
func (*Transaction) Kind() Kind { return KindTransaction }

// Endpoint returns the transaction path.
func (*Transaction) Endpoint() string { return KindTransaction.Endpoint() }

// Action returns "transaction".
func (*Transaction) Action() string { return KindTransaction.Action() }

// SetSource sets the originating channel.
func (e *Transaction) SetSource(source Source) *Transaction {
	e.source = source
	return e
}

// SetClient replaces the client identity.
func (e *Transaction) SetClient(client *model.ClientIdentity) *Transaction {
	if client == nil {
		client = &model.ClientIdentity{}
	}
	e.client = client
	return e
}

// Client returns the client identity.
func (e *Transaction) Client() *model.ClientIdentity { return e.client }

// SetClientCustomID sets client.customId.
func (e *Transaction) SetClientCustomID(id string) *Transaction {
	e.client.SetCustomID(id)
	return e
}

// SetClientEmail sets client.email.
func (e *Transaction) SetClientEmail(email string) *Transaction {
	e.client.SetEmail(email)
	return e
}

// AddProduct appends a product line. Lines are sent as given and must carry
// "sku" and "name".
func (e *Transaction) AddProduct(product map[string]any) *Transaction {
	e.products = append(e.products, product)
	return e
}

// SetProducts replaces the product lines.
func (e *Transaction) SetProducts(products []map[string]any) *Transaction {
	e.products = slices.Clone(products)
	return e
}

// SetDiscountAmount sets the order discount.
func (e *Transaction) SetDiscountAmount(discount model.Money) *Transaction {
	e.discountAmount = &discount
	return e
}

// SetMetadata sets free-form order metadata.
func (e *Transaction) SetMetadata(metadata map[string]any) *Transaction {
	e.metadata = metadata
	return e
}

// SetEventSalt sets the deduplication salt.
func (e *Transaction) SetEventSalt(salt string) *Transaction {
	e.eventSalt = salt
	return e
}

// Validate checks, in order: client identity, orderId, payment method,
// source, a non-empty product list and sku/name on every product.
func (e *Transaction) Validate() error {
	action := e.Action()
	if !e.client.HasIdentifier() {
		return axerrors.MissingUserIdentifier(action)
	}
	if isBlank(e.orderID) {
		return axerrors.MissingField("orderId", action)
	}
	if isBlank(e.paymentMethod) {
		return axerrors.MissingField("paymentInfo.method", action)
	}
	if !e.source.Valid() {
		allowed := make([]string, 0, len(Sources()))
		for _, s := range Sources() {
			allowed = append(allowed, string(s))
		}
		return axerrors.InvalidValue("source", action, string(e.source), allowed)
	}
	if len(e.products) == 0 {
		return axerrors.EmptyItems("products", action)
	}
	for i, p := range e.products {
		if isBlank(p["sku"]) {
			return axerrors.MissingField(fmt.Sprintf("products[%d].sku", i), action)
		}
		if isBlank(p["name"]) {
			return axerrors.MissingField(fmt.Sprintf("products[%d].name", i), action)
		}
	}
	return nil
}

// Serialize renders {client, orderId, source, revenue, value, paymentInfo,
// products, discountAmount?, metadata?, eventSalt?}.
func (e *Transaction) Serialize() map[string]any {
	products := make([]map[string]any, len(e.products))
	for i, p := range e.products {
		products[i] = maps.Clone(p)
	}

	data := map[string]any{
		"client":      e.client.Map(),
		"orderId":     e.orderID,
		"source":      string(e.source),
		"revenue":     e.revenue.Map(),
		"value":       e.value.Map(),
		"paymentInfo": map[string]any{"method": e.paymentMethod},
		"products":    products,
	}
	if e.discountAmount != nil {
		data["discountAmount"] = e.discountAmount.Map()
	}
	if len(e.metadata) > 0 {
		data["metadata"] = maps.Clone(e.metadata)
	}
	if e.eventSalt != "" {
		data["eventSalt"] = e.eventSalt
	}
	return data
}

// isBlank reports whether v is missing or empty: nil, "", "0", false,
// any zero number and any empty slice or map.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == "" || val == "0"
	case bool:
		return !val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
