package model_test

import (
	"encoding/json"
	"testing"

	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"uppercase kept", 10.5, "USD", "USD"},
		{"lowercase normalized", 99.99, "eur", "EUR"},
		{"mixed case normalized", 1, "gBp", "GBP"},
		{"no rounding applied", 1234.567, "jpy", "JPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.NewMoney(tt.amount, tt.currency)
			assert.Equal(t, tt.amount, m.Amount())
			assert.Equal(t, tt.want, m.Currency())
		})
	}
}

func TestMoneyMap(t *testing.T) {
	m := model.NewMoney(150.5, "usd")
	assert.Equal(t, map[string]any{"amount": 150.5, "currency": "USD"}, m.Map())
	assert.Equal(t, "150.50 USD", m.String())
}

func TestMoneyFromMap(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		amount   float64
		currency string
	}{
		{"full", map[string]any{"amount": 10.0, "currency": "eur"}, 10, "EUR"},
		{"int amount", map[string]any{"amount": 7, "currency": "USD"}, 7, "USD"},
		{"string amount", map[string]any{"amount": "3.25"}, 3.25, "USD"},
		{"empty map defaults", map[string]any{}, 0, "USD"},
		{"nil map defaults", nil, 0, "USD"},
		{"garbage amount", map[string]any{"amount": []int{1}}, 0, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.MoneyFromMap(tt.data)
			assert.Equal(t, tt.amount, m.Amount())
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestProductMapOmitsUnset(t *testing.T) {
	p := model.NewProduct("SKU-1")
	assert.Equal(t, map[string]any{"item_id": "SKU-1"}, p.Map())
}

func TestProductMapAllFields(t *testing.T) {
	p := model.NewProduct("SKU-1").
		SetItemName("Shoe").
		SetPrice(49.99).
		SetQuantity(2).
		SetItemCategory("Footwear").
		SetItemBrand("Acme").
		SetItemVariant("Red").
		SetIndex(3).
		SetCurrency("usd").
		SetSKU("SKU-1").
		SetURL("https://shop.example/shoe").
		SetImage("https://shop.example/shoe.png").
		SetInStock(true).
		SetStockQuantity(12)

	assert.Equal(t, map[string]any{
		"item_id":       "SKU-1",
		"item_name":     "Shoe",
		"price":         49.99,
		"quantity":      2,
		"item_category": "Footwear",
		"item_brand":    "Acme",
		"item_variant":  "Red",
		"index":         3,
		"currency":      "USD",
		"sku":           "SKU-1",
		"url":           "https://shop.example/shoe",
		"image":         "https://shop.example/shoe.png",
		"inStock":       true,
		"stockQuantity": 12,
	}, p.Map())
}

func TestProductCustomAttributesOverrideKnownFields(t *testing.T) {
	p := model.NewProduct("SKU-1").
		SetPrice(10).
		SetCustomAttribute("color", "blue").
		SetCustomAttribute("price", "free")

	data := p.Map()
	assert.Equal(t, "blue", data["color"])
	assert.Equal(t, "free", data["price"], "custom attributes are written last")

	got, ok := p.Price()
	require.True(t, ok)
	assert.Equal(t, 10.0, got, "Map must not mutate the product")
}

func TestProductFromMapItemID(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"item_id wins", map[string]any{"item_id": "A", "sku": "B", "id": "C"}, "A"},
		{"sku fallback", map[string]any{"sku": "B", "id": "C"}, "B"},
		{"id fallback", map[string]any{"id": "C"}, "C"},
		{"empty item_id skipped", map[string]any{"item_id": "", "sku": "B"}, "B"},
		{"numeric id", map[string]any{"id": 42}, "42"},
		{"none", map[string]any{"name": "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ProductFromMap(tt.data).ItemID())
		})
	}
}

func TestProductFromMapAliases(t *testing.T) {
	t.Run("primary alias wins", func(t *testing.T) {
		p := model.ProductFromMap(map[string]any{
			"item_id":       "A",
			"item_name":     "Primary",
			"name":          "Secondary",
			"item_category": "Cat1",
			"category":      "Cat2",
			"in_stock":      false,
			"inStock":       true,
		})
		data := p.Map()
		assert.Equal(t, "Primary", data["item_name"])
		assert.Equal(t, "Cat1", data["item_category"])
		assert.Equal(t, false, data["inStock"])
	})

	t.Run("secondary alias used", func(t *testing.T) {
		p := model.ProductFromMap(map[string]any{
			"sku":           "A",
			"name":          "Shoe",
			"brand":         "Acme",
			"variant":       "Red",
			"stockQuantity": 4,
			"inStock":       true,
		})
		data := p.Map()
		assert.Equal(t, "Shoe", data["item_name"])
		assert.Equal(t, "Acme", data["item_brand"])
		assert.Equal(t, "Red", data["item_variant"])
		assert.Equal(t, 4, data["stockQuantity"])
		assert.Equal(t, true, data["inStock"])
		assert.Equal(t, "A", data["sku"])
	})

	t.Run("absent aliases stay unset", func(t *testing.T) {
		p := model.ProductFromMap(map[string]any{"item_id": "A"})
		_, ok := p.ItemName()
		assert.False(t, ok)
		_, ok = p.ItemCategory()
		assert.False(t, ok)
	})

	t.Run("currency uppercased", func(t *testing.T) {
		p := model.ProductFromMap(map[string]any{"item_id": "A", "currency": "usd"})
		c, ok := p.Currency()
		require.True(t, ok)
		assert.Equal(t, "USD", c)
	})
}

func TestProductRoundTrip(t *testing.T) {
	original := model.NewProduct("SKU-9").
		SetItemName("Hat").
		SetPrice(19.5).
		SetQuantity(3).
		SetItemCategory("Accessories").
		SetItemBrand("Acme")

	copied := model.ProductFromMap(original.Map())
	assert.Equal(t, original.Map(), copied.Map())
}

func TestProductRoundTripThroughJSON(t *testing.T) {
	original := model.NewProduct("SKU-9").SetItemName("Hat").SetPrice(19.5).SetQuantity(3)

	raw, err := json.Marshal(original.Map())
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	copied := model.ProductFromMap(decoded)
	assert.Equal(t, "SKU-9", copied.ItemID())
	q, ok := copied.Quantity()
	require.True(t, ok)
	assert.Equal(t, 3, q)
	price, _ := copied.Price()
	assert.Equal(t, 19.5, price)
}

func TestClientIdentity(t *testing.T) {
	t.Run("empty has no identifier", func(t *testing.T) {
		c := &model.ClientIdentity{}
		assert.False(t, c.HasIdentifier())
		assert.Empty(t, c.Map())
	})

	t.Run("nil is safe", func(t *testing.T) {
		var c *model.ClientIdentity
		assert.False(t, c.HasIdentifier())
		assert.Empty(t, c.Map())
	})

	tests := []struct {
		name string
		set  func(*model.ClientIdentity)
		want map[string]any
	}{
		{"custom id", func(c *model.ClientIdentity) { c.SetCustomID("v1") }, map[string]any{"customId": "v1"}},
		{"numeric id", func(c *model.ClientIdentity) { c.SetNumericID(7) }, map[string]any{"id": int64(7)}},
		{"uuid", func(c *model.ClientIdentity) { c.SetUUID("u-1") }, map[string]any{"uuid": "u-1"}},
		{"email", func(c *model.ClientIdentity) { c.SetEmail("a@b.co") }, map[string]any{"email": "a@b.co"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.ClientIdentity{}
			tt.set(c)
			assert.True(t, c.HasIdentifier())
			assert.Equal(t, tt.want, c.Map())
		})
	}
}

func TestClientIdentityFromMapRoundTrip(t *testing.T) {
	c := model.ClientIdentityFromMap(map[string]any{
		"customId": "v1",
		"id":       float64(12),
		"uuid":     "u-1",
		"email":    "a@b.co",
	})
	data := c.Map()
	assert.Equal(t, map[string]any{"customId": "v1", "id": int64(12), "uuid": "u-1", "email": "a@b.co"}, data)
	assert.Equal(t, data, model.ClientIdentityFromMap(data).Map())
}

func TestProductsFromAny(t *testing.T) {
	p := model.NewProduct("P1")

	assert.Equal(t, []*model.Product{p}, model.ProductsFromAny([]*model.Product{p}))

	fromMaps := model.ProductsFromAny([]map[string]any{{"sku": "S1"}, {"item_id": "S2"}})
	require.Len(t, fromMaps, 2)
	assert.Equal(t, "S1", fromMaps[0].ItemID())
	assert.Equal(t, "S2", fromMaps[1].ItemID())

	mixed := model.ProductsFromAny([]any{p, map[string]any{"id": "S3"}, "junk", (*model.Product)(nil)})
	require.Len(t, mixed, 2)
	assert.Equal(t, "P1", mixed[0].ItemID())
	assert.Equal(t, "S3", mixed[1].ItemID())

	assert.Nil(t, model.ProductsFromAny("nope"))
}

func TestLooseCoercion(t *testing.T) {
	s, ok := model.AsString(42)
	assert.True(t, ok)
	assert.Equal(t, "42", s)

	f, ok := model.AsFloat("9.5")
	assert.True(t, ok)
	assert.Equal(t, 9.5, f)

	n, ok := model.AsInt(float64(7))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = model.AsInt("seven")
	assert.False(t, ok)
}
