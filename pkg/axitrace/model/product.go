package model

import (
	"maps"
	"strings"
)

// Product is a catalog item as it appears in cart, checkout and catalog
// events. Only ItemID is required; optional fields are omitted from the
// wire form when unset.
//
// Custom attributes are written after the known fields by Map, so a custom
// attribute named like a known field (e.g. "price") replaces it.
type Product struct {
	itemID        string
	itemName      *string
	price         *float64
	quantity      *int
	itemCategory  *string
	itemBrand     *string
	itemVariant   *string
	index         *int
	currency      *string
	sku           *string
	url           *string
	image         *string
	inStock       *bool
	stockQuantity *int
	custom        map[string]any
}

// NewProduct creates a product with the given item ID.
func NewProduct(itemID string) *Product {
	return &Product{itemID: itemID}
}

// ProductFromMap builds a product from a loosely typed map.
//
// The item ID is the first non-empty of "item_id", "sku" and "id". For the
// other fields the snake_case / long alias is checked first and the short or
// camelCase alias second; a field with neither alias stays unset.
func ProductFromMap(data map[string]any) *Product {
	var itemID string
	for _, k := range []string{"item_id", "sku", "id"} {
		if s, ok := looseString(data[k]); ok && s != "" {
			itemID = s
			break
		}
	}
	p := NewProduct(itemID)

	if v, ok := firstPresent(data, "item_name", "name"); ok {
		if s, ok := looseString(v); ok {
			p.SetItemName(s)
		}
	}
	if f, ok := looseFloat(data["price"]); ok {
		p.SetPrice(f)
	}
	if n, ok := looseInt(data["quantity"]); ok {
		p.SetQuantity(n)
	}
	if v, ok := firstPresent(data, "item_category", "category"); ok {
		if s, ok := looseString(v); ok {
			p.SetItemCategory(s)
		}
	}
	if v, ok := firstPresent(data, "item_brand", "brand"); ok {
		if s, ok := looseString(v); ok {
			p.SetItemBrand(s)
		}
	}
	if v, ok := firstPresent(data, "item_variant", "variant"); ok {
		if s, ok := looseString(v); ok {
			p.SetItemVariant(s)
		}
	}
	if n, ok := looseInt(data["index"]); ok {
		p.SetIndex(n)
	}
	if s, ok := looseString(data["currency"]); ok {
		p.SetCurrency(s)
	}
	if s, ok := looseString(data["sku"]); ok {
		p.SetSKU(s)
	}
	if s, ok := looseString(data["url"]); ok {
		p.SetURL(s)
	}
	if s, ok := looseString(data["image"]); ok {
		p.SetImage(s)
	}
	if v, ok := firstPresent(data, "in_stock", "inStock"); ok {
		if b, ok := looseBool(v); ok {
			p.SetInStock(b)
		}
	}
	if v, ok := firstPresent(data, "stock_quantity", "stockQuantity"); ok {
		if n, ok := looseInt(v); ok {
			p.SetStockQuantity(n)
		}
	}

	return p
}

// Map renders the wire form of the product. The result is a fresh map;
// the product is not modified.
func (p *Product) Map() map[string]any {
	data := map[string]any{"item_id": p.itemID}

	putString(data, "item_name", p.itemName)
	if p.price != nil {
		data["price"] = *p.price
	}
	putInt(data, "quantity", p.quantity)
	putString(data, "item_category", p.itemCategory)
	putString(data, "item_brand", p.itemBrand)
	putString(data, "item_variant", p.itemVariant)
	putInt(data, "index", p.index)
	putString(data, "currency", p.currency)
	putString(data, "sku", p.sku)
	putString(data, "url", p.url)
	putString(data, "image", p.image)
	if p.inStock != nil {
		data["inStock"] = *p.inStock
	}
	putInt(data, "stockQuantity", p.stockQuantity)

	maps.Copy(data, p.custom)
	return data
}

func putString(data map[string]any, key string, v *string) {
	if v != nil {
		data[key] = *v
	}
}

func putInt(data map[string]any, key string, v *int) {
	if v != nil {
		data[key] = *v
	}
}

// SetItemName sets the display name.
func (p *Product) SetItemName(name string) *Product {
	p.itemName = &name
	return p
}

// SetPrice sets the unit price.
func (p *Product) SetPrice(price float64) *Product {
	p.price = &price
	return p
}

// SetQuantity sets the quantity.
func (p *Product) SetQuantity(quantity int) *Product {
	p.quantity = &quantity
	return p
}

// SetItemCategory sets the category.
func (p *Product) SetItemCategory(category string) *Product {
	p.itemCategory = &category
	return p
}

// SetItemBrand sets the brand.
func (p *Product) SetItemBrand(brand string) *Product {
	p.itemBrand = &brand
	return p
}

// SetItemVariant sets the variant.
func (p *Product) SetItemVariant(variant string) *Product {
	p.itemVariant = &variant
	return p
}

// SetIndex sets the position of the item in a list.
func (p *Product) SetIndex(index int) *Product {
	p.index = &index
	return p
}

// SetCurrency sets the item currency, uppercased.
func (p *Product) SetCurrency(currency string) *Product {
	c := strings.ToUpper(currency)
	p.currency = &c
	return p
}

// SetSKU sets the stock keeping unit.
func (p *Product) SetSKU(sku string) *Product {
	p.sku = &sku
	return p
}

// SetURL sets the product page URL.
func (p *Product) SetURL(url string) *Product {
	p.url = &url
	return p
}

// SetImage sets the product image URL.
func (p *Product) SetImage(image string) *Product {
	p.image = &image
	return p
}

// SetInStock sets the availability flag.
func (p *Product) SetInStock(inStock bool) *Product {
	p.inStock = &inStock
	return p
}

// SetStockQuantity sets the number of units in stock.
func (p *Product) SetStockQuantity(n int) *Product {
	p.stockQuantity = &n
	return p
}

// SetCustomAttribute sets an extra attribute emitted at the top level of
// the wire form.
func (p *Product) SetCustomAttribute(key string, value any) *Product {
	if p.custom == nil {
		p.custom = make(map[string]any)
	}
	p.custom[key] = value
	return p
}

// ItemID returns the item ID.
func (p *Product) ItemID() string { return p.itemID }

// ItemName returns the name and whether it is set.
func (p *Product) ItemName() (string, bool) { return deref(p.itemName) }

// Price returns the price and whether it is set.
func (p *Product) Price() (float64, bool) { return deref(p.price) }

// Quantity returns the quantity and whether it is set.
func (p *Product) Quantity() (int, bool) { return deref(p.quantity) }

// ItemCategory returns the category and whether it is set.
func (p *Product) ItemCategory() (string, bool) { return deref(p.itemCategory) }

// ItemBrand returns the brand and whether it is set.
func (p *Product) ItemBrand() (string, bool) { return deref(p.itemBrand) }

// Currency returns the item currency and whether it is set.
func (p *Product) Currency() (string, bool) { return deref(p.currency) }

// SKU returns the SKU and whether it is set.
func (p *Product) SKU() (string, bool) { return deref(p.sku) }

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
