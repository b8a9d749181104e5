package event

import (
	axerrors "github.com/randalmurphal/axitrace/pkg/axitrace/errors"
	"github.com/randalmurphal/axitrace/pkg/axitrace/model"
)

// listRef is the optional list reference shared by catalog events.
type listRef struct {
	itemListID   string
	itemListName string
}

func (l *listRef) render(data map[string]any) {
	if l.itemListID != "" {
		data["item_list_id"] = l.itemListID
	}
	if l.itemListName != "" {
		data["item_list_name"] = l.itemListName
	}
}

// ViewItemList records an impression of a product list.
type ViewItemList struct {
	Tracking
	listRef
	items []*model.Product
}

// NewViewItemList creates an empty list view.
func NewViewItemList(opts ...Option) *ViewItemList {
	e := &ViewItemList{}
	e.apply(opts)
	return e
}

func (*ViewItemList) isEvent() {}

// Kind returns KindViewItemList.
func (*ViewItemList) Kind() Kind { return KindViewItemList }

// Endpoint returns the list view path.
func (*ViewItemList) Endpoint() string { return KindViewItemList.Endpoint() }

// Action returns "view_item_list".
func (*ViewItemList) Action() string { return KindViewItemList.Action() }

// SetItemListID sets the list ID.
func (e *ViewItemList) SetItemListID(id string) *ViewItemList {
	e.itemListID = id
	return e
}

// SetItemListName sets the list name.
func (e *ViewItemList) SetItemListName(name string) *ViewItemList {
	e.itemListName = name
	return e
}

// AddItem appends an item.
func (e *ViewItemList) AddItem(p *model.Product) *ViewItemList {
	if p != nil {
		e.items = append(e.items, p)
	}
	return e
}

// SetItems replaces the items.
func (e *ViewItemList) SetItems(items []*model.Product) *ViewItemList {
	e.items = nil
	for _, p := range items {
		e.AddItem(p)
	}
	return e
}

// Items returns the items.
func (e *ViewItemList) Items() []*model.Product { return e.items }

// Validate only requires identity.
func (e *ViewItemList) Validate() error {
	return e.validateIdentity(e.Action())
}

// Serialize renders {identity..., item_list_id?, item_list_name?, items?, params?}.
func (e *ViewItemList) Serialize() map[string]any {
	data := e.flatIdentity()
	e.render(data)
	if len(e.items) > 0 {
		items := make([]map[string]any, len(e.items))
		for i, p := range e.items {
			items[i] = p.Map()
		}
		data["items"] = items
	}
	return nestParams(data, e.params)
}

// SelectItem records the selection of exactly one item from a list.
type SelectItem struct {
	Tracking
	listRef
	items []*model.Product
}

// NewSelectItem creates a selection; item may be nil and set later.
func NewSelectItem(item *model.Product, opts ...Option) *SelectItem {
	e := &SelectItem{}
	e.SetItem(item)
	e.apply(opts)
	return e
}

// NewSelectItemFromMap builds the item with model.ProductFromMap.
func NewSelectItemFromMap(data map[string]any, opts ...Option) *SelectItem {
	return NewSelectItem(model.ProductFromMap(data), opts...)
}

func (*SelectItem) isEvent() {}

// Kind returns KindSelectItem.
func (*SelectItem) Kind() Kind { return KindSelectItem }

// Endpoint returns the item selection path.
func (*SelectItem) Endpoint() string { return KindSelectItem.Endpoint() }

// Action returns "select_item".
func (*SelectItem) Action() string { return KindSelectItem.Action() }

// SetItem sets the selected item; nil clears it.
func (e *SelectItem) SetItem(p *model.Product) *SelectItem {
	e.items = e.items[:0]
	if p != nil {
		e.items = append(e.items, p)
	}
	return e
}

// SetItems replaces the item collection, skipping nils. Validate
// rejects any count other than one.
func (e *SelectItem) SetItems(items []*model.Product) *SelectItem {
	e.items = make([]*model.Product, 0, len(items))
	for _, p := range items {
		if p != nil {
			e.items = append(e.items, p)
		}
	}
	return e
}

// Item returns the selected item, or nil.
func (e *SelectItem) Item() *model.Product {
	if len(e.items) == 0 {
		return nil
	}
	return e.items[0]
}

// SetItemListID sets the list ID.
func (e *SelectItem) SetItemListID(id string) *SelectItem {
	e.itemListID = id
	return e
}

// SetItemListName sets the list name.
func (e *SelectItem) SetItemListName(name string) *SelectItem {
	e.itemListName = name
	return e
}

// Validate checks identity and that exactly one item is set.
func (e *SelectItem) Validate() error {
	if err := e.validateIdentity(e.Action()); err != nil {
		return err
	}
	switch n := len(e.items); {
	case n == 0:
		return axerrors.MissingField("items", e.Action())
	case n > 1:
		return axerrors.InvalidItemsCount("items", e.Action(), 1, n)
	}
	return nil
}

// Serialize renders {identity..., item_list_id?, item_list_name?, items?, params?}.
func (e *SelectItem) Serialize() map[string]any {
	data := e.flatIdentity()
	e.render(data)
	if len(e.items) > 0 {
		items := make([]map[string]any, len(e.items))
		for i, p := range e.items {
			items[i] = p.Map()
		}
		data["items"] = items
	}
	return nestParams(data, e.params)
}
