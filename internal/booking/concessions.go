package booking

import (
	"sort"
	"strings"

	"github.com/hbui/cinecli/internal/models"
)

// DefaultCategory buckets catalog items with no category of their own.
const DefaultCategory = "OTHER"

// CategoryGroup is one section of the concession menu.
type CategoryGroup struct {
	Name  string
	Items []models.Concession
}

// GroupByCategory buckets the catalog by upper-cased category name. Items
// without a category land in [DefaultCategory]. Groups are ordered by name
// with the default bucket last; items keep catalog order.
func GroupByCategory(catalog []models.Concession) []CategoryGroup {
	byName := make(map[string][]models.Concession)
	var names []string
	for _, c := range catalog {
		name := strings.ToUpper(strings.TrimSpace(c.Category))
		if name == "" {
			name = DefaultCategory
		}
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], c)
	}

	sort.Slice(names, func(i, j int) bool {
		if names[i] == DefaultCategory {
			return false
		}
		if names[j] == DefaultCategory {
			return true
		}
		return names[i] < names[j]
	})

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{Name: name, Items: byName[name]})
	}
	return groups
}

// ConcessionOrder tracks requested quantities per concession id. Only
// positive quantities are stored; setting a quantity to zero or below
// removes the line entirely.
type ConcessionOrder struct {
	quantities map[string]int
}

// NewConcessionOrder returns an empty order.
func NewConcessionOrder() *ConcessionOrder {
	return &ConcessionOrder{quantities: make(map[string]int)}
}

// Quantity returns the requested quantity for a concession id, zero when
// the item is not in the order.
func (o *ConcessionOrder) Quantity(id string) int { return o.quantities[id] }

// SetQuantity records the requested quantity for a concession id.
func (o *ConcessionOrder) SetQuantity(id string, qty int) {
	if qty <= 0 {
		delete(o.quantities, id)
		return
	}
	o.quantities[id] = qty
}

// Adjust shifts the quantity for a concession id by delta, clamping at zero.
func (o *ConcessionOrder) Adjust(id string, delta int) {
	o.SetQuantity(id, o.quantities[id]+delta)
}

// Empty reports whether the order holds no items.
func (o *ConcessionOrder) Empty() bool { return len(o.quantities) == 0 }

// Total prices the order against the given catalog. Ordered ids absent from
// the catalog contribute nothing.
func (o *ConcessionOrder) Total(catalog []models.Concession) int64 {
	var total int64
	for _, c := range catalog {
		if qty := o.quantities[c.ID]; qty > 0 {
			total += c.Price * int64(qty)
		}
	}
	return total
}

// Items resolves the order into booking line items, in catalog order.
func (o *ConcessionOrder) Items(catalog []models.Concession) []models.ConcessionOrderItem {
	items := make([]models.ConcessionOrderItem, 0, len(o.quantities))
	for _, c := range catalog {
		qty := o.quantities[c.ID]
		if qty <= 0 {
			continue
		}
		items = append(items, models.ConcessionOrderItem{
			ID:       c.ID,
			Name:     c.Name,
			Price:    c.Price,
			Quantity: qty,
		})
	}
	return items
}
