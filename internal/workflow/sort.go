package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"culinary-be/internal/item"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type SortField string

const (
	SortName         SortField = "name"
	SortCategory     SortField = "category"
	SortCurrentStock SortField = "current_stock"
	SortUnit         SortField = "unit"
	SortMinLevel     SortField = "min_level"
	SortStatus       SortField = "status"
	SortUnitPrice    SortField = "unit_price"
	SortSupplierName SortField = "supplier_name"
	SortLastOrdered  SortField = "last_ordered"
	SortCreatedAt    SortField = "created_at"
	SortUpdatedAt    SortField = "updated_at"
)

// SortState is the active item ordering. A zero value means unsorted.
type SortState struct {
	Field     SortField `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// next returns the state after sorting by field: ascending, unless the same
// field is already ascending.
func (s SortState) next(field SortField) SortState {
	if s.Field == field && s.Direction == Asc {
		return SortState{Field: field, Direction: Desc}
	}
	return SortState{Field: field, Direction: Asc}
}

// sortKey is one comparable field value. Missing values sort last.
type sortKey struct {
	present bool
	str     string
	num     float64
	at      time.Time
}

type keyFunc func(*item.Item) sortKey

func strKey(s string) sortKey {
	return sortKey{present: strings.TrimSpace(s) != "", str: s}
}

func numKey(n float64) sortKey {
	return sortKey{present: true, num: n}
}

func timeKey(t *time.Time) sortKey {
	if t == nil {
		return sortKey{}
	}
	return sortKey{present: true, at: *t}
}

var itemKeys = map[SortField]keyFunc{
	SortName:         func(it *item.Item) sortKey { return strKey(it.Name) },
	SortCategory:     func(it *item.Item) sortKey { return strKey(it.Category) },
	SortCurrentStock: func(it *item.Item) sortKey { return numKey(it.CurrentStock) },
	SortUnit:         func(it *item.Item) sortKey { return strKey(it.Unit) },
	SortMinLevel:     func(it *item.Item) sortKey { return numKey(it.MinLevel) },
	SortStatus:       func(it *item.Item) sortKey { return strKey(string(it.Status)) },
	SortUnitPrice:    func(it *item.Item) sortKey { return numKey(it.UnitPrice) },
	SortSupplierName: func(it *item.Item) sortKey {
		if it.SupplierName == nil {
			return sortKey{}
		}
		return strKey(*it.SupplierName)
	},
	SortLastOrdered: func(it *item.Item) sortKey { return timeKey(it.LastOrdered) },
	SortCreatedAt:   func(it *item.Item) sortKey { return timeKey(&it.CreatedAt) },
	SortUpdatedAt:   func(it *item.Item) sortKey { return timeKey(&it.UpdatedAt) },
}

// SortableFields lists the item fields SortItems accepts.
func SortableFields() []SortField {
	fields := make([]SortField, 0, len(itemKeys))
	for f := range itemKeys {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

func compareKeys(c *collate.Collator, a, b sortKey) int {
	switch {
	case a.str != "" || b.str != "":
		return c.CompareString(a.str, b.str)
	case !a.at.IsZero() || !b.at.IsZero():
		return a.at.Compare(b.at)
	case a.num < b.num:
		return -1
	case a.num > b.num:
		return 1
	}
	return 0
}

// sortItems orders items in place. The sort is stable and missing values go
// last in both directions.
func sortItems(items []*item.Item, state SortState) error {
	key, ok := itemKeys[state.Field]
	if !ok {
		names := make([]string, 0, len(itemKeys))
		for _, f := range SortableFields() {
			names = append(names, string(f))
		}
		return fmt.Errorf("%w: %q (sortable: %s)", ErrUnknownSortField, state.Field, strings.Join(names, ", "))
	}

	c := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if !a.present || !b.present {
			return a.present && !b.present
		}
		cmp := compareKeys(c, a, b)
		if state.Direction == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return nil
}
