package workflow

import (
	"strings"

	"culinary-be/internal/item"
	"culinary-be/internal/order"
	"culinary-be/internal/supplier"
)

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

// normTerm lowercases the search term. Empty means no filter.
func normTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func filterItems(items []*item.Item, term string) []*item.Item {
	term = normTerm(term)
	out := make([]*item.Item, 0, len(items))
	for _, it := range items {
		if term == "" || contains(it.Name, term) || contains(it.Category, term) {
			out = append(out, it)
		}
	}
	return out
}

func filterSuppliers(suppliers []*supplier.Supplier, term string) []*supplier.Supplier {
	term = normTerm(term)
	out := make([]*supplier.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if term == "" || contains(s.Name, term) || (s.Category != nil && contains(*s.Category, term)) {
			out = append(out, s)
		}
	}
	return out
}

func filterOrders(orders []*order.Order, term string) []*order.Order {
	term = normTerm(term)
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if term == "" ||
			contains(o.ID, term) ||
			(o.SupplierName != nil && contains(*o.SupplierName, term)) ||
			contains(string(o.Status), term) {
			out = append(out, o)
		}
	}
	return out
}
