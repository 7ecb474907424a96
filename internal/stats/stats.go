// Package stats derives stock-level and order counts for the dashboard.
package stats

import (
	"culinary-be/internal/item"
	"culinary-be/internal/order"
)

type Stats struct {
	LowStock      int `json:"low_stock"`
	CriticalStock int `json:"critical_stock"`
	NormalStock   int `json:"normal_stock"`
	PendingOrders int `json:"pending_orders"`
	TotalItems    int `json:"total_items"`
}

// Compute counts items by status and orders that are in flight.
func Compute(items []*item.Item, orders []*order.Order) Stats {
	var s Stats
	for _, it := range items {
		s.add(it.Status, 1)
	}
	s.TotalItems = len(items)
	for _, o := range orders {
		if o.Status.InFlight() {
			s.PendingOrders++
		}
	}
	return s
}

func (s *Stats) add(status item.Status, n int) {
	switch status {
	case item.StatusLow:
		s.LowStock += n
	case item.StatusCritical:
		s.CriticalStock += n
	case item.StatusNormal:
		s.NormalStock += n
	}
}
