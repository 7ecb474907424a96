package order

import (
	"fmt"
	"strings"
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/supplier"
	"culinary-be/internal/validation"
)

// Status is an open string; the constants are the values the back office uses.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusInTransit  Status = "In Transit"
	StatusScheduled  Status = "Scheduled"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// InFlight reports whether an order in this status counts toward pending orders.
// A freshly created Pending order does not.
func (s Status) InFlight() bool {
	switch s {
	case StatusProcessing, StatusInTransit, StatusScheduled:
		return true
	}
	return false
}

// InFlightStatuses returns the statuses InFlight accepts.
func InFlightStatuses() []Status {
	return []Status{StatusProcessing, StatusInTransit, StatusScheduled}
}

type Order struct {
	ID               string             `json:"id"`
	SupplierID       *string            `json:"supplier_id"`
	SupplierName     *string            `json:"supplier_name,omitempty"`
	Supplier         *supplier.Supplier `json:"supplier,omitempty"`
	OrderDate        time.Time          `json:"order_date"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
	Status           Status             `json:"status"`
	Total            *float64           `json:"total"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Items            []OrderItem        `json:"items,omitempty"`
}

// OrderItem is one line of an order. Item is only populated in the detail view.
type OrderItem struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	ItemID     string     `json:"item_id"`
	Item       *item.Item `json:"item,omitempty"`
	Quantity   float64    `json:"quantity"`
	UnitPrice  float64    `json:"unit_price"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ShortID is the order reference shown to users.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

type LineDraft struct {
	ItemID    string  `json:"item_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (l LineDraft) TotalPrice() float64 {
	return l.Quantity * l.UnitPrice
}

// ComputeTotal sums the line totals.
func ComputeTotal(lines []LineDraft) float64 {
	var total float64
	for _, l := range lines {
		total += l.TotalPrice()
	}
	return total
}

type Draft struct {
	SupplierID       string      `json:"supplier_id"`
	ExpectedDelivery *time.Time  `json:"expected_delivery"`
	Status           Status      `json:"status"`
	Lines            []LineDraft `json:"items"`
}

func (d Draft) Validate() error {
	errs := validation.Errors{}

	if strings.TrimSpace(d.SupplierID) == "" {
		errs.Add("supplier_id", "Please select a supplier")
	}
	if len(d.Lines) == 0 {
		errs.Add("items", "Please add at least one item")
	}
	for i, l := range d.Lines {
		if strings.TrimSpace(l.ItemID) == "" {
			errs.Add(fmt.Sprintf("items[%d].item_id", i), "Please select an item")
		}
		if l.Quantity <= 0 {
			errs.Add(fmt.Sprintf("items[%d].quantity", i), "Quantity must be greater than 0")
		}
		if l.UnitPrice <= 0 {
			errs.Add(fmt.Sprintf("items[%d].unit_price", i), "Unit price must be greater than 0")
		}
	}

	return errs.Err()
}

func (d Draft) normalized() Draft {
	d.SupplierID = strings.TrimSpace(d.SupplierID)
	d.Status = Status(strings.TrimSpace(string(d.Status)))
	if d.Status == "" {
		d.Status = StatusPending
	}
	return d
}

// ValidateStatus accepts any non-empty status.
func ValidateStatus(s Status) error {
	errs := validation.Errors{}
	if strings.TrimSpace(string(s)) == "" {
		errs.Add("status", "Status is required")
	}
	return errs.Err()
}
