package item

import (
	"encoding/json"
	"strings"
	"time"

	"culinary-be/internal/validation"
)

type Status string

const (
	StatusCritical Status = "critical"
	StatusLow      Status = "low"
	StatusNormal   Status = "normal"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCritical, StatusLow, StatusNormal:
		return true
	}
	return false
}

// DeriveStatus classifies a stock level against its minimum level.
// Stock at or below half the minimum is critical, below the minimum is low.
func DeriveStatus(currentStock, minLevel float64) Status {
	switch {
	case minLevel > 0 && currentStock <= minLevel/2:
		return StatusCritical
	case currentStock < minLevel:
		return StatusLow
	default:
		return StatusNormal
	}
}

// Item is one stocked ingredient or supply.
type Item struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	CurrentStock float64    `json:"current_stock"`
	Unit         string     `json:"unit"`
	MinLevel     float64    `json:"min_level"`
	Status       Status     `json:"status"`
	LastOrdered  *time.Time `json:"last_ordered"`
	SupplierID   *string    `json:"supplier_id"`
	SupplierName *string    `json:"supplier_name,omitempty"`
	UnitPrice    float64    `json:"unit_price"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsInconsistent reports whether the chosen status disagrees with DeriveStatus.
// Status stays user-settable; this is advisory only.
func (i *Item) IsInconsistent() bool {
	return DeriveStatus(i.CurrentStock, i.MinLevel) != i.Status
}

// MarshalJSON adds status_mismatch so clients can flag inconsistent rows.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		StatusMismatch bool `json:"status_mismatch"`
	}{plain(i), i.IsInconsistent()})
}

// Draft holds the editable fields of an item.
type Draft struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	CurrentStock float64    `json:"current_stock"`
	Unit         string     `json:"unit"`
	MinLevel     float64    `json:"min_level"`
	Status       Status     `json:"status"`
	SupplierID   *string    `json:"supplier_id"`
	UnitPrice    float64    `json:"unit_price"`
	LastOrdered  *time.Time `json:"last_ordered"`
}

// Validate returns validation.Errors for every rejected field.
func (d Draft) Validate() error {
	errs := validation.Errors{}

	if name := strings.TrimSpace(d.Name); name == "" {
		errs.Add("name", "Name is required")
	} else if len([]rune(name)) < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	}
	if strings.TrimSpace(d.Category) == "" {
		errs.Add("category", "Category is required")
	}
	if strings.TrimSpace(d.Unit) == "" {
		errs.Add("unit", "Unit is required")
	}
	if d.CurrentStock < 0 {
		errs.Add("current_stock", "Stock cannot be negative")
	}
	if d.MinLevel < 0 {
		errs.Add("min_level", "Min level cannot be negative")
	}
	if d.UnitPrice < 0 {
		errs.Add("unit_price", "Price cannot be negative")
	}
	if !d.Status.Valid() {
		errs.Add("status", "Status must be one of critical, low, normal")
	}

	return errs.Err()
}

// normalized trims text fields and turns an empty supplier reference into nil.
func (d Draft) normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Category = strings.TrimSpace(d.Category)
	d.Unit = strings.TrimSpace(d.Unit)
	if d.SupplierID != nil && strings.TrimSpace(*d.SupplierID) == "" {
		d.SupplierID = nil
	}
	return d
}
