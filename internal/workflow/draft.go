package workflow

import (
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/order"
)

// OrderDraft builds the lines of a new order. Unit prices come from the item
// list the draft was created from and are locked once selected.
type OrderDraft struct {
	SupplierID       string
	ExpectedDelivery *time.Time

	lines  []order.LineDraft
	prices map[string]float64
}

func newOrderDraft(items []*item.Item) *OrderDraft {
	prices := make(map[string]float64, len(items))
	for _, it := range items {
		prices[it.ID] = it.UnitPrice
	}
	d := &OrderDraft{prices: prices}
	d.AddLine()
	return d
}

// AddLine appends an empty line with quantity 1 and returns its index.
func (d *OrderDraft) AddLine() int {
	d.lines = append(d.lines, order.LineDraft{Quantity: 1})
	return len(d.lines) - 1
}

// RemoveLine drops line i. The last remaining line cannot be removed.
func (d *OrderDraft) RemoveLine(i int) error {
	if err := d.check(i); err != nil {
		return err
	}
	if len(d.lines) == 1 {
		return ErrLastLine
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	return nil
}

// SelectItem sets the item of line i and applies that item's current unit
// price. An item outside the draft's inventory keeps the previous price.
func (d *OrderDraft) SelectItem(i int, itemID string) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.lines[i].ItemID = itemID

	price, ok := d.prices[itemID]
	if !ok {
		return ErrUnknownItem
	}
	d.lines[i].UnitPrice = price
	return nil
}

func (d *OrderDraft) SetQuantity(i int, q float64) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.lines[i].Quantity = q
	return nil
}

func (d *OrderDraft) check(i int) error {
	if i < 0 || i >= len(d.lines) {
		return ErrLineIndex
	}
	return nil
}

// Lines returns a copy of the current lines.
func (d *OrderDraft) Lines() []order.LineDraft {
	out := make([]order.LineDraft, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *OrderDraft) LineTotal(i int) (float64, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	return d.lines[i].TotalPrice(), nil
}

func (d *OrderDraft) Total() float64 {
	return order.ComputeTotal(d.lines)
}

func (d *OrderDraft) Draft() order.Draft {
	return order.Draft{
		SupplierID:       d.SupplierID,
		ExpectedDelivery: d.ExpectedDelivery,
		Lines:            d.Lines(),
	}
}
