// Package seed loads YAML fixtures into the store through the domain services.
// Fixtures refer to suppliers and items by name; ids are generated on insert.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/order"
	"culinary-be/internal/supplier"
	"culinary-be/internal/workflow"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Suppliers []Supplier `yaml:"suppliers"`
	Items     []Item     `yaml:"items"`
	Orders    []Order    `yaml:"orders"`
}

type Supplier struct {
	Name     string  `yaml:"name"`
	Contact  *string `yaml:"contact"`
	Phone    *string `yaml:"phone"`
	Email    *string `yaml:"email"`
	Category *string `yaml:"category"`
	Status   string  `yaml:"status"`
}

type Item struct {
	Name         string      `yaml:"name"`
	Category     string      `yaml:"category"`
	CurrentStock float64     `yaml:"current_stock"`
	Unit         string      `yaml:"unit"`
	MinLevel     float64     `yaml:"min_level"`
	Status       item.Status `yaml:"status"`
	UnitPrice    float64     `yaml:"unit_price"`
	Supplier     string      `yaml:"supplier"`
}

type Order struct {
	Supplier         string       `yaml:"supplier"`
	ExpectedDelivery *time.Time   `yaml:"expected_delivery"`
	Status           order.Status `yaml:"status"`
	Lines            []Line       `yaml:"lines"`
}

type Line struct {
	Item     string  `yaml:"item"`
	Quantity float64 `yaml:"quantity"`
}

// Summary counts what Apply inserted.
type Summary struct {
	Suppliers int
	Items     int
	Orders    int
}

func Load(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// Apply inserts suppliers, then items, then orders. Order lines are priced
// from the seeded item's unit price. It stops at the first failure.
func Apply(ctx context.Context, stores workflow.Stores, f *Fixtures) (Summary, error) {
	log := logger.FromCtx(ctx).With(zap.String("component", "seed"))

	var sum Summary
	supplierIDs := make(map[string]string, len(f.Suppliers))
	items := make(map[string]*item.Item, len(f.Items))

	for _, s := range f.Suppliers {
		created, err := stores.Suppliers.CreateSupplier(ctx, supplier.Draft{
			Name: s.Name, Contact: s.Contact, Phone: s.Phone,
			Email: s.Email, Category: s.Category, Status: s.Status,
		})
		if err != nil {
			return sum, fmt.Errorf("seed supplier %q: %w", s.Name, err)
		}
		supplierIDs[s.Name] = created.ID
		sum.Suppliers++
	}

	for _, it := range f.Items {
		d := item.Draft{
			Name: it.Name, Category: it.Category, CurrentStock: it.CurrentStock, Unit: it.Unit,
			MinLevel: it.MinLevel, Status: it.Status, UnitPrice: it.UnitPrice,
		}
		if d.Status == "" {
			d.Status = item.DeriveStatus(it.CurrentStock, it.MinLevel)
		}
		if it.Supplier != "" {
			id, ok := supplierIDs[it.Supplier]
			if !ok {
				return sum, fmt.Errorf("seed item %q: unknown supplier %q", it.Name, it.Supplier)
			}
			d.SupplierID = &id
		}

		created, err := stores.Items.CreateItem(ctx, d)
		if err != nil {
			return sum, fmt.Errorf("seed item %q: %w", it.Name, err)
		}
		items[it.Name] = created
		sum.Items++
	}

	for i, o := range f.Orders {
		supplierID, ok := supplierIDs[o.Supplier]
		if !ok {
			return sum, fmt.Errorf("seed order %d: unknown supplier %q", i, o.Supplier)
		}

		lines := make([]order.LineDraft, 0, len(o.Lines))
		for _, l := range o.Lines {
			it, ok := items[l.Item]
			if !ok {
				return sum, fmt.Errorf("seed order %d: unknown item %q", i, l.Item)
			}
			lines = append(lines, order.LineDraft{ItemID: it.ID, Quantity: l.Quantity, UnitPrice: it.UnitPrice})
		}

		created, err := stores.Orders.CreateOrder(ctx, order.Draft{
			SupplierID:       supplierID,
			ExpectedDelivery: o.ExpectedDelivery,
			Lines:            lines,
		})
		if err != nil {
			return sum, fmt.Errorf("seed order %d: %w", i, err)
		}
		if o.Status != "" && o.Status != created.Status {
			if _, err := stores.Orders.UpdateOrderStatus(ctx, created.ID, o.Status); err != nil {
				return sum, fmt.Errorf("seed order %d status: %w", i, err)
			}
		}
		sum.Orders++
	}

	log.Info("fixtures applied",
		zap.Int("suppliers", sum.Suppliers),
		zap.Int("items", sum.Items),
		zap.Int("orders", sum.Orders),
	)
	return sum, nil
}
