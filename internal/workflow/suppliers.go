package workflow

import (
	"context"
	"fmt"
	"time"

	"culinary-be/internal/supplier"

	"go.uber.org/zap"
)

func (w *Workflow) setSuppliers(suppliers []*supplier.Supplier) {
	if suppliers == nil {
		suppliers = []*supplier.Supplier{}
	}
	w.suppliers = suppliers
	w.supplierView = filterSuppliers(w.suppliers, w.supplierSearch)
}

// ListSuppliers fetches every supplier. Failure is reported and yields an
// empty result; the held suppliers stay as they were.
func (w *Workflow) ListSuppliers(ctx context.Context) []*supplier.Supplier {
	w.mu.Lock()
	defer w.mu.Unlock()

	suppliers, err := w.stores.Suppliers.FetchSuppliers(ctx)
	if err != nil {
		methodLogger(ctx, "ListSuppliers").Error("fetch suppliers failed", zap.Error(err))
		w.fail("Error fetching suppliers", err)
		return []*supplier.Supplier{}
	}

	w.setSuppliers(suppliers)
	return cloneSuppliers(w.suppliers)
}

func (w *Workflow) reloadSuppliers(ctx context.Context) {
	suppliers, err := w.stores.Suppliers.FetchSuppliers(ctx)
	if err != nil {
		methodLogger(ctx, "reloadSuppliers").Warn("suppliers re-fetch failed, keeping previous list", zap.Error(err))
		return
	}
	w.setSuppliers(suppliers)
}

func (w *Workflow) Suppliers() []*supplier.Supplier {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneSuppliers(w.supplierView)
}

// ActiveSuppliers are the suppliers an order can be placed with.
func (w *Workflow) ActiveSuppliers() []*supplier.Supplier {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := []*supplier.Supplier{}
	for _, s := range w.suppliers {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out
}

func (w *Workflow) CreateSupplier(ctx context.Context, d supplier.Draft) (*supplier.Supplier, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := d.Validate(); err != nil {
		methodLogger(ctx, "CreateSupplier").Warn("supplier draft rejected", zap.Error(err))
		return nil, validationError(err)
	}

	created, err := w.stores.Suppliers.CreateSupplier(ctx, d)
	if err != nil {
		w.fail("Error adding supplier", err)
		return nil, err
	}

	w.info("Supplier added", fmt.Sprintf("%s has been added to suppliers.", created.Name))
	w.reloadSuppliers(ctx)
	return created, nil
}

// UpdateSupplier carries last_order over from the held supplier.
func (w *Workflow) UpdateSupplier(ctx context.Context, id string, d supplier.Draft) (*supplier.Supplier, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := d.Validate(); err != nil {
		methodLogger(ctx, "UpdateSupplier").Warn("supplier draft rejected", zap.Error(err))
		return nil, validationError(err)
	}

	lastOrder, err := w.heldLastOrder(ctx, id)
	if err != nil {
		w.fail("Error updating supplier", err)
		return nil, err
	}

	updated, err := w.stores.Suppliers.UpdateSupplier(ctx, id, d, lastOrder)
	if err != nil {
		w.fail("Error updating supplier", err)
		return nil, err
	}

	name := updated.Name
	if name == "" {
		name = "Supplier"
	}
	w.info("Supplier updated", fmt.Sprintf("%s has been updated.", name))
	w.reloadSuppliers(ctx)
	return updated, nil
}

// heldLastOrder returns the last_order of the supplier, reading it from the
// store when the supplier is not held locally.
func (w *Workflow) heldLastOrder(ctx context.Context, id string) (*time.Time, error) {
	for _, s := range w.suppliers {
		if s.ID == id {
			return s.LastOrder, nil
		}
	}

	s, err := w.stores.Suppliers.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.LastOrder, nil
}

func (w *Workflow) SearchSuppliers(term string) []*supplier.Supplier {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.supplierSearch = term
	w.supplierView = filterSuppliers(w.suppliers, term)
	return cloneSuppliers(w.supplierView)
}

func cloneSuppliers(suppliers []*supplier.Supplier) []*supplier.Supplier {
	out := make([]*supplier.Supplier, len(suppliers))
	copy(out, suppliers)
	return out
}
