package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type DeleteKind string

const (
	DeleteItem     DeleteKind = "item"
	DeleteSupplier DeleteKind = "supplier"
)

// PendingDelete is an entity marked for deletion and awaiting confirmation.
type PendingDelete struct {
	Kind DeleteKind `json:"kind"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
}

// MarkItemForDelete replaces any earlier mark. The id does not have to be
// held locally; the store decides whether it exists.
func (w *Workflow) MarkItemForDelete(id string) PendingDelete {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := id
	for _, it := range w.items {
		if it.ID == id {
			name = it.Name
			break
		}
	}
	w.pending = &PendingDelete{Kind: DeleteItem, ID: id, Name: name}
	return *w.pending
}

func (w *Workflow) MarkSupplierForDelete(id string) PendingDelete {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := id
	for _, s := range w.suppliers {
		if s.ID == id {
			name = s.Name
			break
		}
	}
	w.pending = &PendingDelete{Kind: DeleteSupplier, ID: id, Name: name}
	return *w.pending
}

func (w *Workflow) Pending() (PendingDelete, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return PendingDelete{}, false
	}
	return *w.pending, true
}

// CancelDelete clears the mark without a store call.
func (w *Workflow) CancelDelete() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return ErrNothingToDelete
	}
	w.pending = nil
	return nil
}

// ConfirmDelete issues the destructive call for the marked entity. The mark is
// cleared whether or not the store call succeeds.
func (w *Workflow) ConfirmDelete(ctx context.Context) (PendingDelete, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return PendingDelete{}, ErrNothingToDelete
	}
	p := *w.pending
	w.pending = nil

	log := methodLogger(ctx, "ConfirmDelete").With(
		zap.String("kind", string(p.Kind)),
		zap.String("id", p.ID),
	)

	switch p.Kind {
	case DeleteItem:
		if err := w.stores.Items.DeleteItem(ctx, p.ID); err != nil {
			log.Error("delete item failed", zap.Error(err))
			w.fail("Error deleting item", err)
			return p, err
		}
		w.info("Item deleted", fmt.Sprintf("%s has been removed from inventory.", p.Name))
		w.reloadItems(ctx)
		w.refreshStats(ctx)

	case DeleteSupplier:
		if err := w.stores.Suppliers.DeleteSupplier(ctx, p.ID); err != nil {
			log.Error("delete supplier failed", zap.Error(err))
			w.fail("Error deleting supplier", err)
			return p, err
		}
		w.info("Supplier deleted", fmt.Sprintf("%s has been removed from suppliers.", p.Name))
		w.reloadSuppliers(ctx)
	}

	log.Info("ConfirmDelete success")
	return p, nil
}
