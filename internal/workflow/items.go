package workflow

import (
	"context"
	"fmt"

	"culinary-be/internal/item"

	"go.uber.org/zap"
)

func (w *Workflow) setItems(items []*item.Item) {
	if items == nil {
		items = []*item.Item{}
	}
	w.items = items
	w.itemView = filterItems(w.items, w.itemSearch)
}

// ListItems fetches every item. A store failure is reported as a notification
// and yields an empty result while the held items stay as they were.
func (w *Workflow) ListItems(ctx context.Context) []*item.Item {
	w.mu.Lock()
	defer w.mu.Unlock()

	items, err := w.stores.Items.FetchItems(ctx)
	if err != nil {
		methodLogger(ctx, "ListItems").Error("fetch items failed", zap.Error(err))
		w.fail("Error fetching inventory", err)
		return []*item.Item{}
	}

	w.setItems(items)
	return cloneItems(w.items)
}

// reloadItems re-reads items after a mutation. Failure leaves them stale.
func (w *Workflow) reloadItems(ctx context.Context) {
	items, err := w.stores.Items.FetchItems(ctx)
	if err != nil {
		methodLogger(ctx, "reloadItems").Warn("items re-fetch failed, keeping previous list", zap.Error(err))
		return
	}
	w.setItems(items)
}

// Items returns the current filtered and sorted view.
func (w *Workflow) Items() []*item.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneItems(w.itemView)
}

func (w *Workflow) AllItems() []*item.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneItems(w.items)
}

func (w *Workflow) CreateItem(ctx context.Context, d item.Draft) (*item.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := methodLogger(ctx, "CreateItem")

	if err := d.Validate(); err != nil {
		log.Warn("item draft rejected", zap.Error(err))
		return nil, validationError(err)
	}

	created, err := w.stores.Items.CreateItem(ctx, d)
	if err != nil {
		w.fail("Error creating item", err)
		return nil, err
	}

	w.info("Item created", fmt.Sprintf("%s has been added to inventory.", created.Name))
	w.reloadItems(ctx)
	w.refreshStats(ctx)
	return created, nil
}

func (w *Workflow) UpdateItem(ctx context.Context, id string, d item.Draft) (*item.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := methodLogger(ctx, "UpdateItem").With(zap.String("item_id", id))

	if err := d.Validate(); err != nil {
		log.Warn("item draft rejected", zap.Error(err))
		return nil, validationError(err)
	}

	updated, err := w.stores.Items.UpdateItem(ctx, id, d)
	if err != nil {
		w.fail("Error updating item", err)
		return nil, err
	}

	name := updated.Name
	if name == "" {
		name = "Item"
	}
	w.info("Item updated", fmt.Sprintf("%s has been updated.", name))
	w.reloadItems(ctx)
	w.refreshStats(ctx)
	return updated, nil
}

// SearchItems filters the held items by name or category. The underlying
// list is untouched and the view drops any previous sort order.
func (w *Workflow) SearchItems(term string) []*item.Item {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.itemSearch = term
	w.itemView = filterItems(w.items, term)
	return cloneItems(w.itemView)
}

// SortItems reorders the current view by field, toggling to descending when
// the same field is already ascending.
func (w *Workflow) SortItems(field SortField) (SortState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := itemKeys[field]; !ok {
		return w.itemSort, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}

	state := w.itemSort.next(field)
	if err := sortItems(w.itemView, state); err != nil {
		return w.itemSort, err
	}
	w.itemSort = state
	return state, nil
}

func (w *Workflow) ItemSort() SortState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.itemSort
}

func cloneItems(items []*item.Item) []*item.Item {
	out := make([]*item.Item, len(items))
	copy(out, items)
	return out
}
