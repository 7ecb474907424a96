// Package workflow holds the per-session inventory state: the fetched
// collections, their filtered views, sort state, the pending deletion and the
// open order detail. Every mutation re-reads the affected collections from the
// store instead of patching them locally.
package workflow

import (
	"context"
	"sync"

	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/notify"
	"culinary-be/internal/order"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"

	"go.uber.org/zap"
)

type Workflow struct {
	mu       sync.Mutex
	stores   Stores
	notifier notify.Notifier

	items      []*item.Item
	itemView   []*item.Item
	itemSearch string
	itemSort   SortState

	suppliers      []*supplier.Supplier
	supplierView   []*supplier.Supplier
	supplierSearch string

	orders      []*order.Order
	orderView   []*order.Order
	orderSearch string

	stats   stats.Stats
	pending *PendingDelete
	detail  *order.Order
}

func New(stores Stores, notifier notify.Notifier) *Workflow {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Workflow{
		stores:       stores,
		notifier:     notifier,
		items:        []*item.Item{},
		itemView:     []*item.Item{},
		suppliers:    []*supplier.Supplier{},
		supplierView: []*supplier.Supplier{},
		orders:       []*order.Order{},
		orderView:    []*order.Order{},
	}
}

func methodLogger(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "workflow"),
		zap.String("method", method),
	)
}

func (w *Workflow) info(title, description string) {
	w.notifier.Notify(notify.Info(title, description))
}

func (w *Workflow) fail(title string, err error) {
	w.notifier.Notify(notify.Destructive(title, err.Error()))
}

// Refresh loads items, suppliers, orders and stats concurrently. Each failed
// collection is reported and keeps its previous contents.
func (w *Workflow) Refresh(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := methodLogger(ctx, "Refresh")
	log.Info("Refresh started")

	var (
		wg                   sync.WaitGroup
		items                []*item.Item
		suppliers            []*supplier.Supplier
		orders               []*order.Order
		st                   stats.Stats
		itemErr, supplierErr error
		orderErr, statsErr   error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		items, itemErr = w.stores.Items.FetchItems(ctx)
	}()
	go func() {
		defer wg.Done()
		suppliers, supplierErr = w.stores.Suppliers.FetchSuppliers(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, orderErr = w.stores.Orders.FetchOrders(ctx)
	}()
	go func() {
		defer wg.Done()
		st, statsErr = w.stores.Stats.FetchStats(ctx)
	}()
	wg.Wait()

	if itemErr != nil {
		w.fail("Error fetching inventory", itemErr)
	} else {
		w.setItems(items)
	}
	if supplierErr != nil {
		w.fail("Error fetching suppliers", supplierErr)
	} else {
		w.setSuppliers(suppliers)
	}
	if orderErr != nil {
		w.fail("Error fetching orders", orderErr)
	} else {
		w.setOrders(orders)
	}
	if statsErr != nil {
		log.Warn("stats fetch failed, keeping previous stats", zap.Error(statsErr))
	} else {
		w.stats = st
	}

	log.Info("Refresh success",
		zap.Int("items", len(w.items)),
		zap.Int("suppliers", len(w.suppliers)),
		zap.Int("orders", len(w.orders)),
	)
}

// refreshStats re-reads stats after a mutation. Failure leaves them stale.
func (w *Workflow) refreshStats(ctx context.Context) {
	st, err := w.stores.Stats.FetchStats(ctx)
	if err != nil {
		methodLogger(ctx, "refreshStats").Warn("stats re-fetch failed, keeping previous stats", zap.Error(err))
		return
	}
	w.stats = st
}

// Stats returns the last stats fetched from the store.
func (w *Workflow) Stats() stats.Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// LocalStats aggregates the held items and orders without a store call.
func (w *Workflow) LocalStats() stats.Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return stats.Compute(w.items, w.orders)
}
