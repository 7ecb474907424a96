package workflow

import (
	"context"
	"fmt"
	"time"

	"culinary-be/internal/order"

	"go.uber.org/zap"
)

func (w *Workflow) setOrders(orders []*order.Order) {
	if orders == nil {
		orders = []*order.Order{}
	}
	w.orders = orders
	w.orderView = filterOrders(w.orders, w.orderSearch)
}

func (w *Workflow) ListOrders(ctx context.Context) []*order.Order {
	w.mu.Lock()
	defer w.mu.Unlock()

	orders, err := w.stores.Orders.FetchOrders(ctx)
	if err != nil {
		methodLogger(ctx, "ListOrders").Error("fetch orders failed", zap.Error(err))
		w.fail("Error fetching orders", err)
		return []*order.Order{}
	}

	w.setOrders(orders)
	return cloneOrders(w.orders)
}

func (w *Workflow) reloadOrders(ctx context.Context) {
	orders, err := w.stores.Orders.FetchOrders(ctx)
	if err != nil {
		methodLogger(ctx, "reloadOrders").Warn("orders re-fetch failed, keeping previous list", zap.Error(err))
		return
	}
	w.setOrders(orders)
}

func (w *Workflow) Orders() []*order.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneOrders(w.orderView)
}

// SearchOrders filters by order id, supplier name or status.
func (w *Workflow) SearchOrders(term string) []*order.Order {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.orderSearch = term
	w.orderView = filterOrders(w.orders, term)
	return cloneOrders(w.orderView)
}

// NewOrderDraft starts an order priced from the currently held items.
func (w *Workflow) NewOrderDraft() *OrderDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return newOrderDraft(w.items)
}

// CreateOrder places an order with the given lines. Line totals and the order
// total are recomputed here from quantity and unit price.
func (w *Workflow) CreateOrder(ctx context.Context, supplierID string, expectedDelivery *time.Time, lines []order.LineDraft) (*order.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := methodLogger(ctx, "CreateOrder").With(zap.String("supplier_id", supplierID))

	d := order.Draft{
		SupplierID:       supplierID,
		ExpectedDelivery: expectedDelivery,
		Status:           order.StatusPending,
		Lines:            lines,
	}
	if err := d.Validate(); err != nil {
		log.Warn("order draft rejected", zap.Error(err))
		return nil, validationError(err)
	}

	created, err := w.stores.Orders.CreateOrder(ctx, d)
	if err != nil {
		w.fail("Error creating order", err)
		return nil, err
	}

	w.info("Order created", fmt.Sprintf("Order #%s has been placed.", order.ShortID(created.ID)))
	w.reloadOrders(ctx)
	w.refreshStats(ctx)
	return created, nil
}

// GetOrderDetail loads the order with its supplier and lines and makes it the
// open detail.
func (w *Workflow) GetOrderDetail(ctx context.Context, id string) (*order.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	o, err := w.stores.Orders.GetOrderWithItems(ctx, id)
	if err != nil {
		methodLogger(ctx, "GetOrderDetail").Error("order detail failed",
			zap.String("order_id", id),
			zap.Error(err),
		)
		w.fail("Error fetching order details", err)
		return nil, err
	}

	w.detail = o
	return copyOrder(o), nil
}

// OrderDetail returns the open detail, if any.
func (w *Workflow) OrderDetail() (*order.Order, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.detail == nil {
		return nil, false
	}
	return copyOrder(w.detail), true
}

func (w *Workflow) CloseOrderDetail() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail = nil
}

// UpdateOrderStatus sets any non-empty status. The open detail for the same
// order is patched in place so it needs no separate fetch.
func (w *Workflow) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := methodLogger(ctx, "UpdateOrderStatus").With(zap.String("order_id", id))

	if err := order.ValidateStatus(status); err != nil {
		log.Warn("order status rejected", zap.Error(err))
		return nil, validationError(err)
	}

	updated, err := w.stores.Orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		w.fail("Error updating order", err)
		return nil, err
	}

	if w.detail != nil && w.detail.ID == id {
		w.detail.Status = status
		w.detail.UpdatedAt = updated.UpdatedAt
	}

	w.info("Order updated", fmt.Sprintf("Order status changed to %s.", status))
	w.reloadOrders(ctx)
	w.refreshStats(ctx)
	return updated, nil
}

// DeleteOrder removes the order and closes the open detail.
func (w *Workflow) DeleteOrder(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.stores.Orders.DeleteOrder(ctx, id); err != nil {
		methodLogger(ctx, "DeleteOrder").Error("delete order failed",
			zap.String("order_id", id),
			zap.Error(err),
		)
		w.fail("Error deleting order", err)
		return err
	}

	w.detail = nil
	w.info("Order deleted", "Order has been deleted.")
	w.reloadOrders(ctx)
	w.refreshStats(ctx)
	return nil
}

func cloneOrders(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, len(orders))
	copy(out, orders)
	return out
}

func copyOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	return &cp
}
