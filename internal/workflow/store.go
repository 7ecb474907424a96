package workflow

import (
	"context"
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/order"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"
)

type ItemStore interface {
	FetchItems(ctx context.Context) ([]*item.Item, error)
	CreateItem(ctx context.Context, d item.Draft) (*item.Item, error)
	UpdateItem(ctx context.Context, id string, d item.Draft) (*item.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type SupplierStore interface {
	FetchSuppliers(ctx context.Context) ([]*supplier.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*supplier.Supplier, error)
	CreateSupplier(ctx context.Context, d supplier.Draft) (*supplier.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, d supplier.Draft, lastOrder *time.Time) (*supplier.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type OrderStore interface {
	FetchOrders(ctx context.Context) ([]*order.Order, error)
	GetOrderWithItems(ctx context.Context, id string) (*order.Order, error)
	CreateOrder(ctx context.Context, d order.Draft) (*order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type StatsStore interface {
	FetchStats(ctx context.Context) (stats.Stats, error)
}

// Stores groups the data-access collaborators of a Workflow. The domain
// services satisfy these interfaces.
type Stores struct {
	Items     ItemStore
	Suppliers SupplierStore
	Orders    OrderStore
	Stats     StatsStore
}
