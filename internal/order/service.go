package order

import (
	"context"
	"time"

	"culinary-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the data-access operations for orders.
type Service interface {
	FetchOrders(ctx context.Context) ([]*Order, error)
	GetOrderWithItems(ctx context.Context, id string) (*Order, error)
	CreateOrder(ctx context.Context, d Draft) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

func (s *service) FetchOrders(ctx context.Context) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchOrders"),
	)
	log.Info("FetchOrders started")

	orders, err := s.repo.FetchOrders(ctx)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}

	log.Info("FetchOrders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (s *service) GetOrderWithItems(ctx context.Context, id string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrderWithItems"),
		zap.String("order_id", id),
	)

	o, err := s.repo.GetOrderWithItems(ctx, id)
	if err != nil {
		log.Error("failed to get order detail", zap.Error(err))
		return nil, err
	}

	log.Info("GetOrderWithItems success", zap.Int("lines", len(o.Items)))
	return o, nil
}

// CreateOrder recomputes every line total and the order total from the draft
// before persisting. The order date is the time of submission.
func (s *service) CreateOrder(ctx context.Context, d Draft) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("supplier_id", d.SupplierID),
	)
	log.Info("CreateOrder started", zap.Int("lines", len(d.Lines)))

	if err := d.Validate(); err != nil {
		log.Warn("CreateOrder validation failed", zap.Error(err))
		return nil, err
	}
	d = d.normalized()

	now := s.now()
	total := ComputeTotal(d.Lines)
	supplierID := d.SupplierID

	o := &Order{
		ID:               s.newID(),
		SupplierID:       &supplierID,
		OrderDate:        now,
		ExpectedDelivery: d.ExpectedDelivery,
		Status:           d.Status,
		Total:            &total,
		CreatedAt:        now,
		UpdatedAt:        now,
		Items:            make([]OrderItem, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		o.Items = append(o.Items, OrderItem{
			ID:         s.newID(),
			OrderID:    o.ID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice(),
			CreatedAt:  now,
		})
	}

	created, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("CreateOrder success",
		zap.String("order_id", created.ID),
		zap.Float64("total", total),
	)
	return created, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)
	log.Info("UpdateOrderStatus started")

	if err := ValidateStatus(status); err != nil {
		log.Warn("UpdateOrderStatus validation failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, id, status, s.now())
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateOrderStatus success")
	return updated, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteOrder"),
		zap.String("order_id", id),
	)
	log.Info("DeleteOrder started")

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return err
	}

	log.Info("DeleteOrder success")
	return nil
}
