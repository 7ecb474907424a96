package item

import (
	"context"
	"time"

	"culinary-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the data-access operations for inventory items.
type Service interface {
	FetchItems(ctx context.Context) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, d Draft) (*Item, error)
	UpdateItem(ctx context.Context, id string, d Draft) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
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

func (s *service) FetchItems(ctx context.Context) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchItems"),
	)
	log.Info("FetchItems started")

	items, err := s.repo.FetchItems(ctx)
	if err != nil {
		log.Error("failed to fetch items", zap.Error(err))
		return nil, err
	}

	log.Info("FetchItems success", zap.Int("count", len(items)))
	return items, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetItem"),
		zap.String("item_id", id),
	)

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		log.Error("failed to get item", zap.Error(err))
		return nil, err
	}
	return it, nil
}

func (s *service) CreateItem(ctx context.Context, d Draft) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateItem"),
		zap.String("name", d.Name),
	)
	log.Info("CreateItem started")

	if err := d.Validate(); err != nil {
		log.Warn("CreateItem validation failed", zap.Error(err))
		return nil, err
	}
	d = d.normalized()

	now := s.now()
	it := &Item{
		ID:           s.newID(),
		Name:         d.Name,
		Category:     d.Category,
		CurrentStock: d.CurrentStock,
		Unit:         d.Unit,
		MinLevel:     d.MinLevel,
		Status:       d.Status,
		LastOrdered:  d.LastOrdered,
		SupplierID:   d.SupplierID,
		UnitPrice:    d.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.CreateItem(ctx, it)
	if err != nil {
		log.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	log.Info("CreateItem success", zap.String("item_id", created.ID))
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, d Draft) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateItem"),
		zap.String("item_id", id),
	)
	log.Info("UpdateItem started")

	if err := d.Validate(); err != nil {
		log.Warn("UpdateItem validation failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateItem(ctx, id, d.normalized(), s.now())
	if err != nil {
		log.Error("failed to update item", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateItem success")
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteItem"),
		zap.String("item_id", id),
	)
	log.Info("DeleteItem started")

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		log.Error("failed to delete item", zap.Error(err))
		return err
	}

	log.Info("DeleteItem success")
	return nil
}
