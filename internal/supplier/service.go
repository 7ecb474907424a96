package supplier

import (
	"context"
	"time"

	"culinary-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the data-access operations for suppliers.
type Service interface {
	FetchSuppliers(ctx context.Context) ([]*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	CreateSupplier(ctx context.Context, d Draft) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, d Draft, lastOrder *time.Time) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
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

func (s *service) FetchSuppliers(ctx context.Context) ([]*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchSuppliers"),
	)
	log.Info("FetchSuppliers started")

	suppliers, err := s.repo.FetchSuppliers(ctx)
	if err != nil {
		log.Error("failed to fetch suppliers", zap.Error(err))
		return nil, err
	}

	log.Info("FetchSuppliers success", zap.Int("count", len(suppliers)))
	return suppliers, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *service) CreateSupplier(ctx context.Context, d Draft) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateSupplier"),
		zap.String("name", d.Name),
	)
	log.Info("CreateSupplier started")

	if err := d.Validate(); err != nil {
		log.Warn("CreateSupplier validation failed", zap.Error(err))
		return nil, err
	}
	d = d.normalized()

	now := s.now()
	created, err := s.repo.CreateSupplier(ctx, &Supplier{
		ID:        s.newID(),
		Name:      d.Name,
		Contact:   d.Contact,
		Phone:     d.Phone,
		Email:     d.Email,
		Category:  d.Category,
		Status:    d.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Error("failed to create supplier", zap.Error(err))
		return nil, err
	}

	log.Info("CreateSupplier success", zap.String("supplier_id", created.ID))
	return created, nil
}

// UpdateSupplier writes the draft and carries lastOrder over unchanged.
func (s *service) UpdateSupplier(ctx context.Context, id string, d Draft, lastOrder *time.Time) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateSupplier"),
		zap.String("supplier_id", id),
	)
	log.Info("UpdateSupplier started")

	if err := d.Validate(); err != nil {
		log.Warn("UpdateSupplier validation failed", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateSupplier(ctx, id, d.normalized(), lastOrder, s.now())
	if err != nil {
		log.Error("failed to update supplier", zap.Error(err))
		return nil, err
	}

	log.Info("UpdateSupplier success")
	return updated, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteSupplier"),
		zap.String("supplier_id", id),
	)
	log.Info("DeleteSupplier started")

	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		log.Error("failed to delete supplier", zap.Error(err))
		return err
	}

	log.Info("DeleteSupplier success")
	return nil
}
