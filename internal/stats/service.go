package stats

import (
	"context"

	"culinary-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	FetchStats(ctx context.Context) (Stats, error)
}

// Observer receives every freshly fetched Stats value.
type Observer func(Stats)

type service struct {
	repo      Repository
	observers []Observer
}

func NewService(repo Repository, observers ...Observer) Service {
	return &service{repo: repo, observers: observers}
}

func (s *service) FetchStats(ctx context.Context) (Stats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchStats"),
	)

	st, err := s.repo.FetchStats(ctx)
	if err != nil {
		log.Error("failed to fetch stats", zap.Error(err))
		return Stats{}, err
	}

	for _, obs := range s.observers {
		obs(st)
	}

	log.Info("FetchStats success",
		zap.Int("total_items", st.TotalItems),
		zap.Int("pending_orders", st.PendingOrders),
	)
	return st, nil
}
