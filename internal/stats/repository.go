package stats

import (
	"context"
	"database/sql"
	"fmt"

	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/order"

	"go.uber.org/zap"
)

type Repository interface {
	FetchStats(ctx context.Context) (Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FetchStats(ctx context.Context) (Stats, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	var s Stats

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM inventory_items GROUP BY status`)
	if err != nil {
		log.Error("DB query failed item counts", zap.Error(err))
		return Stats{}, fmt.Errorf("count items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status item.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Stats{}, fmt.Errorf("scan item count: %w", err)
		}
		s.add(status, n)
		s.TotalItems += n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("count items: %w", err)
	}

	inFlight := order.InFlightStatuses()
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status IN ($1, $2, $3)`,
		inFlight[0], inFlight[1], inFlight[2],
	).Scan(&s.PendingOrders)
	if err != nil {
		log.Error("DB query failed pending orders", zap.Error(err))
		return Stats{}, fmt.Errorf("count pending orders: %w", err)
	}

	return s, nil
}
