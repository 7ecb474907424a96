package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FetchStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM inventory_items GROUP BY status").
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow("low", 2).
				AddRow("critical", 1).
				AddRow("normal", 5))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM orders WHERE status IN").
			WithArgs("Processing", "In Transit", "Scheduled").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		s, err := repo.FetchStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Stats{LowStock: 2, CriticalStock: 1, NormalStock: 5, PendingOrders: 4, TotalItems: 8}, s)
	})

	t.Run("Item query error", func(t *testing.T) {
		mock.ExpectQuery("FROM inventory_items").WillReturnError(errors.New("db down"))

		_, err := repo.FetchStats(context.Background())
		assert.ErrorContains(t, err, "count items")
	})

	t.Run("Order query error", func(t *testing.T) {
		mock.ExpectQuery("FROM inventory_items").
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
		mock.ExpectQuery("FROM orders").WillReturnError(errors.New("db down"))

		_, err := repo.FetchStats(context.Background())
		assert.ErrorContains(t, err, "count pending orders")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
