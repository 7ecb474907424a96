package supplier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var supplierCols = []string{
	"id", "name", "contact", "phone", "email", "category", "last_order", "status", "created_at", "updated_at",
}

func TestRepository_FetchSuppliers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(supplierCols).
		AddRow("sup-1", "Fresh Farms", "Ana", nil, nil, "Produce", now, "Active", now, now).
		AddRow("sup-2", "Ocean Catch", nil, "555-0100", "sales@ocean.test", nil, nil, "Inactive", now, now)

	mock.ExpectQuery("SELECT .* FROM suppliers ORDER BY name ASC").WillReturnRows(rows)

	suppliers, err := NewRepository(db).FetchSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 2)

	assert.Equal(t, "Ana", *suppliers[0].Contact)
	assert.Nil(t, suppliers[0].Phone)
	require.NotNil(t, suppliers[0].LastOrder)
	assert.Nil(t, suppliers[1].Category)
	assert.Nil(t, suppliers[1].LastOrder)
	assert.Equal(t, "Inactive", suppliers[1].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateSupplier(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	s := &Supplier{ID: "sup-1", Name: "Fresh Farms", Status: StatusActive, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO suppliers").
		WithArgs("sup-1", "Fresh Farms", nil, nil, nil, nil, nil, "Active", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .* FROM suppliers WHERE id = \\$1").
		WithArgs("sup-1").
		WillReturnRows(sqlmock.NewRows(supplierCols).
			AddRow("sup-1", "Fresh Farms", nil, nil, nil, nil, nil, "Active", now, now))

	created, err := NewRepository(db).CreateSupplier(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "sup-1", created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSupplier(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now().UTC()
	lastOrder := now.Add(-48 * time.Hour)
	d := Draft{Name: "Fresh Farms", Status: StatusActive}

	t.Run("Preserves last order", func(t *testing.T) {
		mock.ExpectExec("UPDATE suppliers SET").
			WithArgs("Fresh Farms", nil, nil, nil, nil, "Active", lastOrder, now, "sup-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT .* FROM suppliers WHERE id = \\$1").
			WithArgs("sup-1").
			WillReturnRows(sqlmock.NewRows(supplierCols).
				AddRow("sup-1", "Fresh Farms", nil, nil, nil, nil, lastOrder, "Active", now, now))

		updated, err := repo.UpdateSupplier(context.Background(), "sup-1", d, &lastOrder, now)
		require.NoError(t, err)
		require.NotNil(t, updated.LastOrder)
		assert.True(t, lastOrder.Equal(*updated.LastOrder))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE suppliers SET").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateSupplier(context.Background(), "missing", d, nil, now)
		assert.ErrorIs(t, err, ErrSupplierNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteSupplier(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM suppliers WHERE id = \\$1").
		WithArgs("sup-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM suppliers WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM suppliers").
		WillReturnError(errors.New("db down"))

	assert.NoError(t, repo.DeleteSupplier(context.Background(), "sup-1"))
	assert.ErrorIs(t, repo.DeleteSupplier(context.Background(), "missing"), ErrSupplierNotFound)
	assert.ErrorContains(t, repo.DeleteSupplier(context.Background(), "sup-2"), "delete supplier failed")
	require.NoError(t, mock.ExpectationsWereMet())
}
