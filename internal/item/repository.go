package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"culinary-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FetchItems(ctx context.Context) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	CreateItem(ctx context.Context, it *Item) (*Item, error)
	UpdateItem(ctx context.Context, id string, d Draft, updatedAt time.Time) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Columns lists the item columns aliased as i. Scan expects them followed by
// the joined supplier name.
const Columns = `
	i.id, i.name, i.category, i.current_stock, i.unit, i.min_level, i.status,
	i.last_ordered, i.supplier_id, i.unit_price, i.created_at, i.updated_at`

type Scanner interface {
	Scan(dest ...any) error
}

func Scan(row Scanner) (*Item, error) {
	var (
		it           Item
		lastOrdered  sql.NullTime
		supplierID   sql.NullString
		supplierName sql.NullString
	)

	dest := []any{
		&it.ID, &it.Name, &it.Category, &it.CurrentStock, &it.Unit, &it.MinLevel, &it.Status,
		&lastOrdered, &supplierID, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
		&supplierName,
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if lastOrdered.Valid {
		it.LastOrdered = &lastOrdered.Time
	}
	if supplierID.Valid {
		it.SupplierID = &supplierID.String
	}
	if supplierName.Valid {
		it.SupplierName = &supplierName.String
	}
	return &it, nil
}

func (r *repository) FetchItems(ctx context.Context) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	query := `SELECT` + Columns + `, s.name
		FROM inventory_items i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		ORDER BY i.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed FetchItems", zap.Error(err))
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := Scan(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	return items, nil
}

func (r *repository) GetItem(ctx context.Context, id string) (*Item, error) {
	query := `SELECT` + Columns + `, s.name
		FROM inventory_items i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.id = $1`

	it, err := Scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *repository) CreateItem(ctx context.Context, it *Item) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("item_id", it.ID),
	)

	query := `
		INSERT INTO inventory_items (
			id, name, category, current_stock, unit, min_level, status,
			last_ordered, supplier_id, unit_price, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	log.Debug("Executing CreateItem query", zap.String("query", query))

	_, err := r.db.ExecContext(ctx, query,
		it.ID, it.Name, it.Category, it.CurrentStock, it.Unit, it.MinLevel, it.Status,
		it.LastOrdered, it.SupplierID, it.UnitPrice, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		log.Error("CreateItem DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create item failed: %w", err)
	}

	// Read back through the join so the supplier name is resolved.
	return r.GetItem(ctx, it.ID)
}

func (r *repository) UpdateItem(ctx context.Context, id string, d Draft, updatedAt time.Time) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("item_id", id),
	)

	// An omitted last_ordered keeps the stored value.
	query := `
		UPDATE inventory_items SET
			name = $1, category = $2, current_stock = $3, unit = $4, min_level = $5,
			status = $6, supplier_id = $7, unit_price = $8,
			last_ordered = COALESCE($9, last_ordered), updated_at = $10
		WHERE id = $11`

	res, err := r.db.ExecContext(ctx, query,
		d.Name, d.Category, d.CurrentStock, d.Unit, d.MinLevel,
		d.Status, d.SupplierID, d.UnitPrice, d.LastOrdered, updatedAt, id,
	)
	if err != nil {
		log.Error("UpdateItem DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update item failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update item failed: %w", err)
	}
	if n == 0 {
		log.Warn("UpdateItem target not found")
		return nil, ErrItemNotFound
	}

	return r.GetItem(ctx, id)
}

func (r *repository) DeleteItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
