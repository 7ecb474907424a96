package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/supplier"

	"go.uber.org/zap"
)

type Repository interface {
	FetchOrders(ctx context.Context) ([]*Order, error)
	GetOrderWithItems(ctx context.Context, id string) (*Order, error)
	CreateOrder(ctx context.Context, o *Order) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.supplier_id, o.order_date, o.expected_delivery, o.status, o.total,
	o.created_at, o.updated_at, s.name`

const lineColumns = `
	oi.id, oi.order_id, oi.item_id, oi.quantity, oi.unit_price, oi.total_price, oi.created_at,`

func scanOrder(row item.Scanner) (*Order, error) {
	var (
		o                Order
		supplierID       sql.NullString
		supplierName     sql.NullString
		expectedDelivery sql.NullTime
		total            sql.NullFloat64
	)

	if err := row.Scan(
		&o.ID, &supplierID, &o.OrderDate, &expectedDelivery, &o.Status, &total,
		&o.CreatedAt, &o.UpdatedAt, &supplierName,
	); err != nil {
		return nil, err
	}

	if supplierID.Valid {
		o.SupplierID = &supplierID.String
	}
	if supplierName.Valid {
		o.SupplierName = &supplierName.String
	}
	if expectedDelivery.Valid {
		o.ExpectedDelivery = &expectedDelivery.Time
	}
	if total.Valid {
		o.Total = &total.Float64
	}
	return &o, nil
}

// lineScanner reads the order_items columns ahead of the joined item columns.
type lineScanner struct {
	row    item.Scanner
	prefix []any
}

func (l lineScanner) Scan(dest ...any) error {
	return l.row.Scan(append(l.prefix, dest...)...)
}

func (r *repository) FetchOrders(ctx context.Context) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	query := `SELECT` + orderColumns + `
		FROM orders o
		LEFT JOIN suppliers s ON s.id = o.supplier_id
		ORDER BY o.order_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed FetchOrders", zap.Error(err))
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	return orders, nil
}

func (r *repository) getOrder(ctx context.Context, id string) (*Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o
		LEFT JOIN suppliers s ON s.id = o.supplier_id
		WHERE o.id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetOrderWithItems loads the order, its supplier and its lines joined with
// their inventory items.
func (r *repository) GetOrderWithItems(ctx context.Context, id string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("order_id", id),
	)

	o, err := r.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.SupplierID != nil {
		s, err := supplier.Scan(r.db.QueryRowContext(ctx,
			`SELECT`+supplier.Columns+` FROM suppliers WHERE id = $1`, *o.SupplierID))
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			log.Error("supplier lookup failed", zap.Error(err))
			return nil, fmt.Errorf("get order supplier: %w", err)
		default:
			o.Supplier = s
		}
	}

	query := `SELECT` + lineColumns + item.Columns + `, s.name
		FROM order_items oi
		JOIN inventory_items i ON i.id = oi.item_id
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("DB query failed order lines", zap.Error(err))
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}
	defer rows.Close()

	o.Items = []OrderItem{}
	for rows.Next() {
		var line OrderItem
		it, err := item.Scan(lineScanner{row: rows, prefix: []any{
			&line.ID, &line.OrderID, &line.ItemID, &line.Quantity,
			&line.UnitPrice, &line.TotalPrice, &line.CreatedAt,
		}})
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		line.Item = it
		o.Items = append(o.Items, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}

	return o, nil
}

// CreateOrder writes the order row and its lines in one transaction.
func (r *repository) CreateOrder(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, supplier_id, order_date, expected_delivery,
			status, total, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.SupplierID, o.OrderDate, o.ExpectedDelivery,
		o.Status, o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	for _, line := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, item_id, quantity, unit_price, total_price, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			line.ID, o.ID, line.ItemID, line.Quantity,
			line.UnitPrice, line.TotalPrice, line.CreatedAt,
		)
		if err != nil {
			log.Error("insert order line failed",
				zap.String("item_id", line.ItemID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("create order line failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return o, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id string, status Status, updatedAt time.Time) (*Order, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, updatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update order status failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update order status failed: %w", err)
	}
	if n == 0 {
		return nil, ErrOrderNotFound
	}

	return r.getOrder(ctx, id)
}

// DeleteOrder removes the order. Its lines go with it through ON DELETE CASCADE.
func (r *repository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order failed: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}
