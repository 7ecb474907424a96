package supplier

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
	FetchSuppliers(ctx context.Context) ([]*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	CreateSupplier(ctx context.Context, s *Supplier) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, d Draft, lastOrder *time.Time, updatedAt time.Time) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Columns is the column list Scan reads.
const Columns = `
	id, name, contact, phone, email, category, last_order, status, created_at, updated_at`

type Scanner interface {
	Scan(dest ...any) error
}

func Scan(row Scanner) (*Supplier, error) {
	var s Supplier
	var contact, phone, email, category sql.NullString
	var lastOrder sql.NullTime

	if err := row.Scan(
		&s.ID, &s.Name, &contact, &phone, &email, &category,
		&lastOrder, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Contact = nullString(contact)
	s.Phone = nullString(phone)
	s.Email = nullString(email)
	s.Category = nullString(category)
	if lastOrder.Valid {
		s.LastOrder = &lastOrder.Time
	}
	return &s, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func (r *repository) FetchSuppliers(ctx context.Context) ([]*Supplier, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, `SELECT`+Columns+` FROM suppliers ORDER BY name ASC`)
	if err != nil {
		log.Error("DB query failed FetchSuppliers", zap.Error(err))
		return nil, fmt.Errorf("fetch suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []*Supplier{}
	for rows.Next() {
		s, err := Scan(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *repository) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	s, err := Scan(r.db.QueryRowContext(ctx,
		`SELECT`+Columns+` FROM suppliers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *repository) CreateSupplier(ctx context.Context, s *Supplier) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("supplier_id", s.ID),
	)

	query := `
		INSERT INTO suppliers (
			id, name, contact, phone, email, category, last_order, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Category,
		s.LastOrder, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		log.Error("CreateSupplier DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create supplier failed: %w", err)
	}

	return r.GetSupplier(ctx, s.ID)
}

func (r *repository) UpdateSupplier(ctx context.Context, id string, d Draft, lastOrder *time.Time, updatedAt time.Time) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("supplier_id", id),
	)

	query := `
		UPDATE suppliers SET
			name = $1, contact = $2, phone = $3, email = $4, category = $5,
			status = $6, last_order = $7, updated_at = $8
		WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		d.Name, d.Contact, d.Phone, d.Email, d.Category,
		d.Status, lastOrder, updatedAt, id,
	)
	if err != nil {
		log.Error("UpdateSupplier DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update supplier failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update supplier failed: %w", err)
	}
	if n == 0 {
		return nil, ErrSupplierNotFound
	}

	return r.GetSupplier(ctx, id)
}

func (r *repository) DeleteSupplier(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete supplier failed: %w", err)
	}
	if n == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
