package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/database"
	"github.com/MrJamesThe3rd/mda/internal/delivery"
	productstore "github.com/MrJamesThe3rd/mda/internal/product/store"
	userstore "github.com/MrJamesThe3rd/mda/internal/user/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	d.id, d.plan_id, d.user_id, d.product_id, d.adresse_livraison, d.statut,
	d.date_validation, d.date_livraison, d.notes, d.created_at, d.updated_at
`

func fields() (*delivery.Delivery, []any, func()) {
	var d delivery.Delivery

	var statut string

	dest := []any{
		&d.ID, &d.PlanID, &d.UserID, &d.ProductID, &d.AdresseLivraison, &statut,
		&d.DateValidation, &d.DateLivraison, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	}

	return &d, dest, func() { d.Statut = delivery.Statut(statut) }
}

// CreateDelivery inserts d. The cotisation workflow calls it inside its own
// transaction when a plan completes.
func CreateDelivery(ctx context.Context, q database.Querier, d *delivery.Delivery) error {
	query := `
		INSERT INTO deliveries (plan_id, user_id, product_id, adresse_livraison, statut, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		d.PlanID,
		d.UserID,
		d.ProductID,
		d.AdresseLivraison,
		d.Statut,
		d.Notes,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating delivery: %w", err)
	}

	return nil
}

func (s *Store) ListDeliveries(ctx context.Context, statut *delivery.Statut) ([]*delivery.View, error) {
	query := `
		SELECT ` + selectColumns + `, ` + userstore.SelectColumns + `, ` + productstore.SelectColumns + `
		FROM deliveries d
		JOIN users u ON u.id = d.user_id
		JOIN products p ON p.id = d.product_id
	`

	var args []any

	if statut != nil {
		query += ` WHERE d.statut = $1`

		args = append(args, *statut)
	}

	query += ` ORDER BY d.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	defer rows.Close()

	var views []*delivery.View

	for rows.Next() {
		d, dDest, dDone := fields()
		u, uDest, uDone := userstore.Fields()
		p, pDest := productstore.Fields()

		dest := append(append(dDest, uDest...), pDest...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}

		dDone()
		uDone()

		views = append(views, &delivery.View{Delivery: d, User: u, Product: p})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliveries: %w", err)
	}

	return views, nil
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (delivery.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning delivery tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) LockDelivery(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	query := `SELECT ` + selectColumns + ` FROM deliveries d WHERE d.id = $1 FOR UPDATE`

	d, dest, done := fields()
	if err := t.tx.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, delivery.ErrNotFound
		}

		return nil, fmt.Errorf("locking delivery: %w", err)
	}

	done()

	return d, nil
}

func (t *tx) UpdateDelivery(ctx context.Context, d *delivery.Delivery) error {
	query := `
		UPDATE deliveries
		SET statut = $1, date_validation = $2, date_livraison = $3, notes = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		d.Statut,
		d.DateValidation,
		d.DateLivraison,
		d.Notes,
		d.ID,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return delivery.ErrNotFound
		}

		return fmt.Errorf("updating delivery: %w", err)
	}

	return nil
}

func (t *tx) MarkPlanDelivered(ctx context.Context, planID uuid.UUID) error {
	query := `UPDATE cotisation_plans SET statut = $1, updated_at = NOW() WHERE id = $2`

	if _, err := t.tx.ExecContext(ctx, query, cotisation.StatutLivre, planID); err != nil {
		return fmt.Errorf("marking plan delivered: %w", err)
	}

	return nil
}
