package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/delivery"
	deliverystore "github.com/MrJamesThe3rd/mda/internal/delivery/store"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	ledgerstore "github.com/MrJamesThe3rd/mda/internal/ledger/store"
	productstore "github.com/MrJamesThe3rd/mda/internal/product/store"
	userstore "github.com/MrJamesThe3rd/mda/internal/user/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const planColumns = `
	c.id, c.user_id, c.product_id, c.montant_total, c.montant_cotise, c.frequence,
	c.montant_par_mise, c.statut, c.date_debut, c.date_fin, c.prochaine_echeance,
	c.created_at, c.updated_at
`

func planFields() (*cotisation.Plan, []any, func()) {
	var p cotisation.Plan

	var frequence, statut string

	dest := []any{
		&p.ID, &p.UserID, &p.ProductID, &p.MontantTotal, &p.MontantCotise, &frequence,
		&p.MontantParMise, &statut, &p.DateDebut, &p.DateFin, &p.ProchaineEcheance,
		&p.CreatedAt, &p.UpdatedAt,
	}

	return &p, dest, func() {
		p.Frequence = cotisation.Frequence(frequence)
		p.Statut = cotisation.Statut(statut)
	}
}

func (s *Store) CreatePlan(ctx context.Context, p *cotisation.Plan) error {
	query := `
		INSERT INTO cotisation_plans (
			user_id, product_id, montant_total, montant_cotise, frequence, montant_par_mise,
			statut, date_debut, prochaine_echeance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.ProductID,
		p.MontantTotal,
		p.MontantCotise,
		p.Frequence,
		p.MontantParMise,
		p.Statut,
		p.DateDebut,
		p.ProchaineEcheance,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating plan: %w", err)
	}

	return nil
}

const selectPlanViews = `
	SELECT ` + planColumns + `, ` + productstore.SelectColumns + `
	FROM cotisation_plans c
	JOIN products p ON p.id = c.product_id
`

func scanPlanView(row interface{ Scan(...any) error }) (*cotisation.PlanView, error) {
	plan, planDest, done := planFields()
	prod, prodDest := productstore.Fields()

	if err := row.Scan(append(planDest, prodDest...)...); err != nil {
		return nil, err
	}

	done()

	return &cotisation.PlanView{Plan: plan, Product: prod}, nil
}

func (s *Store) GetPlan(ctx context.Context, id uuid.UUID) (*cotisation.PlanView, error) {
	v, err := scanPlanView(s.db.QueryRowContext(ctx, selectPlanViews+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cotisation.ErrPlanNotFound
		}

		return nil, fmt.Errorf("getting plan: %w", err)
	}

	return v, nil
}

func (s *Store) ListUserPlans(ctx context.Context, userID uuid.UUID) ([]*cotisation.PlanView, error) {
	rows, err := s.db.QueryContext(ctx, selectPlanViews+` WHERE c.user_id = $1 ORDER BY c.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var views []*cotisation.PlanView

	for rows.Next() {
		v, err := scanPlanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}

		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	return views, nil
}

func (s *Store) ListPayments(ctx context.Context, planID uuid.UUID) ([]*cotisation.Payment, error) {
	query := `
		SELECT id, plan_id, montant, payment_method, transaction_ref, statut, created_at
		FROM cotisation_payments
		WHERE plan_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*cotisation.Payment

	for rows.Next() {
		var p cotisation.Payment

		var ref sql.NullString

		var statut string

		if err := rows.Scan(&p.ID, &p.PlanID, &p.Montant, &p.PaymentMethod, &ref, &statut, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.TransactionRef = ref.String
		p.Statut = cotisation.PaymentStatut(statut)
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

func (s *Store) ListPendingLiquidations(ctx context.Context) ([]*cotisation.PendingLiquidation, error) {
	query := `
		SELECT ` + planColumns + `, ` + userstore.SelectColumns + `, ` + productstore.SelectColumns + `
		FROM cotisation_plans c
		JOIN users u ON u.id = c.user_id
		JOIN products p ON p.id = c.product_id
		WHERE c.statut = $1 AND c.date_fin IS NULL
		ORDER BY c.updated_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, cotisation.StatutLiquide)
	if err != nil {
		return nil, fmt.Errorf("listing pending liquidations: %w", err)
	}
	defer rows.Close()

	var pending []*cotisation.PendingLiquidation

	for rows.Next() {
		plan, planDest, planDone := planFields()
		u, uDest, uDone := userstore.Fields()
		prod, prodDest := productstore.Fields()

		if err := rows.Scan(append(append(planDest, uDest...), prodDest...)...); err != nil {
			return nil, fmt.Errorf("scanning pending liquidation: %w", err)
		}

		planDone()
		uDone()

		pending = append(pending, &cotisation.PendingLiquidation{Plan: plan, User: u, Product: prod})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending liquidations: %w", err)
	}

	return pending, nil
}

type workflowTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (cotisation.WorkflowTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning workflow tx: %w", err)
	}

	return &workflowTx{tx: dbTx}, nil
}

func (t *workflowTx) Commit() error   { return t.tx.Commit() }
func (t *workflowTx) Rollback() error { return t.tx.Rollback() }

func (t *workflowTx) LockPlan(ctx context.Context, id uuid.UUID) (*cotisation.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM cotisation_plans c WHERE c.id = $1 FOR UPDATE`

	plan, dest, done := planFields()
	if err := t.tx.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cotisation.ErrPlanNotFound
		}

		return nil, fmt.Errorf("locking plan: %w", err)
	}

	done()

	return plan, nil
}

func (t *workflowTx) UpdatePlan(ctx context.Context, p *cotisation.Plan) error {
	query := `
		UPDATE cotisation_plans
		SET montant_cotise = $1, statut = $2, date_fin = $3, prochaine_echeance = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		p.MontantCotise,
		p.Statut,
		p.DateFin,
		p.ProchaineEcheance,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cotisation.ErrPlanNotFound
		}

		return fmt.Errorf("updating plan: %w", err)
	}

	return nil
}

func (t *workflowTx) CreatePayment(ctx context.Context, p *cotisation.Payment) error {
	query := `
		INSERT INTO cotisation_payments (plan_id, montant, payment_method, transaction_ref, statut)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		p.PlanID,
		p.Montant,
		p.PaymentMethod,
		p.TransactionRef,
		p.Statut,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (t *workflowTx) RecordEntry(ctx context.Context, e ledger.Entry) (*ledger.Transaction, error) {
	return ledgerstore.RecordEntry(ctx, t.tx, e)
}

func (t *workflowTx) CreateDelivery(ctx context.Context, d *delivery.Delivery) error {
	return deliverystore.CreateDelivery(ctx, t.tx, d)
}

func (t *workflowTx) CreditAvoir(ctx context.Context, userID uuid.UUID, amount int64) error {
	query := `UPDATE users SET avoir_balance = avoir_balance + $1, updated_at = NOW() WHERE id = $2`

	res, err := t.tx.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("crediting avoir: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("crediting avoir: user %s not found", userID)
	}

	return nil
}
