package cotisation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/delivery"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
	"github.com/MrJamesThe3rd/mda/internal/product"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cotisation
type Repository interface {
	CreatePlan(ctx context.Context, p *Plan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*PlanView, error)
	ListUserPlans(ctx context.Context, userID uuid.UUID) ([]*PlanView, error)
	ListPayments(ctx context.Context, planID uuid.UUID) ([]*Payment, error)
	ListPendingLiquidations(ctx context.Context) ([]*PendingLiquidation, error)

	Begin(ctx context.Context) (WorkflowTx, error)
}

// WorkflowTx is one atomic plan mutation. LockPlan holds the plan row until
// Commit or Rollback, so concurrent payments on a plan serialize.
type WorkflowTx interface {
	LockPlan(ctx context.Context, id uuid.UUID) (*Plan, error)
	UpdatePlan(ctx context.Context, p *Plan) error
	CreatePayment(ctx context.Context, p *Payment) error
	RecordEntry(ctx context.Context, e ledger.Entry) (*ledger.Transaction, error)
	CreateDelivery(ctx context.Context, d *delivery.Delivery) error
	CreditAvoir(ctx context.Context, userID uuid.UUID, amount int64) error
	Commit() error
	Rollback() error
}

type ProductFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

type UserFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Options struct {
	// RecordCompletionSale books a vente_physique flux for the full price when
	// a plan completes, on top of the vente_digitale flux of every payment.
	RecordCompletionSale bool
}

type Service struct {
	repo     Repository
	products ProductFinder
	users    UserFinder
	opts     Options
	now      func() time.Time
}

func NewService(repo Repository, products ProductFinder, users UserFinder, opts Options) *Service {
	return &Service{
		repo:     repo,
		products: products,
		users:    users,
		opts:     opts,
		now:      time.Now,
	}
}

type CreateParams struct {
	UserID         uuid.UUID
	ProductID      uuid.UUID
	Frequence      Frequence
	MontantParMise int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*PlanView, error) {
	if !params.Frequence.Valid() {
		return nil, ErrInvalidFrequence
	}

	if params.MontantParMise < MinMise {
		return nil, ErrMiseTooLow
	}

	p, err := s.products.Get(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	if !p.IsActive {
		return nil, product.ErrNotFound
	}

	now := s.now()
	plan := &Plan{
		UserID:            params.UserID,
		ProductID:         p.ID,
		MontantTotal:      p.PrixClient,
		Frequence:         params.Frequence,
		MontantParMise:    params.MontantParMise,
		Statut:            StatutActif,
		DateDebut:         now,
		ProchaineEcheance: new(params.Frequence.Next(now)),
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	return &PlanView{Plan: plan, Product: p}, nil
}

func (s *Service) MyPlans(ctx context.Context, userID uuid.UUID) ([]*PlanView, error) {
	return s.repo.ListUserPlans(ctx, userID)
}

// GetPlan returns the plan only to its owner; anyone else gets ErrPlanNotFound.
func (s *Service) GetPlan(ctx context.Context, planID, userID uuid.UUID) (*PlanView, error) {
	v, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if v.UserID != userID {
		return nil, ErrPlanNotFound
	}

	return v, nil
}

func (s *Service) Payments(ctx context.Context, planID, userID uuid.UUID) ([]*Payment, error) {
	if _, err := s.GetPlan(ctx, planID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, planID)
}

type PaymentParams struct {
	PlanID        uuid.UUID
	UserID        uuid.UUID
	Montant       int64
	PaymentMethod string
}

type PaymentResult struct {
	Payment      *Payment
	Plan         *Plan
	PlanComplete bool
}

// MakePayment applies one installment. The payment row, its ledger entry, the
// plan update and, on completion, the delivery and sale entries are written in
// one transaction.
func (s *Service) MakePayment(ctx context.Context, params PaymentParams) (*PaymentResult, error) {
	if params.Montant <= 0 {
		return nil, ErrInvalidMontant
	}

	if params.PaymentMethod == "" {
		return nil, ErrMissingMethod
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	plan, err := s.lockOwnedPlan(ctx, tx, params.PlanID, params.UserID)
	if err != nil {
		return nil, err
	}

	if plan.Statut != StatutActif {
		return nil, ErrPlanNotActive
	}

	if params.Montant > math.MaxInt64-plan.MontantCotise {
		return nil, ErrInvalidMontant
	}

	now := s.now()
	millis := now.UnixMilli()

	payment := &Payment{
		PlanID:         plan.ID,
		Montant:        params.Montant,
		PaymentMethod:  params.PaymentMethod,
		TransactionRef: fmt.Sprintf("TXN-%d", millis),
		Statut:         PaymentCompleted,
	}
	if err := tx.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	_, err = tx.RecordEntry(ctx, ledger.Entry{
		UserID:      plan.UserID,
		Montant:     params.Montant,
		Type:        ledger.TxCotisationPayment,
		Reference:   fmt.Sprintf("PAYMENT-%s-%d", plan.ID, millis),
		Description: fmt.Sprintf("Paiement de %s pour le plan %s", ledger.FormatFCFA(params.Montant), plan.ID),
		Flux:        ledger.Classified(ledger.FluxVenteDigitale),
	})
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	plan.MontantCotise += params.Montant
	complete := plan.MontantCotise >= plan.MontantTotal

	if complete {
		if err := s.completePlan(ctx, tx, plan, now); err != nil {
			return nil, err
		}
	} else {
		from := now
		if plan.ProchaineEcheance != nil {
			from = *plan.ProchaineEcheance
		}

		plan.ProchaineEcheance = new(plan.Frequence.Next(from))
	}

	if err := tx.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	if complete {
		slog.Info("cotisation plan completed", "plan_id", plan.ID, "user_id", plan.UserID, "montant_total", plan.MontantTotal)
	}

	return &PaymentResult{Payment: payment, Plan: plan, PlanComplete: complete}, nil
}

func (s *Service) completePlan(ctx context.Context, tx WorkflowTx, plan *Plan, now time.Time) error {
	plan.Statut = StatutComplete
	plan.DateFin = new(now)
	plan.ProchaineEcheance = nil

	owner, err := s.users.Get(ctx, plan.UserID)
	if err != nil {
		return fmt.Errorf("get plan owner: %w", err)
	}

	address := owner.Address
	if address == "" {
		address = delivery.DefaultAddress
	}

	err = tx.CreateDelivery(ctx, &delivery.Delivery{
		PlanID:           plan.ID,
		UserID:           plan.UserID,
		ProductID:        plan.ProductID,
		AdresseLivraison: address,
		Statut:           delivery.StatutEnAttente,
	})
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}

	reference := fmt.Sprintf("PLAN-%s", plan.ID)

	_, err = tx.RecordEntry(ctx, ledger.Entry{
		UserID:      plan.UserID,
		Montant:     plan.MontantTotal,
		Type:        ledger.TxCotisationComplete,
		Reference:   reference,
		Description: fmt.Sprintf("Cotisation complète pour le plan %s", plan.ID),
	})
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}

	if !s.opts.RecordCompletionSale {
		return nil
	}

	_, err = tx.RecordEntry(ctx, ledger.Entry{
		UserID:      plan.UserID,
		Montant:     plan.MontantTotal,
		Type:        ledger.TxVente,
		Reference:   reference,
		Description: fmt.Sprintf("Vente de %s pour le plan %s", ledger.FormatFCFA(plan.MontantTotal), plan.ID),
		Flux:        ledger.Classified(ledger.FluxVentePhysique),
	})
	if err != nil {
		return fmt.Errorf("record sale: %w", err)
	}

	return nil
}

// RequestLiquidation marks an active plan liquide. Funds are settled later by
// ValidateLiquidation.
func (s *Service) RequestLiquidation(ctx context.Context, planID, userID uuid.UUID) (*Plan, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin liquidation request: %w", err)
	}
	defer tx.Rollback()

	plan, err := s.lockOwnedPlan(ctx, tx, planID, userID)
	if err != nil {
		return nil, err
	}

	if plan.Statut != StatutActif {
		return nil, ErrPlanNotActive
	}

	plan.Statut = StatutLiquide

	if err := tx.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit liquidation request: %w", err)
	}

	return plan, nil
}

func (s *Service) PendingLiquidations(ctx context.Context) ([]*PendingLiquidation, error) {
	return s.repo.ListPendingLiquidations(ctx)
}

type LiquidationResult struct {
	Settlement
	Plan *Plan
}

// ValidateLiquidation settles a liquidated plan: the penalty is booked as
// exceptional revenue and the rest is credited to the client's avoir. A plan
// is settled at most once; DateFin marks it.
func (s *Service) ValidateLiquidation(ctx context.Context, planID uuid.UUID) (*LiquidationResult, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin liquidation: %w", err)
	}
	defer tx.Rollback()

	plan, err := tx.LockPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.Statut != StatutLiquide {
		return nil, ErrNotLiquidated
	}

	if plan.DateFin != nil {
		return nil, ErrAlreadySettled
	}

	split := Split(plan.MontantCotise)
	reference := fmt.Sprintf("LIQ-%s", plan.ID)

	_, err = tx.RecordEntry(ctx, ledger.Entry{
		UserID:      plan.UserID,
		Montant:     split.Penalite,
		Type:        ledger.TxLiquidationPenalite,
		Reference:   reference,
		Description: fmt.Sprintf("Pénalité de liquidation du plan %s", plan.ID),
		Flux:        ledger.Classified(ledger.FluxRevenuExceptionnel),
	})
	if err != nil {
		return nil, fmt.Errorf("record penalty: %w", err)
	}

	_, err = tx.RecordEntry(ctx, ledger.Entry{
		UserID:      plan.UserID,
		Montant:     split.AvoirClient,
		Type:        ledger.TxLiquidationAvoir,
		Reference:   reference,
		Description: fmt.Sprintf("Avoir de %s suite à la liquidation du plan %s", ledger.FormatFCFA(split.AvoirClient), plan.ID),
		Flux:        ledger.Classified(ledger.FluxAvoirClient),
	})
	if err != nil {
		return nil, fmt.Errorf("record avoir: %w", err)
	}

	if err := tx.CreditAvoir(ctx, plan.UserID, split.AvoirClient); err != nil {
		return nil, fmt.Errorf("credit avoir: %w", err)
	}

	plan.DateFin = new(s.now())

	if err := tx.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit liquidation: %w", err)
	}

	slog.Info("liquidation settled",
		"plan_id", plan.ID,
		"user_id", plan.UserID,
		"penalite", split.Penalite,
		"avoir_client", split.AvoirClient,
	)

	return &LiquidationResult{Settlement: split, Plan: plan}, nil
}

func (s *Service) lockOwnedPlan(ctx context.Context, tx WorkflowTx, planID, userID uuid.UUID) (*Plan, error) {
	plan, err := tx.LockPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}

	return plan, nil
}
