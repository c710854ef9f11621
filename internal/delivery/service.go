package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=delivery
type Repository interface {
	ListDeliveries(ctx context.Context, statut *Statut) ([]*View, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx scopes a delivery transition. LockDelivery holds the row until Commit or
// Rollback.
type Tx interface {
	LockDelivery(ctx context.Context, id uuid.UUID) (*Delivery, error)
	UpdateDelivery(ctx context.Context, d *Delivery) error
	MarkPlanDelivered(ctx context.Context, planID uuid.UUID) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Pending(ctx context.Context) ([]*View, error) {
	return s.repo.ListDeliveries(ctx, new(StatutEnAttente))
}

func (s *Service) All(ctx context.Context) ([]*View, error) {
	return s.repo.ListDeliveries(ctx, nil)
}

// Validate moves a waiting delivery into transit.
func (s *Service) Validate(ctx context.Context, id uuid.UUID, notes string) (*Delivery, error) {
	return s.transition(ctx, id, StatutEnAttente, func(tx Tx, d *Delivery) error {
		d.Statut = StatutEnCours
		d.DateValidation = new(s.now())

		if notes != "" {
			d.Notes = notes
		}

		return nil
	})
}

// Complete marks a delivery in transit as delivered and closes its plan.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	d, err := s.transition(ctx, id, StatutEnCours, func(tx Tx, d *Delivery) error {
		d.Statut = StatutLivree
		d.DateLivraison = new(s.now())

		if err := tx.MarkPlanDelivered(ctx, d.PlanID); err != nil {
			return fmt.Errorf("mark plan delivered: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("delivery completed", "delivery_id", d.ID, "plan_id", d.PlanID)

	return d, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from Statut, apply func(Tx, *Delivery) error) (*Delivery, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin delivery update: %w", err)
	}
	defer tx.Rollback()

	d, err := tx.LockDelivery(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.Statut != from {
		return nil, ErrInvalidTransition
	}

	if err := apply(tx, d); err != nil {
		return nil, err
	}

	if err := tx.UpdateDelivery(ctx, d); err != nil {
		return nil, fmt.Errorf("update delivery: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delivery update: %w", err)
	}

	return d, nil
}
