package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	ListActiveProducts(ctx context.Context) ([]*Product, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	CreateProducts(ctx context.Context, products []*Product) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Nom             string
	Description     string
	PrixClient      int64
	PrixFournisseur int64
	StockActuel     int
	Category        string
	ImageURL        string
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Nom) == "" {
		return apperr.Invalidf("product name is required")
	}

	if p.PrixClient < 0 || p.PrixFournisseur < 0 {
		return apperr.Invalidf("prices must not be negative")
	}

	return nil
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	Nom             *string
	Description     *string
	PrixClient      *int64
	PrixFournisseur *int64
	StockActuel     *int
	Category        *string
	ImageURL        *string
	IsActive        *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	p := paramsToProduct(params)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Nom != nil {
		p.Nom = *params.Nom
	}

	if params.Description != nil {
		p.Description = *params.Description
	}

	if params.PrixClient != nil {
		p.PrixClient = *params.PrixClient
	}

	if params.PrixFournisseur != nil {
		p.PrixFournisseur = *params.PrixFournisseur
	}

	if params.StockActuel != nil {
		p.StockActuel = *params.StockActuel
	}

	if params.Category != nil {
		p.Category = *params.Category
	}

	if params.ImageURL != nil {
		p.ImageURL = *params.ImageURL
	}

	if params.IsActive != nil {
		p.IsActive = *params.IsActive
	}

	if p.PrixClient < 0 || p.PrixFournisseur < 0 {
		return nil, apperr.Invalidf("prices must not be negative")
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ImportBatch inserts a whole catalog in one transaction.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) ([]*Product, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	products := make([]*Product, len(params))
	for i, p := range params {
		products[i] = paramsToProduct(p)
	}

	if err := itx.CreateProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return products, nil
}

func paramsToProduct(p CreateParams) *Product {
	return &Product{
		Nom:             strings.TrimSpace(p.Nom),
		Description:     p.Description,
		PrixClient:      p.PrixClient,
		PrixFournisseur: p.PrixFournisseur,
		StockActuel:     p.StockActuel,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		IsActive:        true,
	}
}
