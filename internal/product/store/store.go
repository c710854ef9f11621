package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/database"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// SelectColumns lists product columns in ScanProduct order, aliased p.
const SelectColumns = `
	p.id, p.nom, p.description, p.prix_client, p.prix_fournisseur, p.stock_actuel,
	p.category, p.image_url, p.is_active, p.created_at, p.updated_at
`

// Fields returns an empty product and the scan destinations matching
// SelectColumns, for join queries.
func Fields() (*product.Product, []any) {
	var p product.Product

	return &p, []any{
		&p.ID, &p.Nom, &p.Description, &p.PrixClient, &p.PrixFournisseur, &p.StockActuel,
		&p.Category, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	}
}

func ScanProduct(s scanner) (*product.Product, error) {
	p, dest := Fields()
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	return p, nil
}

const insertProduct = `
	INSERT INTO products (nom, description, prix_client, prix_fournisseur, stock_actuel, category, image_url, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, created_at, updated_at
`

func createProduct(ctx context.Context, q database.Querier, p *product.Product) error {
	err := q.QueryRowContext(ctx, insertProduct,
		p.Nom,
		p.Description,
		p.PrixClient,
		p.PrixFournisseur,
		p.StockActuel,
		p.Category,
		p.ImageURL,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	return createProduct(ctx, s.db, p)
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + SelectColumns + ` FROM products p WHERE p.id = $1`

	p, err := ScanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListActiveProducts(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + SelectColumns + ` FROM products p WHERE p.is_active ORDER BY p.nom ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := ScanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET nom = $1, description = $2, prix_client = $3, prix_fournisseur = $4, stock_actuel = $5,
		    category = $6, image_url = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Nom,
		p.Description,
		p.PrixClient,
		p.PrixFournisseur,
		p.StockActuel,
		p.Category,
		p.ImageURL,
		p.IsActive,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (product.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateProducts(ctx context.Context, products []*product.Product) error {
	for _, p := range products {
		if err := createProduct(ctx, itx.tx, p); err != nil {
			return err
		}
	}

	return nil
}
