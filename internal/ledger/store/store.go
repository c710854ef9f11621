package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/database"
	"github.com/MrJamesThe3rd/mda/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordEntry inserts the transaction of e and, when e is classified, its flux
// row. Run it on a *sql.Tx so both rows land together with the caller's other writes.
func RecordEntry(ctx context.Context, q database.Querier, e ledger.Entry) (*ledger.Transaction, error) {
	tx := &ledger.Transaction{
		UserID:      e.UserID,
		Montant:     e.Montant,
		Type:        e.Type,
		Reference:   e.Reference,
		Description: e.Description,
	}

	txQuery := `
		INSERT INTO transactions (user_id, montant, type, reference, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, txQuery,
		tx.UserID,
		tx.Montant,
		tx.Type,
		tx.Reference,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	if e.Flux == nil {
		return tx, nil
	}

	fluxQuery := `
		INSERT INTO flux_comptable (transaction_id, type_flux, montant_net, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := q.ExecContext(ctx, fluxQuery, tx.ID, *e.Flux, e.Montant); err != nil {
		return nil, fmt.Errorf("creating flux comptable: %w", err)
	}

	return tx, nil
}

func (s *Store) ListFlux(ctx context.Context) ([]*ledger.Flux, error) {
	query := `
		SELECT id, transaction_id, type_flux, montant_net, created_at
		FROM flux_comptable
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing flux: %w", err)
	}
	defer rows.Close()

	var flux []*ledger.Flux

	for rows.Next() {
		var f ledger.Flux

		var typeFlux string

		if err := rows.Scan(&f.ID, &f.TransactionID, &typeFlux, &f.MontantNet, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning flux: %w", err)
		}

		f.TypeFlux = ledger.FluxType(typeFlux)
		flux = append(flux, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flux: %w", err)
	}

	return flux, nil
}

const selectTransactionColumns = `id, user_id, montant, type, reference, description, created_at`

func (s *Store) ListTransactions(ctx context.Context) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions ORDER BY created_at ASC`

	return s.queryTransactions(ctx, query)
}

func (s *Store) ListUserTransactions(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`

	return s.queryTransactions(ctx, query, userID)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]*ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		var tx ledger.Transaction

		var txType string

		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Montant, &txType, &tx.Reference, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.Type = ledger.TxType(txType)
		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}
