package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/database"
	"github.com/MrJamesThe3rd/mda/internal/user"
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

// SelectColumns lists user columns in ScanUser order. Callers joining users use
// the alias u.
const SelectColumns = `
	u.id, u.email, u.name, u.password_hash, u.login_method, u.role, u.phone, u.address,
	u.referred_by, u.avoir_balance, u.created_at, u.updated_at, u.last_signed_in
`

// Fields returns an empty user, the scan destinations matching SelectColumns,
// and a func that must run after a successful Scan. Join queries append these
// destinations to their own.
func Fields() (*user.User, []any, func()) {
	var u user.User

	var role string

	var passwordHash, phone, address sql.NullString

	dest := []any{
		&u.ID, &u.Email, &u.Name, &passwordHash, &u.LoginMethod, &role, &phone, &address,
		&u.ReferredBy, &u.AvoirBalance, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn,
	}

	return &u, dest, func() {
		u.Role = user.Role(role)
		u.PasswordHash = passwordHash.String
		u.Phone = phone.String
		u.Address = address.String
	}
}

// ScanUser reads a row laid out as SelectColumns.
func ScanUser(s scanner) (*user.User, error) {
	u, dest, done := Fields()
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	done()

	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, login_method, role, phone, referred_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7)
		RETURNING id, avoir_balance, created_at, updated_at, last_signed_in
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.LoginMethod,
		u.Role,
		u.Phone,
		u.ReferredBy,
	).Scan(&u.ID, &u.AvoirBalance, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + SelectColumns + ` FROM users u WHERE u.id = $1`

	u, err := ScanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + SelectColumns + ` FROM users u WHERE u.email = $1`

	u, err := ScanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + SelectColumns + ` FROM users u ORDER BY u.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

func (s *Store) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("updating role: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) TouchLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_signed_in = $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("updating last sign-in: %w", err)
	}

	return nil
}
