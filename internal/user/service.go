package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	TouchLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. An empty hash never matches
	// but costs the same as a real comparison.
	Verify(hash, password string) bool
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher, now: time.Now}
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if len(params.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	email := normalizeEmail(params.Email)

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Email:        email,
		Name:         strings.TrimSpace(params.Name),
		PasswordHash: hash,
		LoginMethod:  LoginMethodEmail,
		Role:         RoleClient,
		Phone:        strings.TrimSpace(params.Phone),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate checks email/password credentials. Unknown emails, OAuth-only
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var hash string
	if u != nil {
		hash = u.PasswordHash
	}

	if !s.hasher.Verify(hash, password) || u == nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.TouchLastSignedIn(ctx, u.ID, now); err != nil {
		return nil, err
	}

	u.LastSignedIn = now

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	return s.repo.UpdateRole(ctx, id, role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
