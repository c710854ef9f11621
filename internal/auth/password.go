package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
)

// Bcrypt hashes passwords with bcrypt.
type Bcrypt struct {
	cost int

	decoyOnce sync.Once
	decoy     []byte
}

func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Invalidf("password must be at most 72 bytes")
	}

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify compares password against hash. With an empty hash it compares against
// a decoy so unknown accounts take as long as known ones, and reports false.
func (b *Bcrypt) Verify(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(b.decoyHash(), []byte(password))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (b *Bcrypt) decoyHash() []byte {
	b.decoyOnce.Do(func() {
		b.decoy, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), b.cost)
	})

	return b.decoy
}
