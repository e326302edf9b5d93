package session

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-ports/gomate/internal/validation"
)

// Password schemes accepted by NewHasher.
const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// Hasher turns a password into its stored form and checks candidates against it.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// NewHasher returns the Hasher for scheme. The empty scheme is plaintext.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemePlaintext:
		return Plaintext{}, nil
	case SchemeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme: %s", scheme)
	}
}

// Plaintext stores passwords verbatim and compares by exact string equality.
// It is not a credential model suitable for production; use Bcrypt.
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) { return password, nil }

func (Plaintext) Compare(stored, password string) bool { return stored == password }

// Bcrypt stores salted bcrypt hashes.
type Bcrypt struct {
	Cost int
}

// Hash rejects passwords longer than bcrypt accepts with a *validation.Error.
func (b Bcrypt) Hash(password string) (string, error) {
	if len(password) > validation.MaxHashedPasswordBytes {
		return "", validation.Invalid(validation.FieldPassword, validation.ReasonPasswordTooLong).Err()
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

func (Bcrypt) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
