package hasher

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrMismatch is returned by Compare when the password does not match the hash.
	ErrMismatch = errors.New("password mismatch")
	// ErrPasswordTooLong is returned by Hash for inputs over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
	// CompareDummy burns the same time as a real comparison. Used when the
	// account does not exist.
	CompareDummy(password string)
}

type BcryptHasher struct {
	cost      int
	dummyHash []byte
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, bcrypt.InvalidCostError(cost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("notekeeper-dummy-password"), cost)
	if err != nil {
		return nil, err
	}
	return &BcryptHasher{cost: cost, dummyHash: dummy}, nil
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

func (h *BcryptHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
