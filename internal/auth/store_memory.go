package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"BookStore/internal/apperr"
)

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

const maxPasswordBytes = 72

// MemStore is a process-lifetime user directory keyed by the exact,
// case-sensitive username.
type MemStore struct {
	mu         sync.RWMutex
	byUsername map[string]Account

	// dummyHash is compared against when the username is unknown so that
	// both login failures do the same bcrypt work.
	dummyHash []byte

	now func() time.Time
}

func NewMemStore() *MemStore {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), PasswordCost)
	if err != nil {
		panic("bcrypt dummy hash: " + err.Error())
	}
	return &MemStore{
		byUsername: make(map[string]Account),
		dummyHash:  dummy,
		now:        time.Now,
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Register(ctx context.Context, username, password string) (Account, error) {
	if username == "" || password == "" {
		return Account{}, ErrCredentialsRequired
	}
	if len(password) > maxPasswordBytes {
		return Account{}, ErrPasswordTooLong
	}

	s.mu.RLock()
	_, taken := s.byUsername[username]
	s.mu.RUnlock()
	if taken {
		return Account{}, ErrUsernameTaken
	}

	// Hash outside the lock; bcrypt is the slow part.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Account{}, ErrPasswordTooLong
		}
		return Account{}, apperr.Wrap(err, apperr.CodeInternal, "hash password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[username]; ok {
		return Account{}, ErrUsernameTaken
	}

	a := Account{
		ID:        "u_" + uuid.NewString(),
		Username:  username,
		Hash:      hash,
		CreatedAt: s.now().UTC(),
	}
	s.byUsername[username] = a
	return a, nil
}

func (s *MemStore) Login(ctx context.Context, username, password string) (Account, error) {
	s.mu.RLock()
	a, ok := s.byUsername[username]
	s.mu.RUnlock()

	hash := a.Hash
	if !ok {
		hash = s.dummyHash
	}

	// bcrypt only looks at the first 72 bytes, and Register never stores
	// a longer password, so anything longer cannot be a match.
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if !ok || err != nil || password == "" || len(password) > maxPasswordBytes {
		return Account{}, ErrInvalidCredentials
	}
	return a, nil
}
