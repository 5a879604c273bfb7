package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/latchauth/latch/core"
)

// Store is an in-memory core.CredentialStore. It enforces the same email and
// name uniqueness a relational backend would, which also makes it the
// reference double for service tests.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account // by ID
	byEmail  map[string]string        // email -> ID
	byName   map[string]string        // name -> ID

	clock clockwork.Clock
}

var _ core.CredentialStore = (*Store)(nil)

func New() *Store {
	return NewWithClock(clockwork.NewRealClock())
}

// NewWithClock lets tests pin timestamps.
func NewWithClock(clock clockwork.Clock) *Store {
	return &Store{
		accounts: make(map[string]*core.Account),
		byEmail:  make(map[string]string),
		byName:   make(map[string]string),
		clock:    clock,
	}
}

func (s *Store) Create(ctx context.Context, account *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account.Name == "" {
		account.Name = core.DefaultName(account.Email)
	}

	if _, taken := s.byEmail[account.Email]; taken {
		return &core.ConflictError{Field: "email"}
	}
	if _, taken := s.byName[account.Name]; taken {
		return &core.ConflictError{Field: "name"}
	}

	account.ID = uuid.NewString()
	now := s.clock.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	s.accounts[account.ID] = clone(account)
	s.byEmail[account.Email] = account.ID
	s.byName[account.Name] = account.ID
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return clone(s.accounts[id]), nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return clone(account), nil
}

func (s *Store) Save(ctx context.Context, account *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[account.ID]
	if !ok {
		return core.ErrAccountNotFound
	}

	if id, taken := s.byEmail[account.Email]; taken && id != account.ID {
		return &core.ConflictError{Field: "email"}
	}
	if id, taken := s.byName[account.Name]; taken && id != account.ID {
		return &core.ConflictError{Field: "name"}
	}

	delete(s.byEmail, current.Email)
	delete(s.byName, current.Name)

	account.UpdatedAt = s.clock.Now()
	s.accounts[account.ID] = clone(account)
	s.byEmail[account.Email] = account.ID
	s.byName[account.Name] = account.ID
	return nil
}

// clone keeps callers from mutating stored state through shared pointers or
// byte slices.
func clone(a *core.Account) *core.Account {
	copied := *a
	copied.PasswordHash = append([]byte(nil), a.PasswordHash...)
	copied.PasswordSalt = append([]byte(nil), a.PasswordSalt...)
	return &copied
}
