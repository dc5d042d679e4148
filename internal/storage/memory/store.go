// Package memory provides a process-local repository factory guarded by a
// single RWMutex. It is used for development runs and usecase tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// Store keeps every aggregate in maps keyed by id.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	state state
}

type state struct {
	nextID map[string]int64

	accounts     map[int64]model.Account
	listings     map[int64]model.Listing
	sessions     map[int64]model.NegotiationSession
	orders       map[int64]model.Order
	reviews      map[int64]model.Review
	reviewByOrd  map[int64]int64
	loginToID    map[string]int64
	sessionByKey map[sessionKey]int64
}

type sessionKey struct {
	listingID int64
	buyerID   int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		now: func() time.Time { return time.Now().UTC() },
		state: state{
			nextID:       make(map[string]int64),
			accounts:     make(map[int64]model.Account),
			listings:     make(map[int64]model.Listing),
			sessions:     make(map[int64]model.NegotiationSession),
			orders:       make(map[int64]model.Order),
			reviews:      make(map[int64]model.Review),
			reviewByOrd:  make(map[int64]int64),
			loginToID:    make(map[string]int64),
			sessionByKey: make(map[sessionKey]int64),
		},
	}
}

var _ repository.Factory = (*Store)(nil)

func (s *Store) Accounts() repository.AccountRepository         { return &accountRepository{store: s} }
func (s *Store) Listings() repository.ListingRepository         { return &listingRepository{store: s} }
func (s *Store) Negotiations() repository.NegotiationRepository { return &negotiationRepository{store: s} }
func (s *Store) Orders() repository.OrderRepository             { return &orderRepository{store: s} }
func (s *Store) Reviews() repository.ReviewRepository           { return &reviewRepository{store: s} }

// HealthCheck always succeeds for the in-memory driver.
func (s *Store) HealthCheck(context.Context) error { return nil }

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (s *Store) rlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RLock()
	}
}

func (s *Store) runlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RUnlock()
	}
}

func (s *Store) wlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Lock()
	}
}

func (s *Store) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Unlock()
	}
}

// WithinTransaction holds the write lock for the duration of fn and restores
// the previous state if fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) id(kind string) int64 {
	s.state.nextID[kind]++
	return s.state.nextID[kind]
}

func (st state) clone() state {
	return state{
		nextID:       cloneMap(st.nextID),
		accounts:     cloneMap(st.accounts),
		listings:     cloneMap(st.listings),
		sessions:     cloneMap(st.sessions),
		orders:       cloneMap(st.orders),
		reviews:      cloneMap(st.reviews),
		reviewByOrd:  cloneMap(st.reviewByOrd),
		loginToID:    cloneMap(st.loginToID),
		sessionByKey: cloneMap(st.sessionByKey),
	}
}

// Stored values are never mutated in place, so copying the map is enough.
func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --- AccountRepository implementation ---

type accountRepository struct{ store *Store }

func (r *accountRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Account, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)

	key := strings.ToLower(login)
	if _, exists := r.store.state.loginToID[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	acc := model.Account{
		ID:           r.store.id("account"),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    r.store.now(),
	}
	r.store.state.accounts[acc.ID] = acc
	r.store.state.loginToID[key] = acc.ID
	return &acc, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	id, ok := r.store.state.loginToID[strings.ToLower(login)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	acc := r.store.state.accounts[id]
	return &acc, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)

	acc, ok := r.store.state.accounts[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &acc, nil
}
