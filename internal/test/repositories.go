package test

import (
	"context"
	"sync"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	Accounts map[string]*model.Account
	ByID     map[int64]*model.Account
	Next     int64
	Err      error
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		Accounts: make(map[string]*model.Account),
		ByID:     make(map[int64]*model.Account),
		Next:     1,
	}
}

// Create registers an account unless the login is taken or Err is set.
func (s *AccountRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]*model.Account)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Account)
	}
	if _, exists := s.Accounts[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	acc := &model.Account{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Accounts[login] = acc
	s.ByID[acc.ID] = acc
	return acc, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *AccountRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.Accounts[login]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByID[id]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// EventPublisherStub records published events.
type EventPublisherStub struct {
	mu     sync.Mutex
	events []model.Event
}

// Publish stores event.
func (s *EventPublisherStub) Publish(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of everything published so far.
func (s *EventPublisherStub) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Event(nil), s.events...)
}

// Types lists the types of published events in order.
func (s *EventPublisherStub) Types() []model.EventType {
	events := s.Events()
	types := make([]model.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// SenderStub records delivered events and optionally fails them.
type SenderStub struct {
	SendFn func(context.Context, model.Event) error

	mu   sync.Mutex
	sent []model.Event
}

// Send delegates to SendFn and records successful deliveries.
func (s *SenderStub) Send(ctx context.Context, event model.Event) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, event); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, event)
	return nil
}

// Sent returns delivered events.
func (s *SenderStub) Sent() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Event(nil), s.sent...)
}

var _ repository.AccountRepository = (*AccountRepositoryStub)(nil)
