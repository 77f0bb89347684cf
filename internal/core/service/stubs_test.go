package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Row store stub
// ---------------------------------------------------------------------------

type stubStore[T any] struct {
	rows      []T
	selectErr error
	writeErr  error
	queries   []ports.Query
	inserted  []T
	updated   []string
	deleted   []string
}

func (s *stubStore[T]) Select(_ context.Context, q ports.Query) ([]T, error) {
	s.queries = append(s.queries, q)
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	return append([]T(nil), s.rows...), nil
}

func (s *stubStore[T]) Insert(_ context.Context, row T) (T, error) {
	if s.writeErr != nil {
		var zero T
		return zero, s.writeErr
	}
	s.inserted = append(s.inserted, row)
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *stubStore[T]) Update(_ context.Context, id string, patch any) (T, error) {
	var zero T
	if s.writeErr != nil {
		return zero, s.writeErr
	}
	row, ok := patch.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected patch %T", patch)
	}
	s.updated = append(s.updated, id)
	return row, nil
}

func (s *stubStore[T]) Delete(_ context.Context, id string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Auth stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	c := cloneUser(user)
	c.ID = "id-" + user.Email
	r.users[c.Email] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubSessions struct {
	sessions map[string]*domain.Session
	ttls     map[string]time.Duration
	saveErr  error
	loads    int
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: make(map[string]*domain.Session), ttls: make(map[string]time.Duration)}
}

func (s *stubSessions) Save(_ context.Context, sess *domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	c := *sess
	s.sessions[sess.ID] = &c
	s.ttls[sess.ID] = ttl
	return nil
}

func (s *stubSessions) Load(_ context.Context, id string, ttl time.Duration) (*domain.Session, error) {
	s.loads++
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s.ttls[id] = ttl
	c := *sess
	return &c, nil
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

var errStoreDown = errors.New("connection refused")
