package repository

import (
	"context"
	"sync"

	"snapurl_admin/internal/domain/model"
)

// memoryNotificationRepository backs tests and single-node development runs.
type memoryNotificationRepository struct {
	mu    sync.Mutex
	byUID map[string][]model.Notification // newest first
}

func NewMemoryNotificationRepository() NotificationRepository {
	return &memoryNotificationRepository{byUID: make(map[string][]model.Notification)}
}

func (r *memoryNotificationRepository) Add(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append([]model.Notification{*n}, r.byUID[n.UserID]...)
	if len(list) > model.NotificationCap {
		list = list[:model.NotificationCap]
	}
	r.byUID[n.UserID] = list
	return nil
}

func (r *memoryNotificationRepository) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byUID[userID]
	out := make([]model.Notification, len(list))
	copy(out, list)
	return out, nil
}

func (r *memoryNotificationRepository) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byUID[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
		}
	}
	return nil
}

func (r *memoryNotificationRepository) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byUID[userID]
	for i := range list {
		list[i].Read = true
	}
	return nil
}

func (r *memoryNotificationRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUID, userID)
	return nil
}

// memoryClientState is the in-memory ClientStateStore used by tests.
type memoryClientState struct {
	mu     sync.Mutex
	tokens map[string]string
	themes map[string]string
}

func NewMemoryClientStateStore() ClientStateStore {
	return &memoryClientState{tokens: make(map[string]string), themes: make(map[string]string)}
}

func (s *memoryClientState) SaveToken(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sid] = token
	return nil
}

func (s *memoryClientState) LoadToken(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[sid]
	if !ok {
		return "", ErrNoToken
	}
	return tok, nil
}

func (s *memoryClientState) DeleteToken(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sid)
	return nil
}

func (s *memoryClientState) SaveTheme(_ context.Context, userID, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[userID] = theme
	return nil
}

func (s *memoryClientState) LoadTheme(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.themes[userID], nil
}
