// Package memory implements the repository interfaces in process memory.
// It backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

// Store keeps users, suggestions and credentials in maps guarded by one mutex.
// Suggestions are indexed by participant so per-user lookups do not scan.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	userOrder    []string
	dates        map[string]models.DateSuggestion
	byUser       map[string]map[string]struct{}
	credsByEmail map[string]models.Credential
}

var _ repository.Store = (*Store)(nil)

// New creates an empty store
func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		dates:        make(map[string]models.DateSuggestion),
		byUser:       make(map[string]map[string]struct{}),
		credsByEmail: make(map[string]models.Credential),
	}
}

// Close is a no-op
func (s *Store) Close(_ context.Context) error {
	return nil
}

// CreateUser stores a new user
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("failed to create user: %w", repository.ErrConflict)
	}
	s.users[user.ID] = cloneUser(*user)
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	out := cloneUser(user)
	return &out, nil
}

// UpdateUser applies a patch to an existing user
func (s *Store) UpdateUser(_ context.Context, id string, patch repository.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	patch.Apply(&user)
	s.users[id] = user
	return nil
}

// DeleteUser removes a user
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user not found: %w", repository.ErrNotFound)
	}
	delete(s.users, id)
	for i, uid := range s.userOrder {
		if uid == id {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ListUserIDs returns user ids in insertion order
func (s *Store) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.userOrder...), nil
}

// CreateDate stores a new suggestion
func (s *Store) CreateDate(_ context.Context, date *models.DateSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dates[date.ID]; exists {
		return fmt.Errorf("failed to create date: %w", repository.ErrConflict)
	}
	s.dates[date.ID] = *date
	s.index(*date)
	return nil
}

// GetDate retrieves a suggestion by ID
func (s *Store) GetDate(_ context.Context, id string) (*models.DateSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	date, ok := s.dates[id]
	if !ok {
		return nil, fmt.Errorf("date not found: %w", repository.ErrNotFound)
	}
	return &date, nil
}

// UpdateDate applies a patch to an existing suggestion and reindexes it
func (s *Store) UpdateDate(_ context.Context, id string, patch repository.DatePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, ok := s.dates[id]
	if !ok {
		return fmt.Errorf("date not found: %w", repository.ErrNotFound)
	}
	s.unindex(date)
	patch.Apply(&date)
	s.dates[id] = date
	s.index(date)
	return nil
}

// DeleteDate removes a suggestion
func (s *Store) DeleteDate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, ok := s.dates[id]
	if !ok {
		return fmt.Errorf("date not found: %w", repository.ErrNotFound)
	}
	s.unindex(date)
	delete(s.dates, id)
	return nil
}

// ListDatesByUser reads the participant index
func (s *Store) ListDatesByUser(_ context.Context, userID string, status *models.Status) ([]*models.DateSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]*models.DateSuggestion, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		date := s.dates[id]
		if status != nil && date.Status != *status {
			continue
		}
		dates = append(dates, &date)
	}
	return dates, nil
}

// PairExists checks the participant index of a for a suggestion with b
func (s *Store) PairExists(_ context.Context, a, b string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id := range s.byUser[a] {
		date := s.dates[id]
		if date.HasParticipant(b) {
			return true, nil
		}
	}
	return false, nil
}

// CreateCredential stores login data; emails are unique case-insensitively
func (s *Store) CreateCredential(_ context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(cred.Email)
	if _, exists := s.credsByEmail[key]; exists {
		return fmt.Errorf("email already registered: %w", repository.ErrConflict)
	}
	s.credsByEmail[key] = *cred
	return nil
}

// GetCredentialByEmail retrieves login data by email
func (s *Store) GetCredentialByEmail(_ context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.credsByEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("credential not found: %w", repository.ErrNotFound)
	}
	return &cred, nil
}

// DeleteCredential removes login data of a user
func (s *Store) DeleteCredential(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, cred := range s.credsByEmail {
		if cred.UserID == userID {
			delete(s.credsByEmail, key)
			return nil
		}
	}
	return fmt.Errorf("credential not found: %w", repository.ErrNotFound)
}

// index must be called with the write lock held
func (s *Store) index(date models.DateSuggestion) {
	for _, uid := range date.Participants() {
		ids, ok := s.byUser[uid]
		if !ok {
			ids = make(map[string]struct{})
			s.byUser[uid] = ids
		}
		ids[date.ID] = struct{}{}
	}
}

// unindex must be called with the write lock held
func (s *Store) unindex(date models.DateSuggestion) {
	for _, uid := range date.Participants() {
		delete(s.byUser[uid], date.ID)
		if len(s.byUser[uid]) == 0 {
			delete(s.byUser, uid)
		}
	}
}

func cloneUser(u models.User) models.User {
	u.Interests = repository.CopyStrings(u.Interests)
	u.Preferences = repository.CopyStrings(u.Preferences)
	u.PhotoURLs = repository.CopyStrings(u.PhotoURLs)
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	if u.PushToken != nil {
		token := *u.PushToken
		u.PushToken = &token
	}
	return u
}
