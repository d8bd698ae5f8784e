package rules

import (
	"context"
	"fmt"
	"sync"
)

// Store persists user rules and soft-deletions of builtin rules. The engine
// only reads through it; mutations come from the rules handlers.
type Store interface {
	ListUserRules(ctx context.Context) ([]Rule, error)
	AddUserRule(ctx context.Context, r Rule) error
	RemoveUserRule(ctx context.Context, id string) error

	// Exclusions lists builtin rule ids that were soft-deleted.
	Exclusions(ctx context.Context) ([]string, error)
	Exclude(ctx context.Context, builtinID string) error
	Restore(ctx context.Context, builtinID string) error
}

// MemoryStore keeps rules in process memory. Used by tests and as a
// fallback when the service runs without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	rules    []Rule
	excluded map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{excluded: make(map[string]struct{})}
}

func (s *MemoryStore) ListUserRules(ctx context.Context) ([]Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

func (s *MemoryStore) AddUserRule(ctx context.Context, r Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rules {
		if existing.ID == r.ID {
			return fmt.Errorf("rule %s already exists", r.ID)
		}
	}
	s.rules = append(s.rules, r)
	return nil
}

func (s *MemoryStore) RemoveUserRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rules {
		if r.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("rule %s not found", id)
}

func (s *MemoryStore) Exclusions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.excluded))
	for id := range s.excluded {
		out = append(out, id)
	}
	return out, nil
}

func (s *MemoryStore) Exclude(ctx context.Context, builtinID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded[builtinID] = struct{}{}
	return nil
}

func (s *MemoryStore) Restore(ctx context.Context, builtinID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.excluded, builtinID)
	return nil
}
