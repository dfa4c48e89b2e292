package core

import (
	"sync"

	"github.com/google/uuid"

	"risk_service/internal/domain/model"
)

type selectionEntry struct {
	token string
	state string
	res   *model.Resolution
}

// SelectionStore tracks the single active selection per client through the
// Closed → Loading → {Loaded | LoadedWithFallback} → Closed lifecycle.
// Every Begin issues a fresh token; a Complete carrying a stale token is
// discarded, so overlapping clicks can never clobber a newer selection with
// an older result.
type SelectionStore struct {
	mu       sync.Mutex
	byClient map[string]*selectionEntry
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{byClient: make(map[string]*selectionEntry)}
}

// Begin moves the client to Loading and returns the request token.
// Any previous selection is replaced wholesale.
func (s *SelectionStore) Begin(clientID string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.byClient[clientID] = &selectionEntry{token: token, state: model.StateLoading}
	s.mu.Unlock()
	return token
}

// Complete stores the resolution if the token still identifies the client's
// current selection. Returns false when the token went stale.
func (s *SelectionStore) Complete(clientID, token string, res *model.Resolution) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byClient[clientID]
	if !ok || entry.token != token {
		return false
	}
	entry.state = res.State
	entry.res = res
	return true
}

// Get returns the client's current resolution and state. ok is false when
// the selection is closed. A Loading selection has a nil resolution.
func (s *SelectionStore) Get(clientID string) (res *model.Resolution, state string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, found := s.byClient[clientID]
	if !found {
		return nil, "", false
	}
	return entry.res, entry.state, true
}

// Clear moves the client back to Closed, dropping all held state. A resolve
// still in flight for this client will find its token stale and be
// discarded.
func (s *SelectionStore) Clear(clientID string) {
	s.mu.Lock()
	delete(s.byClient, clientID)
	s.mu.Unlock()
}
