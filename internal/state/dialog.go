// Package state holds the process-lifetime stores behind the dialog layer:
// wizard states, geo grants, the spin rate window, and pending referral
// attributions. None of it is persisted; a restart forgets it all.
package state

import (
	"sync"

	"github.com/fortunaclub/spinbot/internal/core/domain"
)

// DialogStore maps a chat to its current wizard state. Setting a state
// replaces the previous one, so a chat never stacks wizard steps.
type DialogStore struct {
	mu     sync.Mutex
	states map[int64]domain.DialogState
}

func NewDialogStore() *DialogStore {
	return &DialogStore{states: make(map[int64]domain.DialogState)}
}

// Get returns the current state, Idle when none is set.
func (s *DialogStore) Get(chatID int64) domain.DialogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[chatID]
}

func (s *DialogStore) Set(chatID int64, st domain.DialogState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.Step == domain.StepIdle {
		delete(s.states, chatID)
		return
	}
	s.states[chatID] = st
}

// Reset returns the chat to Idle.
func (s *DialogStore) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
