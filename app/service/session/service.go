package session

import (
	"slices"
	"sync"

	"tourplan/app/service/conversation"
	"tourplan/app/service/prefs"

	"github.com/samber/do"
)

type state struct {
	messages    []conversation.Message
	preferences prefs.Record
}

// Service owns the per-session transcript and accumulated preference
// record. The conversation core is stateless; this is the only place
// chat state lives, keyed by session ID so sessions never share
// mutable structures.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*state
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		sessions: make(map[string]*state),
	}, nil
}

// History returns a copy of the session transcript, oldest first.
func (s *Service) History(id string) []conversation.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}

	return slices.Clone(sess.messages)
}

// Preferences returns the accumulated record for the session.
func (s *Service) Preferences(id string) prefs.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return prefs.Record{}
	}

	return sess.preferences
}

// CommitTurn appends the user and assistant messages of a finished
// turn and stores the merged preference record.
func (s *Service) CommitTurn(id, userText, assistantText string, preferences prefs.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &state{}
		s.sessions[id] = sess
	}

	sess.messages = append(sess.messages,
		conversation.Message{Role: conversation.RoleUser, Content: userText},
		conversation.Message{Role: conversation.RoleAssistant, Content: assistantText},
	)
	sess.preferences = preferences
}

// Clear discards the transcript and preferences of a session.
func (s *Service) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}
