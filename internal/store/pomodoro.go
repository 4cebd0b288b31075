package store

import (
	"encoding/json"
	"fmt"
	"time"
)

func (s *Store) loadSessions() ([]PomodoroSession, error) {
	data, err := s.readBlob(keySessions)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var sessions []PomodoroSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

// AddSession appends one completed focus or break interval to the log.
// Sessions are immutable once written.
func (s *Store) AddSession(ns NewSession) (*PomodoroSession, error) {
	if ns.Duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %d", ns.Duration)
	}
	if ns.Type != SessionFocus && ns.Type != SessionBreak {
		return nil, fmt.Errorf("unknown session type %q", ns.Type)
	}

	sessions, err := s.loadSessions()
	if err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}

	sess := PomodoroSession{
		ID:          s.nextID(),
		TaskID:      ns.TaskID,
		Duration:    ns.Duration,
		Type:        ns.Type,
		CompletedAt: time.Now().UTC(),
	}
	sessions = append(sessions, sess)
	if err := s.writeBlob(keySessions, sessions); err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns every recorded session. Soft-fails to empty.
func (s *Store) ListSessions() []PomodoroSession {
	sessions, err := s.loadSessions()
	if err != nil {
		s.log.Error("list sessions", "err", err)
		return nil
	}
	return sessions
}
