// ABOUTME: Session model for per-session biometric tables in the coach dashboard.
// ABOUTME: A session pairs a name and seed with the table generated for it.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one simulated batch of per-day biometric samples.
type Session struct {
	ID          uuid.UUID
	Name        string
	Seed        uint64
	GeneratedAt time.Time
	Table       *Table
}

// NewSession creates a Session with a generated UUID and current timestamp.
func NewSession(name string, seed uint64) *Session {
	return &Session{
		ID:          uuid.New(),
		Name:        name,
		Seed:        seed,
		GeneratedAt: time.Now(),
	}
}

// WithTable attaches the generated table.
func (s *Session) WithTable(t *Table) *Session {
	s.Table = t
	return s
}

// WithGeneratedAt sets a custom generation timestamp.
func (s *Session) WithGeneratedAt(t time.Time) *Session {
	s.GeneratedAt = t
	return s
}
