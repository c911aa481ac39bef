// ABOUTME: Tests for the Session model.
// ABOUTME: Validates constructor and builder methods.
package models

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	s := NewSession("Sessione 1", 42)

	if s.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if s.Name != "Sessione 1" {
		t.Errorf("Name = %s, want Sessione 1", s.Name)
	}
	if s.Seed != 42 {
		t.Errorf("Seed = %d, want 42", s.Seed)
	}
	if s.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestSessionBuilders(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tbl := &Table{DateColumn: DefaultDateColumn}

	s := NewSession("Sessione 2", 7).WithTable(tbl).WithGeneratedAt(at)

	if s.Table != tbl {
		t.Error("expected Table to be attached")
	}
	if !s.GeneratedAt.Equal(at) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, at)
	}
}
