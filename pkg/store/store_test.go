package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chats.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegisterFirstWins(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Register(42, "Pachuca de Soto")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got != "Pachuca de Soto" {
		t.Errorf("Register returned %q, want Pachuca de Soto", got)
	}

	// Later attempts keep the original registration.
	got, err = s.Register(42, "Tizayuca")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got != "Pachuca de Soto" {
		t.Errorf("second Register returned %q, want the original", got)
	}
}

func TestGetUnregistered(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get(99)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Errorf("Get = %q, want empty for unregistered chat", got)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Register(7, "Zempoala"); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Reset(7)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !removed {
		t.Error("Reset = false, want true for registered chat")
	}

	removed, err = s.Reset(7)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if removed {
		t.Error("second Reset = true, want false")
	}

	// A fresh registration is possible after reset.
	got, err := s.Register(7, "Tizayuca")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Tizayuca" {
		t.Errorf("Register after reset = %q, want Tizayuca", got)
	}
}

func TestCount(t *testing.T) {
	s := openTestStore(t)
	for i, m := range []string{"Apan", "Actopan", "Apan"} {
		if _, err := s.Register(int64(i), m); err != nil {
			t.Fatal(err)
		}
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}
