package service

import "testing"

func TestNewGeminiServiceRequiresKeys(t *testing.T) {
	if _, err := NewGeminiService(nil, "gemini-1.5-flash"); err == nil {
		t.Fatal("expected error for empty key list")
	}
}

func TestGeminiServiceRotatesKeys(t *testing.T) {
	s, err := NewGeminiService([]string{"key-a", "key-b"}, "gemini-1.5-flash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.rotateAPIKey(); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if s.currentKey != 1 {
		t.Errorf("expected key index 1 after rotation, got %d", s.currentKey)
	}
	if s.generativeModel() == nil {
		t.Error("model must be rebuilt after rotation")
	}

	// Rotation wraps around to the first key.
	if err := s.rotateAPIKey(); err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if s.currentKey != 0 {
		t.Errorf("expected key index to wrap to 0, got %d", s.currentKey)
	}
}
