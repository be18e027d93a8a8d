package idgen

import (
	"strings"
	"testing"
)

func TestNewPostID(t *testing.T) {
	id, err := NewPostID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(id, PostPrefix) {
		t.Errorf("expected prefix %q, got %q", PostPrefix, id)
	}
	if len(id) != len(PostPrefix)+Length {
		t.Errorf("expected length %d, got %d (%q)", len(PostPrefix)+Length, len(id), id)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate(CampaignPrefix)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	id, err := Generate("x-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range strings.TrimPrefix(id, "x-") {
		if !strings.ContainsRune(Alphabet, r) {
			t.Fatalf("ID %q contains character %q outside the alphabet", id, r)
		}
	}
}
