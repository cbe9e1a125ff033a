package id

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
	if !Valid(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		strings.Repeat("g", 32),
		"deadbeef",
		strings.Repeat("a", 33),
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
	} {
		if Valid(s) {
			t.Fatalf("Valid(%q) = true", s)
		}
	}
	if !Valid(strings.Repeat("0", 32)) {
		t.Fatal("zero id rejected")
	}
}
