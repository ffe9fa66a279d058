package token

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestNewOpaqueLengthAndEncoding(t *testing.T) {
	value, err := NewOpaque(32)
	if err != nil {
		t.Fatalf("new opaque failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		t.Fatalf("token is not valid base64: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32 random bytes, got %d", len(raw))
	}
}

func TestNewOpaqueUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		value, err := NewOpaque(32)
		if err != nil {
			t.Fatalf("new opaque failed: %v", err)
		}
		if seen[value] {
			t.Fatalf("duplicate token generated: %s", value)
		}
		seen[value] = true
	}
}

func TestNewOpaqueRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewOpaque(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}
