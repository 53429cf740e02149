package state_test

import (
	"errors"
	"testing"

	apperrors "planr/internal/platform/errors"
	"planr/internal/platform/state"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeListEmptyValues(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "  ", "null", "[]"} {
		items, err := state.DecodeList[item]("k", raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil list for %q, got %#v", raw, items)
		}
	}
}

func TestDecodeListCorrupt(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"{", `{"id":1}`, `[{"id":"x"}]`} {
		if _, err := state.DecodeList[item]("goals", raw); !errors.Is(err, apperrors.ErrCorruptState) {
			t.Fatalf("expected corrupt state for %q, got %v", raw, err)
		}
	}
}

func TestEncodeListNilIsArray(t *testing.T) {
	t.Parallel()
	raw, err := state.EncodeList[item]("k", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestCounter(t *testing.T) {
	t.Parallel()
	if n, err := state.ParseCounter("goals.lastId", ""); err != nil || n != 0 {
		t.Fatalf("expected 0 for missing counter, got %d %v", n, err)
	}
	if n, err := state.ParseCounter("goals.lastId", state.FormatCounter(41)); err != nil || n != 41 {
		t.Fatalf("expected 41, got %d %v", n, err)
	}
	if _, err := state.ParseCounter("goals.lastId", "abc"); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected corrupt counter, got %v", err)
	}
	if _, err := state.ParseCounter("goals.lastId", "-2"); !errors.Is(err, apperrors.ErrCorruptState) {
		t.Fatalf("expected negative counter to be corrupt, got %v", err)
	}
}
