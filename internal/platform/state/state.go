// Package state encodes collections and counters as the string values kept
// under a single key of the key-value store.
package state

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "planr/internal/platform/errors"
)

// DecodeList treats an empty value as an empty list. Anything that is not a
// JSON array of T wraps ErrCorruptState.
func DecodeList[T any](key, raw string) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptState, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func EncodeList[T any](key string, items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return string(payload), nil
}

// ParseCounter reads a last-issued identifier. Missing counters start at zero.
func ParseCounter(key, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: decode %s: %v", apperrors.ErrCorruptState, key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: decode %s: negative counter %d", apperrors.ErrCorruptState, key, n)
	}
	return n, nil
}

func FormatCounter(n int) string {
	return strconv.Itoa(n)
}
