package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList accepts either a bare JSON array or an object wrapping the array under
// key or "data". Anything else is an error.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	for _, k := range []string{key, "data"} {
		if inner, ok := envelope[k]; ok {
			return decodeList[T](inner, key)
		}
	}
	return nil, fmt.Errorf("unexpected list payload: no %q field", key)
}
