// Package normalize reshapes heterogeneous API payloads into the shapes the views consume.
package normalize

import (
	"bytes"
	"encoding/json"

	"proposal-desk/internal/common/logger"
)

// Normalizer reports degraded payloads through its logger and never fails on shape.
type Normalizer struct {
	logger logger.Logger
}

func New(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Normalizer{logger: log}
}

// UnwrapCollection returns the records of a list response. A bare array is used as is; an object is
// probed for pluralKey, then "data", then "items", and the first array-valued field wins. Anything else
// yields an empty collection and warned is true.
func (n *Normalizer) UnwrapCollection(body []byte, pluralKey string) (items []json.RawMessage, warned bool) {
	trimmed := bytes.TrimSpace(body)

	if arr, ok := asArray(trimmed); ok {
		return arr, false
	}

	var obj map[string]json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			keys := []string{"data", "items"}
			if pluralKey != "" {
				keys = append([]string{pluralKey}, keys...)
			}
			for _, key := range keys {
				if arr, ok := asArray(obj[key]); ok {
					return arr, false
				}
			}
		}
	}

	n.logger.Warn("Unexpected collection response shape, treating as empty", map[string]interface{}{
		"collection": pluralKey,
		"preview":    preview(trimmed),
	})
	return []json.RawMessage{}, true
}

// DecodeCollection unwraps body and decodes each record into T. Records that do not decode are
// skipped with a warning.
func DecodeCollection[T any](n *Normalizer, body []byte, pluralKey string) ([]T, bool) {
	raw, warned := n.UnwrapCollection(body, pluralKey)

	out := make([]T, 0, len(raw))
	for i, item := range raw {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			warned = true
			n.logger.Warn("Skipping malformed collection record", map[string]interface{}{
				"collection": pluralKey,
				"index":      i,
				"error":      err.Error(),
			})
			continue
		}
		out = append(out, rec)
	}
	return out, warned
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func preview(body []byte) string {
	const max = 120
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
