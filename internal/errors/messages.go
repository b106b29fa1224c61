package errors

import (
	"encoding/json"
	"sort"
	"strings"
)

// extractMessages pulls human readable messages out of a remote error body.
// The remote answers with {"error": "..."}, {"message": "..."}, {"errors": [...]}
// or a field map {"rating": "must be between 1 and 5"}; plain text bodies are
// returned as a single message.
func extractMessages(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return []string{body}
	}

	for _, key := range []string{"error", "message"} {
		if raw, ok := payload[key]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil && s != "" {
				return []string{s}
			}
		}
	}

	if raw, ok := payload["errors"]; ok {
		var list []string
		if json.Unmarshal(raw, &list) == nil {
			return list
		}
		var fields map[string]string
		if json.Unmarshal(raw, &fields) == nil {
			return fieldMessages(fields)
		}
	}

	fields := make(map[string]string, len(payload))
	for k, raw := range payload {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			fields[k] = s
		}
	}
	return fieldMessages(fields)
}

func fieldMessages(fields map[string]string) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+": "+fields[k])
	}
	return out
}
