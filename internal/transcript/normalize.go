package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// turn is one utterance in a structured transcript. Platforms disagree on
// field names, so role and content each have a fallback chain.
type turn struct {
	Role    string `json:"role"`
	Sender  string `json:"sender"`
	Content string `json:"content"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

func (t turn) role() string {
	if t.Role != "" {
		return t.Role
	}
	if t.Sender != "" {
		return t.Sender
	}
	return "unknown"
}

func (t turn) content() string {
	if t.Content != "" {
		return t.Content
	}
	if t.Text != "" {
		return t.Text
	}
	return t.Message
}

// Normalize converts a raw transcript payload of unknown shape into one
// line-oriented text block. It resolves the shape exactly once: absent,
// plain string, ordered turn list, or opaque object (serialized as-is).
// The worst case is an empty string, never an error.
func Normalize(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var turns []turn
	if err := json.Unmarshal(raw, &turns); err == nil {
		return renderTurns(turns)
	}

	// Opaque object: keep whatever we got, compacted.
	var obj any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(out)
}

// renderTurns drops system and empty turns, renders "role: content" lines
// and removes duplicates keeping first-seen order.
func renderTurns(turns []turn) string {
	seen := make(map[string]struct{}, len(turns))
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := t.role()
		content := t.content()
		if strings.EqualFold(role, "system") || content == "" {
			continue
		}
		line := fmt.Sprintf("%s: %s", role, content)
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
