package transcript

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(nil))
	assert.Equal(t, "", Normalize(json.RawMessage{}))
}

func TestNormalizeString(t *testing.T) {
	raw := json.RawMessage(`"user: I need 50 laptops"`)
	assert.Equal(t, "user: I need 50 laptops", Normalize(raw))
}

func TestNormalizeTurnList(t *testing.T) {
	raw := json.RawMessage(`[
		{"role": "system", "content": "You are Amy"},
		{"role": "user", "content": "I need 50 laptops"},
		{"role": "agent", "content": "Let me check inventory"},
		{"role": "user", "content": ""}
	]`)
	assert.Equal(t, "user: I need 50 laptops\nagent: Let me check inventory", Normalize(raw))
}

func TestNormalizeDropsSystemCaseInsensitive(t *testing.T) {
	raw := json.RawMessage(`[
		{"role": "System", "content": "hidden"},
		{"role": "SYSTEM", "content": "also hidden"},
		{"role": "user", "content": "hello"}
	]`)
	assert.Equal(t, "user: hello", Normalize(raw))
}

func TestNormalizeDeduplicatesFirstSeenOrder(t *testing.T) {
	raw := json.RawMessage(`[
		{"role": "user", "content": "hello"},
		{"role": "agent", "content": "hi there"},
		{"role": "user", "content": "hello"},
		{"role": "user", "content": "bye"},
		{"role": "agent", "content": "hi there"}
	]`)
	assert.Equal(t, "user: hello\nagent: hi there\nuser: bye", Normalize(raw))
}

func TestNormalizeFieldFallbacks(t *testing.T) {
	raw := json.RawMessage(`[
		{"sender": "caller", "text": "is the 9500 in stock"},
		{"message": "checking now"}
	]`)
	assert.Equal(t, "caller: is the 9500 in stock\nunknown: checking now", Normalize(raw))
}

func TestNormalizeContentPrecedence(t *testing.T) {
	raw := json.RawMessage(`[{"role": "user", "content": "primary", "text": "secondary", "message": "tertiary"}]`)
	assert.Equal(t, "user: primary", Normalize(raw))
}

func TestNormalizeOpaqueObject(t *testing.T) {
	raw := json.RawMessage(`{"speech": "hello", "duration": 12}`)
	out := Normalize(raw)
	assert.Contains(t, out, `"speech":"hello"`)
	assert.Contains(t, out, `"duration":12`)
}

func TestNormalizeGarbage(t *testing.T) {
	assert.Equal(t, "", Normalize(json.RawMessage(`{not json`)))
}
