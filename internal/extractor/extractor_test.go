package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-intake-go/internal/config"
)

func testClient(apiURL string) *Client {
	cfg := &config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIAPIURL:  apiURL,
		OpenAIModel:   "gpt-4o-mini",
		InternalInbox: "review@example.com",
	}
	c := New(cfg)
	c.retryBudget = 200 * time.Millisecond
	return c
}

func completionResponse(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestAnalyzeParsesLead(t *testing.T) {
	lead := map[string]any{
		"lead_name":            "Jane Doe",
		"lead_email":           "jane@example.com",
		"lead_phone":           "555-0199",
		"inquiry_type":         "Hardware Procurement",
		"pain_points":          []string{"aging switches"},
		"current_setup":        "on-prem campus",
		"qualification_status": "Qualified",
		"budget_timeline":      "200k, Q2",
		"blockers":             []string{},
		"next_steps":           []string{"send comparison"},
		"summary":              "Campus refresh.",
		"follow_up_email":      "<p>Hi Jane</p>",
	}
	leadJSON, _ := json.Marshal(lead)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.EqualValues(t, 0.1, req["temperature"])

		fmt.Fprint(w, completionResponse(string(leadJSON)))
	}))
	defer srv.Close()

	got := testClient(srv.URL).Analyze(context.Background(), "user: I need 50 laptops for the new office next quarter")
	assert.Equal(t, "Jane Doe", got.LeadName)
	assert.Equal(t, "jane@example.com", got.LeadEmail)
	assert.Equal(t, "Qualified", got.QualificationStatus)
	assert.Equal(t, []string{"send comparison"}, got.NextSteps)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse("```json\n{\"lead_name\": \"Jane\"}\n```"))
	}))
	defer srv.Close()

	got := testClient(srv.URL).Analyze(context.Background(), "transcript")
	assert.Equal(t, "Jane", got.LeadName)
}

func TestAnalyzeFallbackOnClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	got := testClient(srv.URL).Analyze(context.Background(), "transcript")
	assert.Equal(t, QualificationNeedsReview, got.QualificationStatus)
	assert.Equal(t, "review@example.com", got.LeadEmail)
}

func TestAnalyzeFallbackOnUnparseableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse("sorry, I cannot help with that"))
	}))
	defer srv.Close()

	got := testClient(srv.URL).Analyze(context.Background(), "transcript")
	assert.Equal(t, QualificationNeedsReview, got.QualificationStatus)
}

func TestAnalyzeFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := testClient(srv.URL).Analyze(context.Background(), "transcript")
	assert.Equal(t, QualificationNeedsReview, got.QualificationStatus)
}

func TestAnalyzeFallbackWithoutKey(t *testing.T) {
	c := New(&config.Config{InternalInbox: "review@example.com"})
	got := c.Analyze(context.Background(), "transcript")
	assert.Equal(t, QualificationNeedsReview, got.QualificationStatus)
	assert.Equal(t, "review@example.com", got.LeadEmail)
}

func TestFallbackLeadShape(t *testing.T) {
	lead := FallbackLead("review@example.com")
	assert.Equal(t, "review@example.com", lead.LeadEmail)
	assert.Equal(t, QualificationNeedsReview, lead.QualificationStatus)
	assert.NotEmpty(t, lead.Summary)
	assert.NotEmpty(t, lead.FollowUpEmail)
	assert.NotEmpty(t, lead.NextSteps)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"prefix {\"a\": {\"b\": 2}} suffix", `{"a": {"b": 2}}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"s": "brace } inside"}`, `{"s": "brace } inside"}`},
		{"no json here", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractJSON(tc.in), "input: %q", tc.in)
	}
}
