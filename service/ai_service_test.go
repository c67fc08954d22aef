package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAIService_DisabledUsesFallback(t *testing.T) {
	ai := NewAIService(AIConfig{}, zaptest.NewLogger(t))
	in := referenceInputs()
	scenarios, insights := BuildProjection(in)

	summary := ai.Summarize(context.Background(), in, scenarios, insights)

	assert.Contains(t, summary, "saas product generates $21834 in revenue")
	assert.Contains(t, summary, "break-even not within 12 months")
	assert.Contains(t, summary, "LTV:CAC ratio of 1.94")
	assert.Contains(t, summary, "Top priority: "+recommendLTVCAC)
}

func TestAIService_CallsCompletionsEndpoint(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Looks promising.  "}}]}`))
	}))
	defer server.Close()

	ai := NewAIService(AIConfig{APIKey: "test-key", APIURL: server.URL, Model: "test-model"}, zaptest.NewLogger(t))
	in := profitableInputs()
	scenarios, insights := BuildProjection(in)

	summary := ai.Summarize(context.Background(), in, scenarios, insights)

	assert.Equal(t, "Looks promising.", summary)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "Break-even: month 3")
}

func TestAIService_APIErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ai := NewAIService(AIConfig{APIKey: "test-key", APIURL: server.URL}, zaptest.NewLogger(t))
	in := profitableInputs()
	scenarios, insights := BuildProjection(in)

	summary := ai.Summarize(context.Background(), in, scenarios, insights)

	assert.Contains(t, summary, "break-even month 3")
}

func TestAIService_EmptyChoicesFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	ai := NewAIService(AIConfig{APIKey: "test-key", APIURL: server.URL}, zaptest.NewLogger(t))
	in := profitableInputs()
	scenarios, insights := BuildProjection(in)

	summary := ai.Summarize(context.Background(), in, scenarios, insights)

	assert.True(t, strings.HasPrefix(summary, "In the realistic scenario"))
}

func TestCompletionClient_ReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newCompletionClient(AIConfig{APIKey: "k", APIURL: server.URL, Model: "m", Timeout: time.Second})
	_, err := c.complete(context.Background(), "system", "user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad key")
}
