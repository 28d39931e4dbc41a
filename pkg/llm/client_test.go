package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edu-counsel-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) Client {
	return NewClient(config.LLMConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		TimeoutSeconds: 5,
	})
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Hello, student!"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	answer, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Hello, student!", answer)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestCompleteNonOKStatusReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)

	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "upstream exploded", statusErr.Body)
	assert.Equal(t, "API error: 500", statusErr.Error())
}

func TestCompleteEmptyChoicesIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil)

	assert.Error(t, err)
}

func TestCompletePassesGenerationParams(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	temperature := 0.1
	maxTokens := 1000
	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}},
		&GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens})

	require.NoError(t, err)
	assert.Equal(t, 0.1, gotBody["temperature"])
	assert.Equal(t, float64(1000), gotBody["max_tokens"])
	_, hasTopP := gotBody["top_p"]
	assert.False(t, hasTopP)
}

func TestExtractJSONFromProseWrappedText(t *testing.T) {
	text := "Here is the extracted data:\n```json\n{\"budget\": 15000, \"preferred_program\": \"postgraduate\"}\n```\nLet me know if you need more."

	result, err := ExtractJSON(text)

	require.NoError(t, err)
	assert.Equal(t, float64(15000), result["budget"])
	assert.Equal(t, "postgraduate", result["preferred_program"])
}

func TestExtractJSONSpanEquivalence(t *testing.T) {
	pure := `{"budget": 15000}`
	wrapped := "noise before " + pure + " noise after"

	fromPure, err := ExtractJSON(pure)
	require.NoError(t, err)
	fromWrapped, err := ExtractJSON(wrapped)
	require.NoError(t, err)

	assert.Equal(t, fromPure, fromWrapped)
}

func TestExtractJSONNoBraceReturnsParseError(t *testing.T) {
	_, err := ExtractJSON("no json here at all")

	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "no json here at all", parseErr.Raw)
}

func TestExtractJSONUnparseableReturnsParseError(t *testing.T) {
	_, err := ExtractJSON("{this is not valid json}")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
