package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": {"message": "nope"}}`))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func newTestGateway(url string) *Gateway {
	return New(Config{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, slog.Default())
}

func TestGateway_Classify(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`{"flowerType": "lotus", "message": "peace blooms within"}`)
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "feeling calm tonight")
	require.NoError(t, err)
	assert.Equal(t, "lotus", result.Species)
	assert.Equal(t, "peace blooms within", result.Caption)
}

func TestGateway_Classify_FencedCompletion(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		"```json\n{\"flowerType\": \"rose\", \"message\": \"love grows\"}\n```")
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "thinking of you")
	require.NoError(t, err)
	assert.Equal(t, "rose", result.Species)
	assert.Equal(t, "love grows", result.Caption)
}

func TestGateway_Classify_UnknownSpeciesSubstituted(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`{"flowerType": "triffid", "message": "beware"}`)
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, flower.KnownSpecies(result.Species))
	assert.Equal(t, "beware", result.Caption)
}

func TestGateway_Classify_EmptyCaptionEchoesMessage(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`{"flowerType": "rose", "message": ""}`)
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "original words")
	require.NoError(t, err)
	assert.Equal(t, "original words", result.Caption)
}

func TestGateway_Classify_RateLimited(t *testing.T) {
	server := completionServer(t, http.StatusTooManyRequests, "")
	defer server.Close()

	_, err := newTestGateway(server.URL).Classify(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGateway_Classify_QuotaExceeded(t *testing.T) {
	server := completionServer(t, http.StatusPaymentRequired, "")
	defer server.Close()

	_, err := newTestGateway(server.URL).Classify(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestGateway_Classify_ServerErrorFallsBack(t *testing.T) {
	server := completionServer(t, http.StatusInternalServerError, "")
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, flower.KnownSpecies(result.Species))
	assert.Equal(t, "hello", result.Caption)
}

func TestGateway_Classify_MalformedCompletionFallsBack(t *testing.T) {
	server := completionServer(t, http.StatusOK, "the garden is nice")
	defer server.Close()

	result, err := newTestGateway(server.URL).Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, flower.KnownSpecies(result.Species))
	assert.Equal(t, "hello", result.Caption)
}

func TestGateway_Classify_NetworkErrorFallsBack(t *testing.T) {
	gateway := New(Config{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1",
		Model:   "test-model",
		Timeout: time.Second,
	}, slog.Default())

	result, err := gateway.Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, flower.KnownSpecies(result.Species))
}

func TestGateway_Classify_NoAPIKeySkipsCall(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	gateway := New(Config{BaseURL: server.URL}, slog.Default())

	result, err := gateway.Classify(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, flower.KnownSpecies(result.Species))
	assert.Equal(t, "hello", result.Caption)
	assert.Equal(t, int64(0), calls.Load())
}

func TestStripFences(t *testing.T) {
	bare := `{"flowerType": "rose"}`
	assert.Equal(t, bare, stripFences(bare))
	assert.Equal(t, bare, stripFences("```json\n"+bare+"\n```"))
	assert.Equal(t, bare, stripFences("```\n"+bare+"\n```"))
	assert.Equal(t, bare, stripFences("  \n"+bare+"\n  "))
}
