package language

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
)

// memCache is a map-backed ResultCache for exercising the hit path without
// a Redis server.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (m *memCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.entries[key]
	return val, ok
}

func (m *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func newTestTranslator(t *testing.T, cache ResultCache, handler http.HandlerFunc) *Translator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewTranslator(openai.NewClientWithConfig(cfg), cache, zap.NewNop(), TranslatorConfig{})
}

func chatResponse(content string) string {
	return `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":"` + content + `"},"finish_reason":"stop"}]}`
}

func TestTranslatorTranslates(t *testing.T) {
	translator := newTestTranslator(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("  One iced americano, please.  ")))
	})

	out, err := translator.Translate(context.Background(), "아이스 아메리카노 한 잔 주세요.", "en-US")

	require.NoError(t, err)
	assert.Equal(t, "One iced americano, please.", out)
}

func TestTranslatorUsesCache(t *testing.T) {
	var calls int32
	cache := newMemCache()
	translator := newTestTranslator(t, cache, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("Hello.")))
	})

	first, err := translator.Translate(context.Background(), "こんにちは。", "en-US")
	require.NoError(t, err)
	second, err := translator.Translate(context.Background(), "こんにちは。", "en-US")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call should be served from cache")

	// A different target language is a different cache entry.
	_, err = translator.Translate(context.Background(), "こんにちは。", "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTranslatorValidation(t *testing.T) {
	translator := newTestTranslator(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Error("vendor API must not be called for invalid input")
	})

	_, err := translator.Translate(context.Background(), "   ", "en-US")
	require.Error(t, err)

	_, err = translator.Translate(context.Background(), "text", "")
	require.Error(t, err)
}

func TestTranslatorVendorError(t *testing.T) {
	translator := newTestTranslator(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	})

	_, err := translator.Translate(context.Background(), "こんにちは。", "en-US")

	require.Error(t, err)
	assert.True(t, apperrors.IsExternal(err))
}

func TestTranslatorNoChoices(t *testing.T) {
	translator := newTestTranslator(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo","choices":[]}`))
	})

	_, err := translator.Translate(context.Background(), "こんにちは。", "en-US")
	require.Error(t, err)
}

func newTestRomanizer(t *testing.T, cache ResultCache, handler http.HandlerFunc) *Romanizer {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)

	return NewRomanizer(client, cache, zap.NewNop(), RomanizerConfig{})
}

func geminiResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":"` + text + `"}]},"finishReason":"STOP"}]}`
}

func TestRomanizerRomanizes(t *testing.T) {
	romanizer := newTestRomanizer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"),
			"unexpected path %s", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiResponse("aisu amerikano han jan juseyo")))
	})

	out, err := romanizer.Romanize(context.Background(), "아이스 아메리카노 한 잔 주세요.", "ko-KR")

	require.NoError(t, err)
	assert.Equal(t, "aisu amerikano han jan juseyo", out)
}

func TestRomanizerUsesCache(t *testing.T) {
	var calls int32
	romanizer := newTestRomanizer(t, newMemCache(), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiResponse("konnichiwa")))
	})

	_, err := romanizer.Romanize(context.Background(), "こんにちは。", "ja-JP")
	require.NoError(t, err)
	_, err = romanizer.Romanize(context.Background(), "こんにちは。", "ja-JP")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRomanizerEmptyText(t *testing.T) {
	romanizer := newTestRomanizer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		t.Error("vendor API must not be called for empty input")
	})

	_, err := romanizer.Romanize(context.Background(), "  ", "ja-JP")
	require.Error(t, err)
}

func TestRomanizerVendorError(t *testing.T) {
	romanizer := newTestRomanizer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"model overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := romanizer.Romanize(context.Background(), "こんにちは。", "ja-JP")

	require.Error(t, err)
	assert.True(t, apperrors.IsExternal(err))
}
