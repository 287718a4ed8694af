// Package language provides translation and romanization for transcripts,
// backed by LLM vendors with an optional shared result cache.
package language

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/utils"
)

const (
	defaultChatModel = openai.GPT3Dot5Turbo
	defaultCacheTTL  = 24 * time.Hour
)

// ResultCache is the slice of the cache the language services need. A nil
// value disables caching.
type ResultCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const translatorSystemPrompt = "You translate short passages for language learners. " +
	"Reply with the translation only, no commentary."

// TranslatorConfig carries the chat-completion knobs.
type TranslatorConfig struct {
	Model    string
	CacheTTL time.Duration
}

// Translator renders text into a target language through the OpenAI chat API.
type Translator struct {
	client *openai.Client
	cache  ResultCache
	logger *zap.Logger
	cfg    TranslatorConfig
}

// NewTranslator creates a translator. Zero config fields fall back to the
// defaults; cache may be nil.
func NewTranslator(client *openai.Client, cache ResultCache, logger *zap.Logger, cfg TranslatorConfig) *Translator {
	if cfg.Model == "" {
		cfg.Model = defaultChatModel
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Translator{client: client, cache: cache, logger: logger, cfg: cfg}
}

// Translate renders text into targetLanguage, a BCP-47 tag or plain language
// name. Identical requests within the cache TTL skip the vendor call.
func (t *Translator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.New("nothing to translate")
	}
	if targetLanguage == "" {
		return "", apperrors.New("target language is required")
	}

	key := "translate:" + utils.HashStrings("translate", text, targetLanguage)
	if t.cache != nil {
		if cached, ok := t.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translatorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Translate into %s:\n\n%s", targetLanguage, text)},
		},
	})
	if err != nil {
		return "", apperrors.NewExternalError("translate", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New("translation returned no choices")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if t.cache != nil {
		_ = t.cache.Set(ctx, key, out, t.cfg.CacheTTL)
	}
	return out, nil
}
