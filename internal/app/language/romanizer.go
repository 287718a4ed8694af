package language

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/utils"
)

const defaultRomanizerModel = "gemini-2.0-flash"

// RomanizerConfig carries the Gemini generation knobs.
type RomanizerConfig struct {
	Model    string
	CacheTTL time.Duration
}

// Romanizer produces a readable latin-script rendering of text whose native
// script the learner cannot read yet, via the Gemini API.
type Romanizer struct {
	client *genai.Client
	cache  ResultCache
	logger *zap.Logger
	cfg    RomanizerConfig
}

// NewRomanizer creates a romanizer. Zero config fields fall back to the
// defaults; cache may be nil.
func NewRomanizer(client *genai.Client, cache ResultCache, logger *zap.Logger, cfg RomanizerConfig) *Romanizer {
	if cfg.Model == "" {
		cfg.Model = defaultRomanizerModel
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Romanizer{client: client, cache: cache, logger: logger, cfg: cfg}
}

// Romanize converts text in the given language to a romanized rendering.
func (r *Romanizer) Romanize(ctx context.Context, text, languageCode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.New("nothing to romanize")
	}

	key := "romanize:" + utils.HashStrings("romanize", text, languageCode)
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	prompt := fmt.Sprintf(
		"Romanize the following text (language: %s) for a learner who cannot read the native script yet. "+
			"Reply with the romanization only.\n\n%s", languageCode, text)

	resp, err := r.client.Models.GenerateContent(ctx, r.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", apperrors.NewExternalError("romanize", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", apperrors.New("romanization returned no text")
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, out, r.cfg.CacheTTL)
	}
	return out, nil
}
