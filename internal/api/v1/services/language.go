package services

import (
	"context"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
)

// LanguageServiceImpl implements LanguageService
type LanguageServiceImpl struct {
	translator TextTranslator
	romanizer  TextRomanizer
}

// NewLanguageService creates a new language service
func NewLanguageService(translator TextTranslator, romanizer TextRomanizer) LanguageService {
	return &LanguageServiceImpl{
		translator: translator,
		romanizer:  romanizer,
	}
}

// TranslateText translates arbitrary text into the target language
func (s *LanguageServiceImpl) TranslateText(ctx context.Context, req *dto.TranslateTextRequest) (*dto.TranslateTextResponse, error) {
	translation, err := s.translator.Translate(ctx, req.Text, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	return &dto.TranslateTextResponse{
		Translation:    translation,
		TargetLanguage: req.TargetLanguage,
	}, nil
}

// RomanizeText renders text in Latin script so learners can read it aloud.
// Deployments without a Gemini key run with romanization disabled.
func (s *LanguageServiceImpl) RomanizeText(ctx context.Context, req *dto.RomanizeTextRequest) (*dto.RomanizeTextResponse, error) {
	if s.romanizer == nil {
		return nil, errors.NewServiceUnavailableError("Romanization is not configured")
	}

	romanization, err := s.romanizer.Romanize(ctx, req.Text, req.LanguageCode)
	if err != nil {
		return nil, err
	}

	return &dto.RomanizeTextResponse{
		Romanization: romanization,
		LanguageCode: req.LanguageCode,
	}, nil
}
