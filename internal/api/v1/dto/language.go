package dto

// TranslateTextRequest translates an ad-hoc piece of text.
type TranslateTextRequest struct {
	Text           string `json:"text" binding:"required,max=10000"`
	TargetLanguage string `json:"target_language" binding:"required,max=35"`
}

// TranslateTextResponse carries the translation.
type TranslateTextResponse struct {
	Translation    string `json:"translation"`
	TargetLanguage string `json:"target_language"`
}

// RomanizeTextRequest romanizes an ad-hoc piece of text.
type RomanizeTextRequest struct {
	Text         string `json:"text" binding:"required,max=10000"`
	LanguageCode string `json:"language_code" binding:"required,max=35"`
}

// RomanizeTextResponse carries the romanization.
type RomanizeTextResponse struct {
	Romanization string `json:"romanization"`
	LanguageCode string `json:"language_code"`
}
