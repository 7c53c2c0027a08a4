package models

import (
	"strings"
)

// ContentType represents the kind of content submitted for analysis
type ContentType string

const (
	ContentTypeText            ContentType = "text"
	ContentTypeURL             ContentType = "url"
	ContentTypeImageText       ContentType = "image_text"       // OCR output
	ContentTypeVideoTranscript ContentType = "video_transcript" // speech-to-text output
	ContentTypeHTML            ContentType = "html"             // converted to plain text before scoring
	ContentTypeEmail           ContentType = "email"            // raw MIME message
)

// IsValid reports whether t is a known content type. Empty means text.
func (t ContentType) IsValid() bool {
	switch t {
	case "", ContentTypeText, ContentTypeURL, ContentTypeImageText,
		ContentTypeVideoTranscript, ContentTypeHTML, ContentTypeEmail:
		return true
	}
	return false
}

// Supported language codes
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
	LanguageTelugu  = "te"
	LanguageTamil   = "ta"
	LanguageBengali = "bn"
)

// IsSupportedLanguage reports whether code may be supplied by callers
func IsSupportedLanguage(code string) bool {
	switch code {
	case LanguageEnglish, LanguageHindi, LanguageTelugu, LanguageTamil, LanguageBengali:
		return true
	}
	return false
}

var sourceApps = map[string]struct{}{
	"whatsapp":  {},
	"facebook":  {},
	"instagram": {},
	"twitter":   {},
	"telegram":  {},
	"youtube":   {},
	"gmail":     {},
	"chrome":    {},
	"firefox":   {},
	"other":     {},
}

// NormalizeSourceApp lowercases app and maps unknown values to "other"
func NormalizeSourceApp(app string) string {
	app = strings.ToLower(strings.TrimSpace(app))
	if _, ok := sourceApps[app]; ok {
		return app
	}
	return "other"
}

// AnalysisRequest is a single piece of content plus optional caller metadata
type AnalysisRequest struct {
	Content     string         `json:"content"`
	ContentType ContentType    `json:"content_type,omitempty"`
	Language    string         `json:"language,omitempty"`
	SourceApp   string         `json:"source_app,omitempty"`
	UserContext map[string]any `json:"user_context,omitempty"`
}

// BulkAnalysisRequest analyzes several items in one call
type BulkAnalysisRequest struct {
	Contents []AnalysisRequest `json:"contents"`
	Priority string            `json:"priority,omitempty"` // low, normal, high
}

// BulkSummary counts verdicts across a bulk request
type BulkSummary struct {
	Safe       int `json:"safe"`
	Caution    int `json:"caution"`
	Danger     int `json:"danger"`
	Suspicious int `json:"suspicious"`
	Failed     int `json:"failed"`
}

// BulkItemError reports an item of a bulk request that could not be analyzed
type BulkItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkAnalysisResult is the response to a bulk request
type BulkAnalysisResult struct {
	Results          []AnalysisResult `json:"results"`
	Errors           []BulkItemError  `json:"errors,omitempty"`
	Summary          BulkSummary      `json:"summary"`
	TotalProcessed   int              `json:"total_processed"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
}

// URLCheckRequest asks for the verdict on a single URL
type URLCheckRequest struct {
	URL string `json:"url"`
}

// URLCheckResult is the verdict on a single URL plus catalog lookups
type URLCheckResult struct {
	URLAnalysis
	IsShortener    bool   `json:"is_shortener"`
	DomainCategory string `json:"domain_category"`
}
