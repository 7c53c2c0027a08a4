package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown shows how a rule's score was assembled
type ScoreBreakdown struct {
	KeywordScore float64 `json:"keyword_score"`
	PatternScore float64 `json:"pattern_score"`
	TotalScore   float64 `json:"total_score"`
}

// DetectionResult is the outcome of evaluating one scam rule
type DetectionResult struct {
	Detected        bool           `json:"detected"`
	Confidence      float64        `json:"confidence"`
	KeywordMatches  int            `json:"keyword_matches"`
	PatternMatches  int            `json:"pattern_matches"`
	MatchedKeywords []string       `json:"matched_keywords"`
	MatchedPatterns []string       `json:"matched_patterns"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
}

// ScamResult aggregates every rule evaluated against a normalized text
type ScamResult struct {
	DetectedPatterns []string                   `json:"detected_patterns"`
	PatternDetails   map[string]DetectionResult `json:"pattern_details"`
	Explanations     []string                   `json:"explanations"`
	RiskLevel        RiskLevel                  `json:"risk_level"`
	Confidence       float64                    `json:"confidence"`
}

// URLAnalysis is the verdict for a single URL
type URLAnalysis struct {
	URL          string    `json:"url"`
	Domain       string    `json:"domain"`
	IsSuspicious bool      `json:"is_suspicious"`
	IsTrusted    bool      `json:"is_trusted"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Confidence   float64   `json:"confidence"`
	Reasons      []string  `json:"reasons"`
	Category     string    `json:"category"`
}

// URLResult aggregates the verdicts of every URL found in a text
type URLResult struct {
	SuspiciousURLs  []URLAnalysis          `json:"suspicious_urls"`
	TrustedURLs     []URLAnalysis          `json:"trusted_urls"`
	AnalysisDetails map[string]URLAnalysis `json:"analysis_details"`
	RiskLevel       RiskLevel              `json:"risk_level"`
	Confidence      float64                `json:"confidence"`
	TotalURLs       int                    `json:"total_urls"`
	SuspiciousCount int                    `json:"suspicious_count"`
	TrustedCount    int                    `json:"trusted_count"`
}

// PatternDetails carries the raw per-rule and per-URL evidence behind a verdict
type PatternDetails struct {
	ScamPatterns map[string]DetectionResult `json:"scam_patterns"`
	URLAnalysis  map[string]URLAnalysis     `json:"url_analysis"`
}

// UIIndicators are display hints for clients
type UIIndicators struct {
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	Urgency       string `json:"urgency"`
	ConfidenceBar int    `json:"confidence_bar"` // 0-100
}

// FactCheckSource points users at an independent place to verify a claim
type FactCheckSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnalysisResult is the final verdict returned to callers
type AnalysisResult struct {
	AnalysisID          uuid.UUID         `json:"analysis_id"`
	IsSuspicious        bool              `json:"is_suspicious"`
	RiskLevel           RiskLevel         `json:"risk_level"`
	Confidence          float64           `json:"confidence"`
	ConfidenceLevel     ConfidenceLevel   `json:"confidence_level"`
	Explanation         string            `json:"explanation"`
	DetailedExplanation *string           `json:"detailed_explanation"`
	DetectedPatterns    []string          `json:"detected_patterns"`
	PatternDetails      PatternDetails    `json:"pattern_details"`
	Recommendations     []string          `json:"recommendations"`
	ActionItems         []string          `json:"action_items"`
	EducationalTips     []string          `json:"educational_tips"`
	FactCheckSources    []FactCheckSource `json:"fact_check_sources"`
	UIIndicators        UIIndicators      `json:"ui_indicators"`

	// Request context
	Language    string      `json:"language"`
	ContentType ContentType `json:"content_type"`
	SourceApp   string      `json:"source_app"`
	ContentHash string      `json:"content_hash"`
	TextStats   *TextStats  `json:"text_stats,omitempty"`

	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
	ProcessingTimeMs  float64   `json:"processing_time_ms"`
	Cached            bool      `json:"cached,omitempty"`
}

// TextStats are descriptive statistics of the raw content
type TextStats struct {
	CharCount               int     `json:"char_count"`
	WordCount               int     `json:"word_count"`
	SentenceCount           int     `json:"sentence_count"`
	AvgWordLength           float64 `json:"avg_word_length"`
	UppercaseRatio          float64 `json:"uppercase_ratio"`
	PunctuationRatio        float64 `json:"punctuation_ratio"`
	HasExcessiveCaps        bool    `json:"has_excessive_caps"`
	HasExcessivePunctuation bool    `json:"has_excessive_punctuation"`
	HasNumbers              bool    `json:"has_numbers"`
	HasURLs                 bool    `json:"has_urls"`
	PhoneNumberCount        int     `json:"phone_number_count"`
	ReadabilityScore        float64 `json:"readability_score"`
}

// RuleInfo describes a registered scam rule for catalog listings
type RuleInfo struct {
	Keywords        []string  `json:"keywords"`
	Regexes         []string  `json:"patterns"`
	Explanation     string    `json:"explanation"`
	Risk            RiskLevel `json:"risk"`
	ConfidenceBoost float64   `json:"confidence_boost"`
}

// PatternCatalog lists everything the engine currently matches against
type PatternCatalog struct {
	ScamPatterns      []string            `json:"scam_patterns"`
	PatternDetails    map[string]RuleInfo `json:"pattern_details"`
	SuspiciousDomains map[string][]string `json:"suspicious_domains"`
	TrustedDomains    map[string][]string `json:"trusted_domains"`
	TotalPatterns     int                 `json:"total_patterns"`
	LastUpdated       time.Time           `json:"last_updated"`
}

// EngineStats are the process-local counters of the engine
type EngineStats struct {
	TotalAnalyses       int64   `json:"total_analyses"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
	AverageProcessingMs float64 `json:"average_processing_ms"`
	ServiceHealth       string  `json:"service_health"`
}
