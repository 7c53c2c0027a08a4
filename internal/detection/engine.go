// Package detection wires the normalizer, pattern matcher, URL analyzer and
// risk aggregator into the analysis engine.
package detection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"truthlens/internal/config"
	"truthlens/internal/detection/patterns"
	"truthlens/internal/detection/risk"
	"truthlens/internal/detection/text"
	"truthlens/internal/detection/urls"
	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

// ErrInvalidInput is returned for empty or too short content
var ErrInvalidInput = errors.New("invalid input")

const healthHealthy = "healthy"

// Config holds the engine tunables
type Config struct {
	Weights          patterns.Weights
	MaskSensitive    bool
	MinContentLength int
	PhoneRegion      string
	LookalikeCheck   bool
}

// DefaultConfig returns the stock engine configuration
func DefaultConfig() Config {
	return Config{
		Weights:          patterns.DefaultWeights(),
		MaskSensitive:    true,
		MinContentLength: 5,
		PhoneRegion:      "IN",
	}
}

// ConfigFromSettings builds the engine configuration from loaded settings
func ConfigFromSettings(c config.DetectionConfig) Config {
	return Config{
		Weights: patterns.Weights{
			Keyword:   c.KeywordWeight,
			Pattern:   c.PatternWeight,
			Threshold: c.DetectionThreshold,
		},
		MaskSensitive:    c.MaskSensitive,
		MinContentLength: c.MinContentLength,
		PhoneRegion:      c.PhoneRegion,
		LookalikeCheck:   c.LookalikeCheck,
	}
}

// Engine scores content for scam and misinformation risk. It is safe for concurrent use.
type Engine struct {
	config     Config
	normalizer *text.Normalizer
	matcher    *patterns.Matcher
	urls       *urls.Analyzer
	aggregator *risk.Aggregator
	languages  *text.LanguageDetector
	logger     *logger.Logger

	startTime      time.Time
	totalAnalyses  atomic.Int64
	totalProcessNs atomic.Int64
	catalogUpdated atomic.Int64 // unix nanos
}

// NewEngine creates an engine loaded with the built-in rule and domain catalogs
func NewEngine(cfg Config, log *logger.Logger) (*Engine, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection weights: %w", err)
	}
	if cfg.MinContentLength < 1 {
		cfg.MinContentLength = 1
	}

	e := &Engine{
		config:     cfg,
		normalizer: text.NewNormalizer(),
		matcher:    patterns.NewMatcher(cfg.Weights, log),
		urls:       urls.NewAnalyzer(urls.Options{LookalikeCheck: cfg.LookalikeCheck}, log),
		aggregator: risk.NewAggregator(),
		languages:  text.NewLanguageDetector(),
		logger:     log.WithComponent("engine"),
		startTime:  time.Now(),
	}
	e.catalogUpdated.Store(e.startTime.UnixNano())

	return e, nil
}

// Analyze scores a single piece of content
func (e *Engine) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	start := time.Now()

	content := req.Content
	switch req.ContentType {
	case models.ContentTypeHTML, models.ContentTypeEmail:
		plain, err := text.ExtractPlainText(content, req.ContentType)
		if err != nil {
			e.logger.Warn().Err(err).Str("content_type", string(req.ContentType)).Msg("content extraction failed, scoring raw content")
		} else {
			content = plain
		}
	}

	if n := utf8.RuneCountInString(strings.Join(strings.Fields(content), " ")); n < e.config.MinContentLength {
		return nil, fmt.Errorf("%w: content must be at least %d characters", ErrInvalidInput, e.config.MinContentLength)
	}

	language := req.Language
	if !models.IsSupportedLanguage(language) {
		language = e.languages.Detect(content)
	}

	normalized := e.normalizer.Preprocess(content, e.config.MaskSensitive)

	var (
		scamResult *models.ScamResult
		urlResult  *models.URLResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scamResult = e.matcher.Detect(normalized)
		return gctx.Err()
	})
	g.Go(func() error {
		urlResult = e.urls.Analyze(content)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := e.aggregator.Combine(scamResult, urlResult)

	contentType := req.ContentType
	if contentType == "" {
		contentType = models.ContentTypeText
	}
	stats := text.ComputeStats(content, e.config.PhoneRegion)

	result.AnalysisID = uuid.New()
	result.Language = language
	result.ContentType = contentType
	result.SourceApp = models.NormalizeSourceApp(req.SourceApp)
	result.ContentHash = ContentHash(req.Content)
	result.TextStats = &stats
	result.AnalysisTimestamp = time.Now().UTC()

	elapsed := time.Since(start)
	result.ProcessingTimeMs = float64(elapsed.Microseconds()) / 1000

	e.totalAnalyses.Add(1)
	e.totalProcessNs.Add(elapsed.Nanoseconds())

	e.logger.Debug().
		Str("analysis_id", result.AnalysisID.String()).
		Str("content_hash", result.ContentHash).
		Str("risk_level", string(result.RiskLevel)).
		Float64("confidence", result.Confidence).
		Strs("patterns", result.DetectedPatterns).
		Str("preview", text.CleanForDisplay(text.MaskSensitive(content))).
		Dur("duration", elapsed).
		Msg("content analyzed")

	return result, nil
}

// ContentHash is the hex SHA-256 of the trimmed content. Feedback and reports
// refer to content by this hash only.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])
}

// ListPatterns describes every rule and domain the engine matches against
func (e *Engine) ListPatterns() *models.PatternCatalog {
	rules := e.matcher.Rules()

	names := make([]string, 0, len(rules))
	details := make(map[string]models.RuleInfo, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
		details[r.Name] = models.RuleInfo{
			Keywords:        r.Keywords,
			Regexes:         r.Regexes,
			Explanation:     r.Explanation,
			Risk:            r.Risk,
			ConfidenceBoost: r.ConfidenceBoost,
		}
	}

	return &models.PatternCatalog{
		ScamPatterns:      names,
		PatternDetails:    details,
		SuspiciousDomains: e.urls.SuspiciousDomains(),
		TrustedDomains:    e.urls.TrustedDomains(),
		TotalPatterns:     len(names),
		LastUpdated:       time.Unix(0, e.catalogUpdated.Load()).UTC(),
	}
}

// Stats returns the process-wide counters
func (e *Engine) Stats() models.EngineStats {
	total := e.totalAnalyses.Load()

	var avg float64
	if total > 0 {
		avg = float64(e.totalProcessNs.Load()) / float64(total) / float64(time.Millisecond)
	}

	return models.EngineStats{
		TotalAnalyses:       total,
		UptimeSeconds:       time.Since(e.startTime).Seconds(),
		AverageProcessingMs: avg,
		ServiceHealth:       healthHealthy,
	}
}

// RecordServed counts an analysis answered without running the pipeline, such as a cache hit
func (e *Engine) RecordServed(d time.Duration) {
	e.totalAnalyses.Add(1)
	e.totalProcessNs.Add(d.Nanoseconds())
}

// RegisterRule adds or replaces a scam rule
func (e *Engine) RegisterRule(r patterns.Rule) bool {
	if !e.matcher.AddRule(r) {
		return false
	}
	e.touchCatalog()
	return true
}

// RegisterSuspiciousDomain adds a domain to an existing suspicious category
func (e *Engine) RegisterSuspiciousDomain(domain, category string) bool {
	if !e.urls.AddSuspiciousDomain(domain, category) {
		return false
	}
	e.touchCatalog()
	return true
}

// RegisterTrustedDomain adds a domain to a trusted category
func (e *Engine) RegisterTrustedDomain(domain, category string) bool {
	if !e.urls.AddTrustedDomain(domain, category) {
		return false
	}
	e.touchCatalog()
	return true
}

// UpdateWeights swaps the scoring weights
func (e *Engine) UpdateWeights(w patterns.Weights) bool {
	if !e.matcher.UpdateWeights(w) {
		return false
	}
	e.touchCatalog()
	return true
}

// CatalogVersion changes whenever rules, domains or weights change
func (e *Engine) CatalogVersion() int64 {
	return e.catalogUpdated.Load()
}

// CheckURL rates one URL and reports its catalog membership
func (e *Engine) CheckURL(rawURL string) models.URLCheckResult {
	return models.URLCheckResult{
		URLAnalysis:    e.urls.AnalyzeURL(rawURL),
		IsShortener:    e.urls.IsURLShortener(rawURL),
		DomainCategory: e.urls.DomainCategory(rawURL),
	}
}

// Languages lists the languages the detector recognizes by script
func (e *Engine) Languages() []text.SupportedLanguage {
	return e.languages.Languages()
}

func (e *Engine) touchCatalog() {
	e.catalogUpdated.Store(time.Now().UnixNano())
}
