package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"truthlens/internal/config"
	"truthlens/internal/detection"
	"truthlens/internal/domain/models"
	"truthlens/internal/metrics"
	"truthlens/pkg/logger"
)

// bulkConcurrency bounds the goroutines a single bulk request may use
const bulkConcurrency = 4

// VerdictCache stores finished verdicts by key
type VerdictCache interface {
	GetVerdict(ctx context.Context, key string) (*models.AnalysisResult, bool, error)
	SetVerdict(ctx context.Context, key string, res *models.AnalysisResult, ttl time.Duration) error
}

// EventPublisher announces verdicts, feedback and reports
type EventPublisher interface {
	PublishAnalysis(ctx context.Context, res *models.AnalysisResult) error
	PublishFeedback(ctx context.Context, fb *models.Feedback) error
	PublishReport(ctx context.Context, r *models.ContentReport) error
}

// AnalysisService fronts the detection engine with validation, caching,
// metrics and event publishing
type AnalysisService struct {
	engine    *detection.Engine
	cache     VerdictCache
	publisher EventPublisher
	cfg       config.DetectionConfig
	logger    *logger.Logger
}

// NewAnalysisService creates a new analysis service. cache and publisher may be nil.
func NewAnalysisService(
	engine *detection.Engine,
	cache VerdictCache,
	publisher EventPublisher,
	cfg config.DetectionConfig,
	log *logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		engine:    engine,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		logger:    log.WithComponent("analysis-service"),
	}
}

// Engine returns the underlying engine
func (s *AnalysisService) Engine() *detection.Engine {
	return s.engine
}

// Analyze scores a single piece of content
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	res, err := s.analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publishAnalysis(ctx, res)
	return res, nil
}

func (s *AnalysisService) analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := s.validate(req); err != nil {
		metrics.RecordRejectedInput()
		return nil, err
	}

	start := time.Now()
	key := s.cacheKey(req)

	if cached := s.lookup(ctx, key); cached != nil {
		cached.AnalysisID = uuid.New()
		cached.SourceApp = models.NormalizeSourceApp(req.SourceApp)
		cached.AnalysisTimestamp = time.Now().UTC()
		cached.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000
		cached.Cached = true
		s.engine.RecordServed(time.Since(start))
		s.record(cached, time.Since(start))
		return cached, nil
	}

	res, err := s.engine.Analyze(ctx, req)
	if err != nil {
		if isInvalidInput(err) {
			metrics.RecordRejectedInput()
		}
		return nil, err
	}

	s.record(res, time.Since(start))
	s.store(ctx, key, res)

	s.logger.WithAnalysisID(res.AnalysisID.String()).Debug().
		Str("risk_level", string(res.RiskLevel)).
		Float64("confidence", res.Confidence).
		Int("patterns", len(res.DetectedPatterns)).
		Msg("analysis completed")

	return res, nil
}

func (s *AnalysisService) validate(req models.AnalysisRequest) error {
	if !req.ContentType.IsValid() {
		return fmt.Errorf("%w: unsupported content type %q", detection.ErrInvalidInput, req.ContentType)
	}
	if s.cfg.MaxContentLength > 0 && utf8.RuneCountInString(req.Content) > s.cfg.MaxContentLength {
		return fmt.Errorf("%w: content exceeds %d characters", detection.ErrInvalidInput, s.cfg.MaxContentLength)
	}
	return nil
}

// cacheKey covers everything that changes the verdict. source_app only
// labels the result and is re-applied on a hit.
func (s *AnalysisService) cacheKey(req models.AnalysisRequest) string {
	ct := req.ContentType
	if ct == "" {
		ct = models.ContentTypeText
	}
	return fmt.Sprintf("%s:%s:%s:%d",
		detection.ContentHash(req.Content),
		ct,
		strings.ToLower(req.Language),
		s.engine.CatalogVersion(),
	)
}

func (s *AnalysisService) lookup(ctx context.Context, key string) *models.AnalysisResult {
	if s.cache == nil {
		return nil
	}

	res, ok, err := s.cache.GetVerdict(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("verdict cache lookup failed")
		metrics.RecordError("cache_get_failed", "analysis")
		return nil
	}
	if !ok {
		metrics.RecordCacheMiss()
		return nil
	}

	metrics.RecordCacheHit()
	return res
}

func (s *AnalysisService) store(ctx context.Context, key string, res *models.AnalysisResult) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	if err := s.cache.SetVerdict(ctx, key, res, s.cfg.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache verdict")
		metrics.RecordError("cache_set_failed", "analysis")
	}
}

func (s *AnalysisService) record(res *models.AnalysisResult, dur time.Duration) {
	metrics.RecordAnalysis(
		string(res.RiskLevel),
		string(res.ContentType),
		res.SourceApp,
		res.Confidence,
		res.DetectedPatterns,
		dur,
	)
	for _, u := range res.PatternDetails.URLAnalysis {
		if u.IsSuspicious {
			metrics.RecordFlaggedURL(u.Category)
		}
	}
}

func (s *AnalysisService) publishAnalysis(ctx context.Context, res *models.AnalysisResult) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAnalysis(ctx, res); err != nil {
		s.logger.Warn().Err(err).Str("analysis_id", res.AnalysisID.String()).Msg("failed to publish analysis event")
		metrics.RecordError("publish_failed", "analysis")
	}
}

// AnalyzeBulk scores up to MaxBulkItems contents concurrently. Items rejected
// as invalid are reported individually; any other failure aborts the batch.
func (s *AnalysisService) AnalyzeBulk(ctx context.Context, req models.BulkAnalysisRequest) (*models.BulkAnalysisResult, error) {
	n := len(req.Contents)
	if n == 0 {
		return nil, fmt.Errorf("%w: no contents to analyze", detection.ErrInvalidInput)
	}
	if s.cfg.MaxBulkItems > 0 && n > s.cfg.MaxBulkItems {
		return nil, fmt.Errorf("%w: at most %d contents per request", detection.ErrInvalidInput, s.cfg.MaxBulkItems)
	}

	start := time.Now()
	metrics.RecordBulk(n)

	results := make([]*models.AnalysisResult, n)
	var (
		mu       sync.Mutex
		itemErrs []models.BulkItemError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)

	for i, item := range req.Contents {
		i, item := i, item
		g.Go(func() error {
			res, err := s.analyze(gctx, item)
			if err != nil {
				if !isInvalidInput(err) {
					return fmt.Errorf("item %d: %w", i, err)
				}
				mu.Lock()
				itemErrs = append(itemErrs, models.BulkItemError{Index: i, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.BulkAnalysisResult{
		Results: make([]models.AnalysisResult, 0, n),
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		out.Results = append(out.Results, *res)

		switch res.RiskLevel {
		case models.RiskLevelDanger:
			out.Summary.Danger++
		case models.RiskLevelCaution:
			out.Summary.Caution++
		default:
			out.Summary.Safe++
		}
		if res.IsSuspicious {
			out.Summary.Suspicious++
		}
	}

	slices.SortFunc(itemErrs, func(a, b models.BulkItemError) int {
		return cmp.Compare(a.Index, b.Index)
	})
	out.Errors = itemErrs
	out.Summary.Failed = len(itemErrs)
	out.TotalProcessed = len(out.Results)
	out.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000

	for i := range out.Results {
		s.publishAnalysis(ctx, &out.Results[i])
	}

	s.logger.Info().
		Int("items", n).
		Int("processed", out.TotalProcessed).
		Int("failed", out.Summary.Failed).
		Float64("processing_time_ms", out.ProcessingTimeMs).
		Msg("bulk analysis completed")

	return out, nil
}

// CheckURL rates a single URL
func (s *AnalysisService) CheckURL(ctx context.Context, req models.URLCheckRequest) (*models.URLCheckResult, error) {
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		metrics.RecordRejectedInput()
		return nil, fmt.Errorf("%w: url is required", detection.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := s.engine.CheckURL(raw)
	if res.IsSuspicious {
		metrics.RecordFlaggedURL(res.Category)
	}
	return &res, nil
}

func isInvalidInput(err error) bool {
	return errors.Is(err, detection.ErrInvalidInput)
}

// Patterns returns the current rule and domain catalog
func (s *AnalysisService) Patterns() *models.PatternCatalog {
	return s.engine.ListPatterns()
}

// Stats returns the engine counters
func (s *AnalysisService) Stats() models.EngineStats {
	return s.engine.Stats()
}
