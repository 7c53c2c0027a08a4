// Package urls extracts URLs from text and rates the credibility of each one
// against static domain catalogs, URL shape rules and lexical heuristics.
package urls

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/net/idna"

	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

// Per-URL confidences
const (
	confidenceTrusted    = 0.9
	confidenceSuspicious = 0.8
	confidenceShape      = 0.7
	confidenceDefault    = 0.7
	confidenceHeuristic  = 0.6
	confidenceMalformed  = 0.3
	confidenceNoURLs     = 0.9
)

const (
	categoryUnknown   = "unknown"
	categoryMalformed = "malformed"
)

// Heuristic reasons
const (
	ReasonSuspiciousPath    = "URL path contains suspicious elements"
	ReasonExcessiveHyphens  = "Domain contains excessive hyphens"
	ReasonNumberPattern     = "Domain contains suspicious number patterns"
	ReasonConfusingChars    = "Domain may use confusing characters"
	ReasonInternationalized = "Domain uses internationalized characters that can imitate other sites"
)

var (
	suspiciousPathParts = []string{"login", "verify", "update", "secure", "account", "banking"}
	digitRun            = regexp.MustCompile(`\d{4,}`)
)

// Options configures optional heuristics. Both are off unless asked for.
type Options struct {
	// LookalikeCheck flags internationalized hosts and domains within a
	// small edit distance of a trusted domain
	LookalikeCheck bool
}

// Analyzer rates URLs. Catalog reads take the read lock; registration takes the write lock.
type Analyzer struct {
	mu         sync.RWMutex
	trusted    *DomainCatalog
	suspicious *DomainCatalog
	shapes     []ShapeRule
	opts       Options
	logger     *logger.Logger
}

// NewAnalyzer creates an analyzer loaded with the built-in catalogs
func NewAnalyzer(opts Options, log *logger.Logger) *Analyzer {
	return &Analyzer{
		trusted:    NewDomainCatalog(DefaultTrustedDomains()),
		suspicious: NewDomainCatalog(DefaultSuspiciousDomains()),
		shapes:     DefaultShapeRules(),
		opts:       opts,
		logger:     log.WithComponent("url-analyzer"),
	}
}

// Analyze extracts every URL from raw text and aggregates their verdicts
func (a *Analyzer) Analyze(raw string) *models.URLResult {
	result := &models.URLResult{
		SuspiciousURLs:  []models.URLAnalysis{},
		TrustedURLs:     []models.URLAnalysis{},
		AnalysisDetails: make(map[string]models.URLAnalysis),
		RiskLevel:       models.RiskLevelSafe,
		Confidence:      confidenceNoURLs,
	}

	found := ExtractURLs(raw)
	if len(found) == 0 {
		return result
	}

	total := 0.0
	for _, u := range found {
		analysis := a.AnalyzeURL(u)

		switch {
		case analysis.IsSuspicious:
			result.SuspiciousURLs = append(result.SuspiciousURLs, analysis)
			result.RiskLevel = models.MaxRisk(result.RiskLevel, analysis.RiskLevel)
		case analysis.IsTrusted:
			result.TrustedURLs = append(result.TrustedURLs, analysis)
		}

		result.AnalysisDetails[u] = analysis
		total += analysis.Confidence
	}

	result.TotalURLs = len(found)
	result.SuspiciousCount = len(result.SuspiciousURLs)
	result.TrustedCount = len(result.TrustedURLs)
	result.Confidence = math.Min(1, total/float64(len(found)))

	return result
}

// AnalyzeURL rates a single URL. The first matching stage decides the verdict:
// trusted catalog, suspicious catalog, shape rules, then heuristics.
func (a *Analyzer) AnalyzeURL(rawURL string) models.URLAnalysis {
	parsed, err := parse(rawURL)
	if err != nil {
		return models.URLAnalysis{
			URL:          rawURL,
			Domain:       "unknown",
			IsSuspicious: true,
			RiskLevel:    models.RiskLevelCaution,
			Confidence:   confidenceMalformed,
			Reasons:      []string{fmt.Sprintf("Failed to parse URL: %v", err)},
			Category:     categoryMalformed,
		}
	}

	domain := strings.ToLower(parsed.Host)
	analysis := models.URLAnalysis{
		URL:        rawURL,
		Domain:     domain,
		RiskLevel:  models.RiskLevelSafe,
		Confidence: confidenceDefault,
		Reasons:    []string{},
		Category:   categoryUnknown,
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if category, _, ok := a.matchCatalog(a.trusted, domain); ok {
		analysis.IsTrusted = true
		analysis.Category = category
		analysis.Confidence = confidenceTrusted
		analysis.Reasons = []string{fmt.Sprintf("Domain is a trusted %s source", category)}
		return analysis
	}

	if category, _, ok := a.matchCatalog(a.suspicious, domain); ok {
		analysis.IsSuspicious = true
		analysis.Category = category
		analysis.RiskLevel = models.RiskLevelCaution
		if category == CategoryHighRisk {
			analysis.RiskLevel = models.RiskLevelDanger
		}
		analysis.Confidence = confidenceSuspicious
		analysis.Reasons = []string{suspiciousReason(category)}
		return analysis
	}

	for _, shape := range a.shapes {
		if shape.matches(rawURL) {
			analysis.IsSuspicious = true
			analysis.RiskLevel = shape.Risk
			analysis.Confidence = confidenceShape
			analysis.Reasons = []string{shape.Explanation}
			return analysis
		}
	}

	if reasons := a.heuristics(parsed, domain); len(reasons) > 0 {
		analysis.IsSuspicious = true
		analysis.RiskLevel = models.RiskLevelCaution
		analysis.Confidence = confidenceHeuristic
		analysis.Reasons = reasons
	}

	return analysis
}

func (s ShapeRule) matches(rawURL string) bool {
	for _, re := range s.Regexes {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// matchCatalog checks the domain as written and, for internationalized hosts, its ASCII form
func (a *Analyzer) matchCatalog(c *DomainCatalog, domain string) (string, string, bool) {
	if category, fragment, ok := c.Match(domain); ok {
		return category, fragment, true
	}
	if ascii := toASCII(domain); ascii != domain {
		return c.Match(ascii)
	}
	return "", "", false
}

func (a *Analyzer) heuristics(u *url.URL, domain string) []string {
	var reasons []string

	path := strings.ToLower(u.Path)
	for _, part := range suspiciousPathParts {
		if strings.Contains(path, part) {
			reasons = append(reasons, ReasonSuspiciousPath)
			break
		}
	}

	if strings.Count(domain, "-") > 3 {
		reasons = append(reasons, ReasonExcessiveHyphens)
	}

	if digitRun.MatchString(domain) {
		reasons = append(reasons, ReasonNumberPattern)
	}

	confusing := 0
	for _, r := range domain {
		switch r {
		case '0', '1', 'o', 'i':
			confusing++
		}
	}
	if confusing > 2 {
		reasons = append(reasons, ReasonConfusingChars)
	}

	if !a.opts.LookalikeCheck {
		return reasons
	}

	host := strings.ToLower(u.Hostname())
	ascii := toASCII(host)
	if isInternationalized(host, ascii) {
		reasons = append(reasons, ReasonInternationalized)
	}
	if target, ok := a.lookalike(ascii); ok {
		reasons = append(reasons, fmt.Sprintf("Domain looks similar to trusted domain %s", target))
	}

	return reasons
}

// lookalike finds a trusted domain within a small edit distance of host.
// The threshold grows with the domain length.
func (a *Analyzer) lookalike(host string) (string, bool) {
	host = strings.TrimPrefix(host, "www.")

	var thresh int
	switch l := len(host); {
	case l <= 11:
		thresh = 1
	case l <= 15:
		thresh = 2
	default:
		thresh = int(math.Ceil(float64(l) * 0.15))
	}

	for _, cat := range a.trusted.categories {
		for _, trusted := range cat.Domains {
			// bare suffixes such as "edu" are not site names
			if !strings.Contains(trusted, ".") || len(trusted) < 6 {
				continue
			}
			d := fuzzy.LevenshteinDistance(host, trusted)
			if d > 0 && d <= thresh {
				return trusted, true
			}
		}
	}
	return "", false
}

// AddSuspiciousDomain appends domain to an existing suspicious category
func (a *Analyzer) AddSuspiciousDomain(domain, category string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	if category == "" {
		category = CategoryHighRisk
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.suspicious.Add(category, domain, false) {
		a.logger.Warn().Str("domain", domain).Str("category", category).Msg("unknown suspicious category")
		return false
	}
	a.logger.Info().Str("domain", domain).Str("category", category).Msg("added suspicious domain")
	return true
}

// AddTrustedDomain appends domain to a trusted category, creating it if needed
func (a *Analyzer) AddTrustedDomain(domain, category string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	if category == "" {
		category = "other"
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.trusted.Add(category, domain, true)
	a.logger.Info().Str("domain", domain).Str("category", category).Msg("added trusted domain")
	return true
}

// IsURLShortener reports whether the URL's domain is a known shortener
func (a *Analyzer) IsURLShortener(rawURL string) bool {
	parsed, err := parse(rawURL)
	if err != nil {
		return false
	}
	domain := strings.ToLower(parsed.Host)

	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, s := range a.suspicious.Domains(CategoryURLShorteners) {
		if strings.Contains(domain, s) {
			return true
		}
	}
	return false
}

// DomainCategory returns "trusted_<category>", "suspicious_<category>",
// "unknown" or "malformed" for a URL.
func (a *Analyzer) DomainCategory(rawURL string) string {
	parsed, err := parse(rawURL)
	if err != nil {
		return categoryMalformed
	}
	domain := strings.ToLower(parsed.Host)

	a.mu.RLock()
	defer a.mu.RUnlock()

	if category, _, ok := a.matchCatalog(a.trusted, domain); ok {
		return "trusted_" + category
	}
	if category, _, ok := a.matchCatalog(a.suspicious, domain); ok {
		return "suspicious_" + category
	}
	return categoryUnknown
}

// TrustedDomains returns a snapshot of the trusted catalog
func (a *Analyzer) TrustedDomains() map[string][]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.trusted.Snapshot()
}

// SuspiciousDomains returns a snapshot of the suspicious catalog
func (a *Analyzer) SuspiciousDomains() map[string][]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.suspicious.Snapshot()
}

func parse(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", rawURL)
	}
	return u, nil
}

func toASCII(host string) string {
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}
	return strings.ToLower(ascii)
}

func isInternationalized(host, ascii string) bool {
	if strings.Contains(ascii, "xn--") {
		return true
	}
	for _, r := range host {
		if r > 127 {
			return true
		}
	}
	return false
}
