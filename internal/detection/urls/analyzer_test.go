package urls_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/detection/urls"
	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

func newAnalyzer() *urls.Analyzer {
	return urls.NewAnalyzer(urls.Options{}, logger.NewNop())
}

func newLookalikeAnalyzer() *urls.Analyzer {
	return urls.NewAnalyzer(urls.Options{LookalikeCheck: true}, logger.NewNop())
}

func TestExtractURLs(t *testing.T) {
	got := urls.ExtractURLs("Visit https://example.com/path, or www.test.org. Also (http://foo.bar/x) and https://example.com/path again")

	assert.Equal(t, []string{
		"https://example.com/path",
		"http://www.test.org",
		"http://foo.bar/x",
	}, got)
}

func TestExtractURLsDoesNotSplitSchemeURLs(t *testing.T) {
	assert.Equal(t, []string{"https://www.who.int/news"}, urls.ExtractURLs("Read https://www.who.int/news today"))
	assert.Empty(t, urls.ExtractURLs("no links here, just http:// and www."))
}

func TestAnalyzeWithoutURLs(t *testing.T) {
	res := newAnalyzer().Analyze("Today is a beautiful day")

	assert.Equal(t, models.RiskLevelSafe, res.RiskLevel)
	assert.Equal(t, 0.9, res.Confidence)
	assert.Zero(t, res.TotalURLs)
	assert.Empty(t, res.SuspiciousURLs)
	assert.Empty(t, res.TrustedURLs)
}

func TestAnalyzeShortener(t *testing.T) {
	res := newAnalyzer().Analyze("Check this http://bit.ly/abc123 now")

	require.Len(t, res.SuspiciousURLs, 1)
	u := res.SuspiciousURLs[0]
	assert.Equal(t, "http://bit.ly/abc123", u.URL)
	assert.Equal(t, "bit.ly", u.Domain)
	assert.Equal(t, models.RiskLevelDanger, u.RiskLevel)
	assert.Equal(t, 0.8, u.Confidence)
	assert.Equal(t, urls.CategoryHighRisk, u.Category)
	assert.Equal(t, []string{"Domain is known to be used in scams"}, u.Reasons)

	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
	assert.Equal(t, 1, res.TotalURLs)
	assert.Equal(t, 1, res.SuspiciousCount)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
}

func TestAnalyzeTrustedDomain(t *testing.T) {
	res := newAnalyzer().Analyze("Read https://www.who.int/news today")

	require.Len(t, res.TrustedURLs, 1)
	u := res.TrustedURLs[0]
	assert.True(t, u.IsTrusted)
	assert.False(t, u.IsSuspicious)
	assert.Equal(t, "medical", u.Category)
	assert.Equal(t, 0.9, u.Confidence)
	assert.Equal(t, []string{"Domain is a trusted medical source"}, u.Reasons)
	assert.Equal(t, models.RiskLevelSafe, res.RiskLevel)
	assert.Equal(t, 1, res.TrustedCount)
}

func TestAnalyzeBareWWW(t *testing.T) {
	res := newAnalyzer().Analyze("see www.bbc.com.")

	require.Contains(t, res.AnalysisDetails, "http://www.bbc.com")
	assert.Equal(t, "news_media", res.AnalysisDetails["http://www.bbc.com"].Category)
}

func TestAnalyzeURLStages(t *testing.T) {
	a := newAnalyzer()

	tests := []struct {
		name       string
		url        string
		suspicious bool
		risk       models.RiskLevel
		confidence float64
		reasons    []string
	}{
		{
			name:       "phishing shape",
			url:        "http://paypal-login.example.net/x",
			suspicious: true,
			risk:       models.RiskLevelDanger,
			confidence: 0.7,
			reasons:    []string{"URL contains patterns commonly used in phishing attacks"},
		},
		{
			name:       "ip address",
			url:        "http://192.168.1.10/login",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.7,
			reasons:    []string{"URL uses IP address instead of domain name"},
		},
		{
			name:       "suspicious path heuristic",
			url:        "https://example.net/account/settings",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.6,
			reasons:    []string{urls.ReasonSuspiciousPath},
		},
		{
			name:       "hyphen heuristic",
			url:        "http://my-new-shop-deals-here.net/",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.6,
			reasons:    []string{urls.ReasonExcessiveHyphens},
		},
		{
			name:       "three hyphens are fine",
			url:        "http://my-new-shop-deals.net/",
			risk:       models.RiskLevelSafe,
			confidence: 0.7,
			reasons:    []string{},
		},
		{
			name:       "digit run heuristic",
			url:        "http://shop1234.net/",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.6,
			reasons:    []string{urls.ReasonNumberPattern},
		},
		{
			name:       "confusing characters heuristic",
			url:        "http://g00gle-1nfo.net/",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.6,
			reasons:    []string{urls.ReasonConfusingChars},
		},
		{
			name:       "reasons accumulate",
			url:        "http://sign-in-to-your-acc0unt4567.net/login",
			suspicious: true,
			risk:       models.RiskLevelCaution,
			confidence: 0.6,
			reasons: []string{
				urls.ReasonSuspiciousPath,
				urls.ReasonExcessiveHyphens,
				urls.ReasonNumberPattern,
				urls.ReasonConfusingChars,
			},
		},
		{
			name:       "unremarkable",
			url:        "https://example.net/about",
			risk:       models.RiskLevelSafe,
			confidence: 0.7,
			reasons:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.AnalyzeURL(tt.url)
			assert.Equal(t, tt.suspicious, got.IsSuspicious)
			assert.False(t, got.IsTrusted)
			assert.Equal(t, tt.risk, got.RiskLevel)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.reasons, got.Reasons)
			assert.Equal(t, "unknown", got.Category)
		})
	}
}

func TestAnalyzeURLMalformed(t *testing.T) {
	got := newAnalyzer().AnalyzeURL("http://bad-host:port/x")

	assert.True(t, got.IsSuspicious)
	assert.Equal(t, "unknown", got.Domain)
	assert.Equal(t, models.RiskLevelCaution, got.RiskLevel)
	assert.Equal(t, 0.3, got.Confidence)
	assert.Equal(t, "malformed", got.Category)
	require.Len(t, got.Reasons, 1)
	assert.Contains(t, got.Reasons[0], "Failed to parse URL:")
}

func TestAnalyzeURLNeutralDomainsStaySafe(t *testing.T) {
	a := newAnalyzer()

	for _, u := range []string{
		"https://abc.com/news",
		"https://dc.gov/",
		"https://apple.co/tv",
		"https://cbc.com/",
		"https://bücher.de/",
	} {
		t.Run(u, func(t *testing.T) {
			got := a.AnalyzeURL(u)
			assert.False(t, got.IsSuspicious)
			assert.Equal(t, models.RiskLevelSafe, got.RiskLevel)
			assert.Equal(t, 0.7, got.Confidence)
			assert.Empty(t, got.Reasons)
		})
	}
}

func TestAnalyzeURLLookalike(t *testing.T) {
	got := newLookalikeAnalyzer().AnalyzeURL("http://sbi-co.in/")
	assert.Contains(t, got.Reasons, "Domain looks similar to trusted domain sbi.co.in")
	assert.Equal(t, models.RiskLevelCaution, got.RiskLevel)

	plain := newAnalyzer().AnalyzeURL("http://sbi-co.in/")
	assert.NotContains(t, plain.Reasons, "Domain looks similar to trusted domain sbi.co.in")
}

func TestAnalyzeURLInternationalizedHost(t *testing.T) {
	got := newLookalikeAnalyzer().AnalyzeURL("http://exаmple.com/")
	assert.True(t, got.IsSuspicious)
	assert.Contains(t, got.Reasons, urls.ReasonInternationalized)

	plain := newAnalyzer().AnalyzeURL("http://exаmple.com/")
	assert.False(t, plain.IsSuspicious)
	assert.NotContains(t, plain.Reasons, urls.ReasonInternationalized)
}

func TestAnalyzeAggregatesRiskAndConfidence(t *testing.T) {
	res := newAnalyzer().Analyze("http://bit.ly/a and https://www.who.int")

	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
	assert.Equal(t, 2, res.TotalURLs)
	assert.Equal(t, 1, res.SuspiciousCount)
	assert.Equal(t, 1, res.TrustedCount)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}

func TestDomainRegistration(t *testing.T) {
	a := newAnalyzer()

	assert.False(t, a.AddSuspiciousDomain("x.example", "no_such_category"))
	assert.False(t, a.AddSuspiciousDomain("  ", urls.CategoryHighRisk))

	require.True(t, a.AddSuspiciousDomain("Evil.Example", urls.CategoryHighRisk))
	got := a.AnalyzeURL("http://evil.example/")
	assert.Equal(t, models.RiskLevelDanger, got.RiskLevel)
	assert.Contains(t, a.SuspiciousDomains()[urls.CategoryHighRisk], "evil.example")

	require.True(t, a.AddTrustedDomain("factly.in", "fact_checkers"))
	got = a.AnalyzeURL("https://factly.in/article")
	assert.True(t, got.IsTrusted)
	assert.Equal(t, "fact_checkers", got.Category)
	assert.Equal(t, []string{"factly.in"}, a.TrustedDomains()["fact_checkers"])
}

func TestIsURLShortener(t *testing.T) {
	a := newAnalyzer()

	assert.True(t, a.IsURLShortener("https://tinyurl.com/xyz"))
	assert.False(t, a.IsURLShortener("https://www.who.int"))
	assert.False(t, a.IsURLShortener("http://bad-host:port/"))
}

func TestDomainCategory(t *testing.T) {
	a := newAnalyzer()

	assert.Equal(t, "trusted_medical", a.DomainCategory("https://www.who.int"))
	assert.Equal(t, "suspicious_high_risk", a.DomainCategory("http://bit.ly/x"))
	assert.Equal(t, "unknown", a.DomainCategory("https://example.net"))
	assert.Equal(t, "malformed", a.DomainCategory("http://bad-host:port/"))
}

func TestSnapshotsAreCopies(t *testing.T) {
	a := newAnalyzer()

	snap := a.TrustedDomains()
	snap["medical"][0] = "changed"

	assert.Equal(t, "who.int", a.TrustedDomains()["medical"][0])
}

func TestAnalyzeConcurrentWithRegistration(t *testing.T) {
	a := newAnalyzer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res := a.Analyze("http://bit.ly/a https://www.who.int")
				assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			a.AddTrustedDomain("example.org", "other")
		}
	}()
	wg.Wait()
}
