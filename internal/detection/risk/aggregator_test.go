package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/detection/patterns"
	"truthlens/internal/detection/risk"
	"truthlens/internal/domain/models"
)

func noURLs() *models.URLResult {
	return &models.URLResult{
		SuspiciousURLs:  []models.URLAnalysis{},
		TrustedURLs:     []models.URLAnalysis{},
		AnalysisDetails: map[string]models.URLAnalysis{},
		RiskLevel:       models.RiskLevelSafe,
		Confidence:      0.9,
	}
}

func safeScam() *models.ScamResult {
	return &models.ScamResult{
		DetectedPatterns: []string{},
		PatternDetails:   map[string]models.DetectionResult{},
		Explanations:     []string{},
		RiskLevel:        models.RiskLevelSafe,
		Confidence:       0.9,
	}
}

func scam(level models.RiskLevel, confidence float64, names ...string) *models.ScamResult {
	s := safeScam()
	s.RiskLevel = level
	s.Confidence = confidence
	for _, n := range names {
		s.DetectedPatterns = append(s.DetectedPatterns, n)
		s.Explanations = append(s.Explanations, "explains "+n+".")
		s.PatternDetails[n] = models.DetectionResult{Detected: true, Confidence: confidence}
	}
	return s
}

func TestCombineDangerScam(t *testing.T) {
	res := risk.NewAggregator().Combine(
		scam(models.RiskLevelDanger, 0.3/11+0.3, patterns.RuleOTPScam, patterns.RuleLotteryScam),
		noURLs(),
	)

	assert.True(t, res.IsSuspicious)
	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
	assert.Equal(t, 0.7, res.Confidence)
	assert.Equal(t, models.ConfidenceHigh, res.ConfidenceLevel)
	assert.Equal(t, "explains otp_scam. explains lottery_scam.", res.Explanation)
	require.NotNil(t, res.DetailedExplanation)
	assert.Equal(t, "Detected patterns: otp_scam, lottery_scam", *res.DetailedExplanation)
	assert.Equal(t, []string{patterns.RuleOTPScam, patterns.RuleLotteryScam}, res.DetectedPatterns)
	assert.Len(t, res.Recommendations, 4)
	assert.Equal(t, "❌ Do not take any action mentioned in this message", res.Recommendations[0])
	assert.Len(t, res.ActionItems, 3)
	assert.Equal(t, []string{
		"OTP (One-Time Password) codes are meant to be used only by you. Never share them with anyone, even if they claim to be from your bank.",
	}, res.EducationalTips)
	assert.Equal(t, models.UIIndicators{Color: "red", Icon: "🚨", Urgency: "high", ConfidenceBar: 70}, res.UIIndicators)
	assert.Len(t, res.PatternDetails.ScamPatterns, 2)
}

func TestCombineCautionScam(t *testing.T) {
	res := risk.NewAggregator().Combine(scam(models.RiskLevelCaution, 0.456667, patterns.RuleFakeNews), noURLs())

	assert.Equal(t, models.RiskLevelCaution, res.RiskLevel)
	assert.InDelta(t, 0.7*0.456667+0.27, res.Confidence, 1e-9)
	assert.Equal(t, models.ConfidenceMedium, res.ConfidenceLevel)
	assert.Equal(t, []string{
		"⚠️ Verify this information from reliable sources",
		"🔍 Check official websites or trusted news sources",
		"🤔 Be skeptical of sensational or urgent claims",
	}, res.Recommendations)
	assert.Equal(t, "Pause: Don't act immediately on this information", res.ActionItems[0])
	assert.Empty(t, res.EducationalTips)
	assert.Equal(t, "yellow", res.UIIndicators.Color)
	assert.Equal(t, 59, res.UIIndicators.ConfidenceBar)
	assert.Len(t, res.FactCheckSources, 3)
}

func TestCombineCautionFloor(t *testing.T) {
	res := risk.NewAggregator().Combine(scam(models.RiskLevelCaution, 0.2, patterns.RuleFakeNews), noURLs())

	assert.Equal(t, 0.5, res.Confidence)
	assert.Equal(t, models.ConfidenceMedium, res.ConfidenceLevel)
}

func TestCombineSafe(t *testing.T) {
	urls := noURLs()
	urls.TrustedURLs = []models.URLAnalysis{{URL: "https://www.who.int", IsTrusted: true, Confidence: 0.9}}
	urls.TotalURLs = 1
	urls.TrustedCount = 1

	res := risk.NewAggregator().Combine(safeScam(), urls)

	assert.False(t, res.IsSuspicious)
	assert.Equal(t, models.RiskLevelSafe, res.RiskLevel)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
	assert.Equal(t, "This content appears to be safe. No suspicious patterns were detected.", res.Explanation)
	assert.Nil(t, res.DetailedExplanation)
	assert.Empty(t, res.DetectedPatterns)
	assert.Equal(t, []string{"✅ This content appears to be safe", "📚 Continue learning about digital safety"}, res.Recommendations)
	assert.Empty(t, res.ActionItems)
	assert.Empty(t, res.EducationalTips)
	assert.Empty(t, res.FactCheckSources)
	assert.Equal(t, models.UIIndicators{Color: "green", Icon: "✅", Urgency: "low", ConfidenceBar: 90}, res.UIIndicators)
}

func TestCombineSafeFloor(t *testing.T) {
	s := safeScam()
	urls := noURLs()
	urls.Confidence = 0.7

	res := risk.NewAggregator().Combine(s, urls)

	assert.InDelta(t, 0.84, res.Confidence, 1e-9)

	s.Confidence = 0.5
	assert.Equal(t, 0.8, risk.NewAggregator().Combine(s, urls).Confidence)
}

func TestCombineSuspiciousURLOnly(t *testing.T) {
	urls := noURLs()
	bad := models.URLAnalysis{URL: "http://bit.ly/x", IsSuspicious: true, RiskLevel: models.RiskLevelDanger, Confidence: 0.8}
	urls.SuspiciousURLs = []models.URLAnalysis{bad}
	urls.AnalysisDetails[bad.URL] = bad
	urls.RiskLevel = models.RiskLevelDanger
	urls.Confidence = 0.8

	res := risk.NewAggregator().Combine(safeScam(), urls)

	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
	assert.InDelta(t, 0.87, res.Confidence, 1e-9)
	assert.Equal(t, []string{"suspicious_urls"}, res.DetectedPatterns)
	assert.Equal(t, "This content contains suspicious links that may be harmful.", res.Explanation)
	require.NotNil(t, res.DetailedExplanation)
	assert.Equal(t, "Found 1 suspicious URLs", *res.DetailedExplanation)
	assert.Contains(t, res.PatternDetails.URLAnalysis, bad.URL)
}

func TestCombineLimitsExplanationsAndTips(t *testing.T) {
	res := risk.NewAggregator().Combine(
		scam(models.RiskLevelDanger, 0.5, patterns.RuleOTPScam, patterns.RuleInvestmentScam, patterns.RulePhishing),
		noURLs(),
	)

	assert.Equal(t, "explains otp_scam. explains investment_scam.", res.Explanation)
	require.Len(t, res.EducationalTips, 2)
	assert.Contains(t, res.EducationalTips[0], "OTP")
	assert.Contains(t, res.EducationalTips[1], "Legitimate investments")
}

func TestCombineCautionAppendsPatternRecommendation(t *testing.T) {
	res := risk.NewAggregator().Combine(
		scam(models.RiskLevelCaution, 0.5, patterns.RuleFakeNews, patterns.RuleMedicalMisinformation),
		noURLs(),
	)

	require.Len(t, res.Recommendations, 4)
	assert.Equal(t, "👨‍⚕️ Always consult qualified doctors for medical advice", res.Recommendations[3])
	// PIB is listed under both rules
	assert.Len(t, res.FactCheckSources, 5)
}

func TestCombineCautionWithoutExplanations(t *testing.T) {
	s := safeScam()
	s.RiskLevel = models.RiskLevelCaution

	res := risk.NewAggregator().Combine(s, noURLs())

	assert.Equal(t, "This content may need verification. Please be cautious.", res.Explanation)
}

func TestCombineCapsConfidence(t *testing.T) {
	urls := noURLs()
	urls.Confidence = 1

	res := risk.NewAggregator().Combine(scam(models.RiskLevelDanger, 1, patterns.RulePhishing), urls)

	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, 100, res.UIIndicators.ConfidenceBar)
}
