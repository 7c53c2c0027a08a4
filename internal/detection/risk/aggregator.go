// Package risk merges the scam and URL sub-verdicts into the final result.
package risk

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"truthlens/internal/detection/patterns"
	"truthlens/internal/domain/models"
)

const (
	maxExplanations    = 2
	maxRecommendations = 4
	maxActionItems     = 3
	maxTips            = 2

	scamWeight = 0.7
	urlWeight  = 0.3
)

// Aggregator combines sub-results. It holds no state and is safe for concurrent use.
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Combine merges the pattern and URL results into a verdict. Request metadata,
// identifiers and timings are left for the caller to fill in.
func (a *Aggregator) Combine(scam *models.ScamResult, urls *models.URLResult) *models.AnalysisResult {
	level := models.MaxRisk(scam.RiskLevel, urls.RiskLevel)
	confidence := combinedConfidence(scam.Confidence, urls.Confidence, level)

	detected := append([]string{}, scam.DetectedPatterns...)
	if len(urls.SuspiciousURLs) > 0 {
		detected = append(detected, patterns.ReservedName)
	}

	indicators := uiIndicators[level]
	indicators.ConfidenceBar = int(math.Round(confidence * 100))

	return &models.AnalysisResult{
		IsSuspicious:        level == models.RiskLevelCaution || level == models.RiskLevelDanger,
		RiskLevel:           level,
		Confidence:          confidence,
		ConfidenceLevel:     models.ConfidenceLevelFor(confidence),
		Explanation:         explanation(scam, urls, level),
		DetailedExplanation: detailedExplanation(scam, urls),
		DetectedPatterns:    detected,
		PatternDetails: models.PatternDetails{
			ScamPatterns: scam.PatternDetails,
			URLAnalysis:  urls.AnalysisDetails,
		},
		Recommendations:  recommendations(scam.DetectedPatterns, level),
		ActionItems:      actionItems(level),
		EducationalTips:  tips(scam.DetectedPatterns),
		FactCheckSources: sources(scam.DetectedPatterns),
		UIIndicators:     indicators,
	}
}

func combinedConfidence(scam, url float64, level models.RiskLevel) float64 {
	combined := scamWeight*scam + urlWeight*url
	return math.Min(1, math.Max(combined, confidenceFloors[level]))
}

func explanation(scam *models.ScamResult, urls *models.URLResult, level models.RiskLevel) string {
	parts := append([]string{}, scam.Explanations...)
	if len(urls.SuspiciousURLs) > 0 {
		parts = append(parts, explanationSuspiciousURLs)
	}

	if len(parts) == 0 {
		if level == models.RiskLevelSafe {
			return explanationSafe
		}
		return explanationNeedsCheck
	}

	if len(parts) > maxExplanations {
		parts = parts[:maxExplanations]
	}
	return strings.Join(parts, " ")
}

func detailedExplanation(scam *models.ScamResult, urls *models.URLResult) *string {
	var details []string
	if len(scam.DetectedPatterns) > 0 {
		details = append(details, "Detected patterns: "+strings.Join(scam.DetectedPatterns, ", "))
	}
	if n := len(urls.SuspiciousURLs); n > 0 {
		details = append(details, fmt.Sprintf("Found %d suspicious URLs", n))
	}

	if len(details) == 0 {
		return nil
	}
	s := strings.Join(details, ". ")
	return &s
}

func recommendations(detected []string, level models.RiskLevel) []string {
	out := append([]string{}, baseRecommendations[level]...)
	for _, m := range patternRecommendations {
		if slices.Contains(detected, m.pattern) {
			out = append(out, m.text)
		}
	}
	return truncate(out, maxRecommendations)
}

func actionItems(level models.RiskLevel) []string {
	return truncate(append([]string{}, baseActionItems[level]...), maxActionItems)
}

func tips(detected []string) []string {
	out := []string{}
	for _, m := range educationalTips {
		if slices.Contains(detected, m.pattern) {
			out = append(out, m.text)
		}
	}
	return truncate(out, maxTips)
}

func sources(detected []string) []models.FactCheckSource {
	out := []models.FactCheckSource{}
	seen := make(map[string]struct{})
	for _, name := range detected {
		for _, src := range factCheckSources[name] {
			if _, dup := seen[src.URL]; dup {
				continue
			}
			seen[src.URL] = struct{}{}
			out = append(out, src)
		}
	}
	return out
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
