// Package patterns scores normalized text against an ordered catalog of scam
// and misinformation rules.
package patterns

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

// Rule is a named scam pattern: keyword phrases, regexes and the verdict it implies
type Rule struct {
	Name            string           `json:"name"`
	Keywords        []string         `json:"keywords"`
	Regexes         []string         `json:"patterns"`
	Explanation     string           `json:"explanation"`
	Risk            models.RiskLevel `json:"risk"`
	ConfidenceBoost float64          `json:"confidence_boost"`
}

// Weights controls how keyword and regex hits turn into a rule score
type Weights struct {
	Keyword   float64 `json:"keyword_match"`
	Pattern   float64 `json:"pattern_match"`
	Threshold float64 `json:"detection_threshold"`
}

// DefaultWeights returns keyword 0.3, pattern 0.5, detection threshold 0.2
func DefaultWeights() Weights {
	return Weights{Keyword: 0.3, Pattern: 0.5, Threshold: 0.2}
}

// Validate reports whether all weights are usable
func (w Weights) Validate() error {
	if w.Keyword < 0 || w.Pattern < 0 || w.Threshold < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	return nil
}

type compiledRule struct {
	Rule
	regexes []*regexp.Regexp

	// ahocorasick.Matcher mutates per-node counters on Match
	mu       sync.Mutex
	keywords *ahocorasick.Matcher
}

func compileRule(r Rule) (*compiledRule, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if r.Name == ReservedName {
		return nil, fmt.Errorf("rule name %q is reserved", r.Name)
	}
	if len(r.Keywords) == 0 || len(r.Regexes) == 0 {
		return nil, fmt.Errorf("rule %s needs keywords and patterns", r.Name)
	}
	if strings.TrimSpace(r.Explanation) == "" {
		return nil, fmt.Errorf("rule %s needs an explanation", r.Name)
	}
	if !r.Risk.IsValid() {
		return nil, fmt.Errorf("rule %s has invalid risk %q", r.Name, r.Risk)
	}
	if r.ConfidenceBoost < 0 {
		return nil, fmt.Errorf("rule %s has negative confidence boost", r.Name)
	}

	keywords := make([]string, len(r.Keywords))
	for i, k := range r.Keywords {
		keywords[i] = strings.ToLower(k)
	}
	regexes := make([]*regexp.Regexp, len(r.Regexes))
	for i, p := range r.Regexes {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid pattern %q: %w", r.Name, p, err)
		}
		regexes[i] = re
	}

	r.Keywords = keywords
	r.Regexes = append([]string(nil), r.Regexes...)
	return &compiledRule{
		Rule:     r,
		regexes:  regexes,
		keywords: ahocorasick.NewStringMatcher(keywords),
	}, nil
}

// matchKeywords returns the matched keywords in catalog order
func (r *compiledRule) matchKeywords(text []byte) []string {
	r.mu.Lock()
	hits := r.keywords.Match(text)
	r.mu.Unlock()

	sort.Ints(hits)
	matched := make([]string, 0, len(hits))
	for _, i := range hits {
		matched = append(matched, r.Keywords[i])
	}
	return matched
}

// Matcher evaluates every rule against a normalized text. Rules are evaluated
// in registration order; registration takes the write lock.
type Matcher struct {
	mu      sync.RWMutex
	rules   []*compiledRule
	index   map[string]int
	weights Weights
	logger  *logger.Logger
}

// NewMatcher creates a matcher loaded with the built-in catalog
func NewMatcher(weights Weights, log *logger.Logger) *Matcher {
	m := &Matcher{
		index:   make(map[string]int),
		weights: weights,
		logger:  log.WithComponent("pattern-matcher"),
	}

	for _, r := range DefaultRules() {
		if !m.AddRule(r) {
			panic(fmt.Sprintf("invalid built-in rule %s", r.Name))
		}
	}

	return m
}

// Detect scores text against every rule. Only detected rules appear in the result.
func (m *Matcher) Detect(text string) *models.ScamResult {
	lower := strings.ToLower(text)
	data := []byte(lower)

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := &models.ScamResult{
		DetectedPatterns: []string{},
		PatternDetails:   make(map[string]models.DetectionResult),
		Explanations:     []string{},
		RiskLevel:        models.RiskLevelSafe,
	}

	total := 0.0
	for _, rule := range m.rules {
		det := m.evaluate(rule, lower, data)
		if !det.Detected {
			continue
		}

		result.DetectedPatterns = append(result.DetectedPatterns, rule.Name)
		result.PatternDetails[rule.Name] = det
		result.Explanations = append(result.Explanations, rule.Explanation)
		result.RiskLevel = models.MaxRisk(result.RiskLevel, rule.Risk)
		total += det.Confidence
	}

	switch {
	case len(result.DetectedPatterns) > 0:
		result.Confidence = math.Min(1, total/float64(len(result.DetectedPatterns)))
	case result.RiskLevel == models.RiskLevelSafe:
		result.Confidence = 0.9
	default:
		result.Confidence = 0.1
	}

	return result
}

func (m *Matcher) evaluate(rule *compiledRule, lower string, data []byte) models.DetectionResult {
	keywords := rule.matchKeywords(data)

	patterns := []string{}
	for i, re := range rule.regexes {
		if re.MatchString(lower) {
			patterns = append(patterns, rule.Regexes[i])
		}
	}

	keywordScore := float64(len(keywords)) / float64(len(rule.Keywords)) * m.weights.Keyword
	patternScore := float64(len(patterns)) / float64(len(rule.regexes)) * m.weights.Pattern
	totalScore := keywordScore + patternScore
	if totalScore > 0 {
		totalScore += rule.ConfidenceBoost
	}

	return models.DetectionResult{
		Detected:        totalScore >= m.weights.Threshold,
		Confidence:      math.Min(1, totalScore),
		KeywordMatches:  len(keywords),
		PatternMatches:  len(patterns),
		MatchedKeywords: keywords,
		MatchedPatterns: patterns,
		ScoreBreakdown: models.ScoreBreakdown{
			KeywordScore: keywordScore,
			PatternScore: patternScore,
			TotalScore:   totalScore,
		},
	}
}

// AddRule registers r, replacing an existing rule of the same name in place.
// It returns false when the rule is incomplete or a regex does not compile.
func (m *Matcher) AddRule(r Rule) bool {
	compiled, err := compileRule(r)
	if err != nil {
		m.logger.Warn().Err(err).Str("rule", r.Name).Msg("rejected scam rule")
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i, exists := m.index[r.Name]; exists {
		m.rules[i] = compiled
	} else {
		m.index[r.Name] = len(m.rules)
		m.rules = append(m.rules, compiled)
	}

	m.logger.Debug().Str("rule", r.Name).Int("keywords", len(r.Keywords)).Msg("registered scam rule")
	return true
}

// UpdateWeights replaces the scoring weights. Negative values are rejected.
func (m *Matcher) UpdateWeights(w Weights) bool {
	if err := w.Validate(); err != nil {
		m.logger.Warn().Err(err).Msg("rejected weights update")
		return false
	}

	m.mu.Lock()
	m.weights = w
	m.mu.Unlock()
	return true
}

// Weights returns the current scoring weights
func (m *Matcher) Weights() Weights {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.weights
}

// RuleNames lists registered rules in evaluation order
func (m *Matcher) RuleNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.rules))
	for i, r := range m.rules {
		names[i] = r.Name
	}
	return names
}

// Rule returns a copy of the named rule
func (m *Matcher) Rule(name string) (Rule, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[name]
	if !ok {
		return Rule{}, false
	}
	return copyRule(m.rules[i].Rule), true
}

// Rules returns copies of all registered rules in evaluation order
func (m *Matcher) Rules() []Rule {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rules := make([]Rule, len(m.rules))
	for i, r := range m.rules {
		rules[i] = copyRule(r.Rule)
	}
	return rules
}

func copyRule(r Rule) Rule {
	r.Keywords = append([]string(nil), r.Keywords...)
	r.Regexes = append([]string(nil), r.Regexes...)
	return r
}
