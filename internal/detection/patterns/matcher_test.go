package patterns_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/detection/patterns"
	"truthlens/internal/domain/models"
	"truthlens/pkg/logger"
)

func newMatcher() *patterns.Matcher {
	return patterns.NewMatcher(patterns.DefaultWeights(), logger.NewNop())
}

func TestDetectScoresSingleRule(t *testing.T) {
	res := newMatcher().Detect("please share otp, it will expire in 5 minutes")

	require.Equal(t, []string{patterns.RuleOTPScam}, res.DetectedPatterns)
	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)

	det := res.PatternDetails[patterns.RuleOTPScam]
	assert.True(t, det.Detected)
	assert.Equal(t, []string{"otp", "share otp", "expire"}, det.MatchedKeywords)
	assert.Equal(t, []string{`otp.*expire.*\d+.*minutes`}, det.MatchedPatterns)
	assert.Equal(t, 3, det.KeywordMatches)
	assert.Equal(t, 1, det.PatternMatches)
	assert.InDelta(t, 3.0/11*0.3, det.ScoreBreakdown.KeywordScore, 1e-9)
	assert.InDelta(t, 1.0/6*0.5, det.ScoreBreakdown.PatternScore, 1e-9)
	assert.InDelta(t, 0.4651515, det.Confidence, 1e-6)
	assert.InDelta(t, det.Confidence, res.Confidence, 1e-9)
	assert.Len(t, res.Explanations, 1)
}

func TestDetectLotteryMessage(t *testing.T) {
	res := newMatcher().Detect("congratulations! you won 50 lakh rupees. share your one time password immediately!")

	assert.Equal(t, []string{patterns.RuleOTPScam, patterns.RuleLotteryScam}, res.DetectedPatterns)
	assert.Equal(t, models.RiskLevelDanger, res.RiskLevel)
	assert.InDelta(t, 0.3/11+0.3, res.Confidence, 1e-9)
	assert.Equal(t, []string{"one time password"}, res.PatternDetails[patterns.RuleOTPScam].MatchedKeywords)
	assert.Equal(t, []string{"congratulations"}, res.PatternDetails[patterns.RuleLotteryScam].MatchedKeywords)
}

func TestDetectCautionOnlyRule(t *testing.T) {
	res := newMatcher().Detect("breaking news shocking truth revealed, must share with everyone")

	require.Equal(t, []string{patterns.RuleFakeNews}, res.DetectedPatterns)
	assert.Equal(t, models.RiskLevelCaution, res.RiskLevel)
	assert.InDelta(t, 0.09+1.0/3*0.5+0.2, res.Confidence, 1e-9)
}

func TestDetectSafeText(t *testing.T) {
	res := newMatcher().Detect("today is a beautiful day for learning new technologies.")

	assert.Empty(t, res.DetectedPatterns)
	assert.Empty(t, res.PatternDetails)
	assert.Equal(t, models.RiskLevelSafe, res.RiskLevel)
	assert.Equal(t, 0.9, res.Confidence)
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	m := newMatcher()

	upper := m.Detect("PLEASE SHARE OTP, IT WILL EXPIRE IN 5 MINUTES")
	lower := m.Detect("please share otp, it will expire in 5 minutes")

	assert.Equal(t, lower, upper)
}

func TestMoreEvidenceNeverLowersScore(t *testing.T) {
	m := newMatcher()

	base := m.Detect("urgent").PatternDetails[patterns.RuleOTPScam]
	more := m.Detect("urgent share otp now").PatternDetails[patterns.RuleOTPScam]

	assert.GreaterOrEqual(t, more.ScoreBreakdown.TotalScore, base.ScoreBreakdown.TotalScore)
}

func TestDefaultCatalogOrder(t *testing.T) {
	assert.Equal(t, []string{
		"otp_scam", "investment_scam", "lottery_scam", "fake_news", "medical_misinformation",
		"phishing", "romance_scam", "job_scam", "emergency_scam",
	}, newMatcher().RuleNames())
}

func TestAddRule(t *testing.T) {
	m := newMatcher()

	ok := m.AddRule(patterns.Rule{
		Name:            "crypto_giveaway",
		Keywords:        []string{"Send BTC"},
		Regexes:         []string{`double.*btc`},
		Explanation:     "Nobody doubles cryptocurrency sent to them.",
		Risk:            models.RiskLevelCaution,
		ConfidenceBoost: 0.2,
	})
	require.True(t, ok)

	names := m.RuleNames()
	assert.Equal(t, "crypto_giveaway", names[len(names)-1])

	res := m.Detect("send btc and we double your btc")
	assert.Equal(t, []string{"crypto_giveaway"}, res.DetectedPatterns)
	assert.Equal(t, models.RiskLevelCaution, res.RiskLevel)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)

	rule, found := m.Rule("crypto_giveaway")
	require.True(t, found)
	assert.Equal(t, []string{"send btc"}, rule.Keywords)
}

func TestAddRuleReplacesInPlace(t *testing.T) {
	m := newMatcher()

	require.True(t, m.AddRule(patterns.Rule{
		Name:        patterns.RuleOTPScam,
		Keywords:    []string{"otp"},
		Regexes:     []string{`otp`},
		Explanation: "OTP.",
		Risk:        models.RiskLevelDanger,
	}))

	names := m.RuleNames()
	assert.Len(t, names, 9)
	assert.Equal(t, patterns.RuleOTPScam, names[0])
	rule, _ := m.Rule(patterns.RuleOTPScam)
	assert.Equal(t, []string{"otp"}, rule.Keywords)
}

func TestAddRuleRejectsInvalid(t *testing.T) {
	m := newMatcher()
	valid := patterns.Rule{
		Name:        "custom",
		Keywords:    []string{"a"},
		Regexes:     []string{"a"},
		Explanation: "x",
		Risk:        models.RiskLevelDanger,
	}

	tests := map[string]func(r *patterns.Rule){
		"no name":     func(r *patterns.Rule) { r.Name = "" },
		"reserved":    func(r *patterns.Rule) { r.Name = patterns.ReservedName },
		"no keywords": func(r *patterns.Rule) { r.Keywords = nil },
		"no patterns": func(r *patterns.Rule) { r.Regexes = nil },
		"no text":     func(r *patterns.Rule) { r.Explanation = "" },
		"bad risk":    func(r *patterns.Rule) { r.Risk = "extreme" },
		"bad regex":   func(r *patterns.Rule) { r.Regexes = []string{"("} },
		"neg boost":   func(r *patterns.Rule) { r.ConfidenceBoost = -1 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			assert.False(t, m.AddRule(r))
		})
	}
	assert.Len(t, m.RuleNames(), 9)
}

func TestUpdateWeights(t *testing.T) {
	m := newMatcher()
	text := "congratulations! you won 50 lakh rupees. share your one time password immediately!"

	assert.False(t, m.UpdateWeights(patterns.Weights{Keyword: -1, Pattern: 0.5, Threshold: 0.2}))
	assert.Equal(t, patterns.DefaultWeights(), m.Weights())

	require.True(t, m.UpdateWeights(patterns.Weights{Keyword: 0.3, Pattern: 0.5, Threshold: 0.9}))
	assert.Empty(t, m.Detect(text).DetectedPatterns)
}

func TestRulesReturnsCopies(t *testing.T) {
	m := newMatcher()

	rules := m.Rules()
	rules[0].Keywords[0] = "changed"

	rule, _ := m.Rule(patterns.RuleOTPScam)
	assert.Equal(t, "otp", rule.Keywords[0])
}

func TestDetectConcurrentWithRegistration(t *testing.T) {
	m := newMatcher()
	text := "please share otp, it will expire in 5 minutes"

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res := m.Detect(text)
				assert.Contains(t, res.DetectedPatterns, patterns.RuleOTPScam)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.AddRule(patterns.Rule{
			Name:        "late_rule",
			Keywords:    []string{"zebra"},
			Regexes:     []string{"zebra"},
			Explanation: "z",
			Risk:        models.RiskLevelCaution,
		})
	}()
	wg.Wait()
}
