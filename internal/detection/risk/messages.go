package risk

import (
	"truthlens/internal/detection/patterns"
	"truthlens/internal/domain/models"
)

const (
	explanationSafe           = "This content appears to be safe. No suspicious patterns were detected."
	explanationNeedsCheck     = "This content may need verification. Please be cautious."
	explanationSuspiciousURLs = "This content contains suspicious links that may be harmful."
)

var baseRecommendations = map[models.RiskLevel][]string{
	models.RiskLevelDanger: {
		"❌ Do not take any action mentioned in this message",
		"🚫 Do not share personal information, OTP codes, or passwords",
		"📞 Verify information through official channels",
		"👥 Ask a trusted family member or friend for advice",
	},
	models.RiskLevelCaution: {
		"⚠️ Verify this information from reliable sources",
		"🔍 Check official websites or trusted news sources",
		"🤔 Be skeptical of sensational or urgent claims",
	},
	models.RiskLevelSafe: {
		"✅ This content appears to be safe",
		"📚 Continue learning about digital safety",
	},
}

type patternMessage struct {
	pattern string
	text    string
}

// Appended after the generic recommendations, in this order
var patternRecommendations = []patternMessage{
	{patterns.RuleOTPScam, "🔐 Remember: Banks NEVER ask for OTP over phone/message"},
	{patterns.RuleInvestmentScam, "💰 Consult certified financial advisors for investments"},
	{patterns.RuleMedicalMisinformation, "👨‍⚕️ Always consult qualified doctors for medical advice"},
}

var baseActionItems = map[models.RiskLevel][]string{
	models.RiskLevelDanger: {
		"Stop: Do not proceed with any requests in this message",
		"Verify: Contact the organization directly using official numbers",
		"Report: Report this content to relevant authorities",
	},
	models.RiskLevelCaution: {
		"Pause: Don't act immediately on this information",
		"Research: Look for reliable sources that confirm this",
		"Discuss: Talk to knowledgeable people about this",
	},
}

// Catalog order
var educationalTips = []patternMessage{
	{patterns.RuleOTPScam, "OTP (One-Time Password) codes are meant to be used only by you. Never share them with anyone, even if they claim to be from your bank."},
	{patterns.RuleInvestmentScam, "Legitimate investments carry risk and never guarantee returns. Be suspicious of 'get rich quick' schemes."},
	{patterns.RulePhishing, "Always verify requests for personal information by contacting the organization directly through official channels."},
}

var factCheckSources = map[string][]models.FactCheckSource{
	patterns.RuleFakeNews: {
		{Name: "PIB Fact Check", URL: "https://factcheck.pib.gov.in"},
		{Name: "Alt News", URL: "https://www.altnews.in"},
		{Name: "BOOM Live", URL: "https://www.boomlive.in"},
	},
	patterns.RuleMedicalMisinformation: {
		{Name: "World Health Organization", URL: "https://www.who.int"},
		{Name: "Ministry of Health and Family Welfare", URL: "https://www.mohfw.gov.in"},
		{Name: "PIB Fact Check", URL: "https://factcheck.pib.gov.in"},
	},
}

var uiIndicators = map[models.RiskLevel]models.UIIndicators{
	models.RiskLevelDanger:  {Color: "red", Icon: "🚨", Urgency: "high"},
	models.RiskLevelCaution: {Color: "yellow", Icon: "⚠️", Urgency: "medium"},
	models.RiskLevelSafe:    {Color: "green", Icon: "✅", Urgency: "low"},
}

var confidenceFloors = map[models.RiskLevel]float64{
	models.RiskLevelDanger:  0.7,
	models.RiskLevelCaution: 0.5,
	models.RiskLevelSafe:    0.8,
}
