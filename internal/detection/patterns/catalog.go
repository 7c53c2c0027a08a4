package patterns

import (
	"truthlens/internal/domain/models"
)

// Built-in rule names
const (
	RuleOTPScam               = "otp_scam"
	RuleInvestmentScam        = "investment_scam"
	RuleLotteryScam           = "lottery_scam"
	RuleFakeNews              = "fake_news"
	RuleMedicalMisinformation = "medical_misinformation"
	RulePhishing              = "phishing"
	RuleRomanceScam           = "romance_scam"
	RuleJobScam               = "job_scam"
	RuleEmergencyScam         = "emergency_scam"
)

// ReservedName is the synthetic pattern the aggregator adds for flagged URLs
const ReservedName = "suspicious_urls"

// DefaultRules returns the built-in scam catalog in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: RuleOTPScam,
			Keywords: []string{
				"otp", "one time password", "verification code", "share otp",
				"urgent", "expire", "blocked account", "verify account",
				"security code", "pin code", "confirm otp",
			},
			Regexes: []string{
				`otp.*share`,
				`verification.*code.*immediate`,
				`urgent.*otp`,
				`account.*blocked.*otp`,
				`share.*\d{4,6}.*code`,
				`otp.*expire.*\d+.*minutes`,
			},
			Explanation:     "This looks like an OTP scam. Never share OTP codes with anyone, including bank officials.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.3,
		},
		{
			Name: RuleInvestmentScam,
			Keywords: []string{
				"double money", "guaranteed return", "investment opportunity",
				"quick money", "earn lakhs", "profit guaranteed", "risk free",
				"trading", "forex", "cryptocurrency", "stock tip",
			},
			Regexes: []string{
				`double.*money.*\d+.*days`,
				`guaranteed.*\d+%.*return`,
				`earn.*lakhs.*month`,
				`risk.*free.*investment`,
				`profit.*guaranteed.*\d+%`,
				`trading.*guaranteed.*profit`,
			},
			Explanation:     "This appears to be an investment scam. Genuine investments never guarantee high returns.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.25,
		},
		{
			Name: RuleLotteryScam,
			Keywords: []string{
				"congratulations", "lottery", "winner", "claim prize",
				"lucky draw", "jackpot", "won prize", "selected winner",
				"lottery ticket", "prize money", "claim reward",
			},
			Regexes: []string{
				`congratulations.*winner`,
				`lottery.*claim.*prize`,
				`lucky.*draw.*won`,
				`selected.*winner.*lottery`,
				`won.*prize.*\d+.*lakhs?`,
				`claim.*prize.*immediately`,
			},
			Explanation:     "This looks like a lottery scam. You cannot win a lottery you never entered.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.3,
		},
		{
			Name: RuleFakeNews,
			Keywords: []string{
				"breaking news", "shocking truth", "doctors hate this",
				"secret revealed", "must share", "viral video", "exposed",
				"conspiracy", "hidden truth", "they don't want you to know",
			},
			Regexes: []string{
				`doctors.*hate.*this`,
				`shocking.*truth.*revealed`,
				`secret.*\w+.*exposed`,
				`breaking.*news.*viral`,
				`must.*share.*everyone`,
				`they.*don't.*want.*you.*know`,
			},
			Explanation:     "This content uses clickbait language often found in fake news.",
			Risk:            models.RiskLevelCaution,
			ConfidenceBoost: 0.2,
		},
		{
			Name: RuleMedicalMisinformation,
			Keywords: []string{
				"cure cancer", "miracle cure", "instant relief", "ancient secret",
				"doctors don't want", "natural remedy", "home remedy cures",
				"pharmaceutical conspiracy", "big pharma", "hidden cure",
			},
			Regexes: []string{
				`cure.*cancer.*\d+.*days`,
				`miracle.*cure.*disease`,
				`doctors.*don't.*want`,
				`ancient.*secret.*cure`,
				`natural.*remedy.*cures.*\w+`,
				`home.*remedy.*instant.*relief`,
			},
			Explanation:     "Be careful of medical claims without scientific evidence. Consult real doctors.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.25,
		},
		{
			Name: RulePhishing,
			Keywords: []string{
				"account blocked", "verify account", "click link", "login immediately",
				"suspend account", "update details", "confirm identity",
				"security alert", "unusual activity", "verify now",
			},
			Regexes: []string{
				`account.*blocked.*verify`,
				`click.*link.*immediately`,
				`account.*suspend.*urgent`,
				`verify.*account.*\d+.*hours`,
				`unusual.*activity.*verify`,
				`security.*alert.*click.*here`,
			},
			Explanation:     "This looks like a phishing attempt to steal your login credentials.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.3,
		},
		{
			Name: RuleRomanceScam,
			Keywords: []string{
				"love you", "lonely", "widowed", "military officer", "overseas",
				"send money", "emergency fund", "stuck abroad", "customs fee",
				"travel money", "visa fee",
			},
			Regexes: []string{
				`love.*you.*send.*money`,
				`military.*officer.*overseas`,
				`stuck.*abroad.*need.*money`,
				`customs.*fee.*urgent`,
				`widowed.*lonely.*money`,
				`emergency.*fund.*help`,
			},
			Explanation:     "This appears to be a romance scam. Be cautious of online relationships requesting money.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.25,
		},
		{
			Name: RuleJobScam,
			Keywords: []string{
				"work from home", "easy money", "part time job", "registration fee",
				"earning opportunity", "no experience needed", "high salary",
				"join immediately", "limited seats", "advance payment",
			},
			Regexes: []string{
				`work.*from.*home.*\d+.*per.*day`,
				`registration.*fee.*job`,
				`advance.*payment.*job`,
				`easy.*money.*part.*time`,
				`high.*salary.*no.*experience`,
				`limited.*seats.*join.*immediately`,
			},
			Explanation:     "This looks like a job scam. Legitimate employers don't ask for upfront payments.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.25,
		},
		{
			Name: RuleEmergencyScam,
			Keywords: []string{
				"urgent help", "family emergency", "accident", "hospital",
				"bail money", "police station", "immediate help", "critical condition",
				"surgery needed", "ransom",
			},
			Regexes: []string{
				`urgent.*help.*money`,
				`family.*emergency.*send`,
				`accident.*hospital.*money`,
				`bail.*money.*urgent`,
				`critical.*condition.*fund`,
				`surgery.*needed.*immediately`,
			},
			Explanation:     "This may be an emergency scam. Always verify directly with family members.",
			Risk:            models.RiskLevelDanger,
			ConfidenceBoost: 0.3,
		},
	}
}
