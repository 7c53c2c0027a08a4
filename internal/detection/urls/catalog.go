package urls

import (
	"regexp"
	"strings"

	"truthlens/internal/domain/models"
)

// Suspicious category names
const (
	CategoryHighRisk      = "high_risk"
	CategoryMediumRisk    = "medium_risk"
	CategoryURLShorteners = "url_shorteners"
	CategoryFreeHosting   = "free_hosting"
)

// DomainCategory is a named list of domain fragments
type DomainCategory struct {
	Name    string
	Domains []string
}

// DomainCatalog is an ordered list of categories. The first category containing
// a fragment found in a domain wins, so order is part of the catalog's meaning.
type DomainCatalog struct {
	categories []DomainCategory
}

// NewDomainCatalog copies categories into a new catalog
func NewDomainCatalog(categories []DomainCategory) *DomainCatalog {
	c := &DomainCatalog{}
	for _, cat := range categories {
		c.categories = append(c.categories, DomainCategory{
			Name:    cat.Name,
			Domains: append([]string(nil), cat.Domains...),
		})
	}
	return c
}

// Match returns the first category with a fragment contained in domain
func (c *DomainCatalog) Match(domain string) (category, fragment string, ok bool) {
	for _, cat := range c.categories {
		for _, d := range cat.Domains {
			if strings.Contains(domain, d) {
				return cat.Name, d, true
			}
		}
	}
	return "", "", false
}

// Add appends domain to category, creating the category at the end when create is set
func (c *DomainCatalog) Add(category, domain string, create bool) bool {
	i := c.index(category)
	if i < 0 {
		if !create {
			return false
		}
		c.categories = append(c.categories, DomainCategory{Name: category})
		i = len(c.categories) - 1
	}
	c.categories[i].Domains = append(c.categories[i].Domains, domain)
	return true
}

// Domains returns the fragments of one category
func (c *DomainCatalog) Domains(category string) []string {
	i := c.index(category)
	if i < 0 {
		return nil
	}
	return append([]string(nil), c.categories[i].Domains...)
}

// Snapshot returns a copy of the catalog keyed by category
func (c *DomainCatalog) Snapshot() map[string][]string {
	out := make(map[string][]string, len(c.categories))
	for _, cat := range c.categories {
		out[cat.Name] = append([]string(nil), cat.Domains...)
	}
	return out
}

func (c *DomainCatalog) index(category string) int {
	for i, cat := range c.categories {
		if cat.Name == category {
			return i
		}
	}
	return -1
}

// DefaultSuspiciousDomains returns the built-in suspicious catalog
func DefaultSuspiciousDomains() []DomainCategory {
	return []DomainCategory{
		{Name: CategoryHighRisk, Domains: []string{
			// shorteners
			"bit.ly", "tinyurl.com", "ow.ly", "t.co", "goo.gl",
			"tiny.cc", "is.gd", "buff.ly", "bitly.com", "short.link",
			// TLDs
			".tk", ".ml", ".ga", ".cf",
			// known scam domains
			"free-money.com", "win-lottery.net", "claim-prize.org",
		}},
		{Name: CategoryMediumRisk, Domains: []string{
			"blogspot.com", "wordpress.com", "wix.com", "weebly.com",
			"sites.google.com", "github.io", "netlify.app",
			"facebook.com/groups", "telegram.me", "whatsapp.com/channel",
		}},
		{Name: CategoryURLShorteners, Domains: []string{
			"bit.ly", "tinyurl.com", "ow.ly", "t.co", "goo.gl",
			"tiny.cc", "is.gd", "buff.ly", "short.link", "tiny.one",
		}},
		{Name: CategoryFreeHosting, Domains: []string{
			"blogspot.com", "wordpress.com", "wix.com", "weebly.com",
			"sites.google.com", "github.io", "netlify.app", "herokuapp.com",
		}},
	}
}

// DefaultTrustedDomains returns the built-in trusted catalog
func DefaultTrustedDomains() []DomainCategory {
	return []DomainCategory{
		{Name: "news_media", Domains: []string{
			"bbc.com", "reuters.com", "cnn.com", "nytimes.com",
			"theguardian.com", "washingtonpost.com",
			"thehindu.com", "indianexpress.com", "ndtv.com",
			"hindustantimes.com", "timesofindia.com", "news18.com",
			"aajtak.in", "zeenews.india.com",
		}},
		{Name: "government", Domains: []string{
			"gov.in", "nic.in", "india.gov.in", "mygov.in",
			"rbi.org.in", "sebi.gov.in", "eci.gov.in",
			"gov.uk", "gov.au", "canada.ca", "usa.gov",
		}},
		{Name: "medical", Domains: []string{
			"who.int", "mohfw.gov.in", "cdc.gov", "nih.gov",
			"mayoclinic.org", "webmd.com", "healthline.com",
			"nhs.uk", "aiims.edu",
		}},
		{Name: "financial", Domains: []string{
			"sbi.co.in", "hdfcbank.com", "icicibank.com",
			"axisbank.com", "kotakbank.com", "rbi.org.in",
			"nseindia.com", "bseindia.com",
		}},
		{Name: "education", Domains: []string{
			"edu", "ac.in", "edu.in", "mit.edu", "stanford.edu",
			"harvard.edu", "iit.ac.in", "iisc.ac.in",
		}},
		{Name: "technology", Domains: []string{
			"google.com", "microsoft.com", "apple.com",
			"amazon.com", "facebook.com", "twitter.com",
			"linkedin.com", "github.com",
		}},
	}
}

// ShapeRule flags URLs by their textual shape rather than their domain
type ShapeRule struct {
	Name        string
	Regexes     []*regexp.Regexp
	Risk        models.RiskLevel
	Explanation string
}

func mustCompileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

// DefaultShapeRules returns the built-in URL shape rules in evaluation order
func DefaultShapeRules() []ShapeRule {
	return []ShapeRule{
		{
			Name: "phishing_patterns",
			Regexes: mustCompileAll(
				`.*-login\..*`,
				`.*verify-account\..*`,
				`.*secure-update\..*`,
				`.*banking-alert\..*`,
				`.*prize-claim\..*`,
			),
			Risk:        models.RiskLevelDanger,
			Explanation: "URL contains patterns commonly used in phishing attacks",
		},
		{
			Name: "suspicious_subdomains",
			Regexes: mustCompileAll(
				`.*\.secure\..*`,
				`.*\.verify\..*`,
				`.*\.update\..*`,
				`.*\.alert\..*`,
				`.*\.urgent\..*`,
			),
			Risk:        models.RiskLevelCaution,
			Explanation: "URL uses suspicious subdomain patterns",
		},
		{
			Name:        "ip_addresses",
			Regexes:     mustCompileAll(`https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`),
			Risk:        models.RiskLevelCaution,
			Explanation: "URL uses IP address instead of domain name",
		},
		{
			Name:        "excessive_subdomains",
			Regexes:     mustCompileAll(`https?://\w+\.\w+\.\w+\.\w+\.\w+\.`),
			Risk:        models.RiskLevelCaution,
			Explanation: "URL has excessive subdomains which may indicate deception",
		},
	}
}

var suspiciousReasons = map[string]string{
	CategoryHighRisk:      "Domain is known to be used in scams",
	CategoryMediumRisk:    "Domain is on free hosting platform",
	CategoryURLShorteners: "URL shortener often used to hide real destination",
	CategoryFreeHosting:   "Free hosting platform may host unreliable content",
}

func suspiciousReason(category string) string {
	if reason, ok := suspiciousReasons[category]; ok {
		return reason
	}
	return "Domain flagged as suspicious"
}
