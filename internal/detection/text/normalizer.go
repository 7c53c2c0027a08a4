// Package text turns raw user content into the normalized form the detectors
// score, and computes descriptive statistics about it.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxKeywords = 20

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	terminalRun     = regexp.MustCompile(`[!?.]{3,}`)
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,!?-]`)
	punctuationRun  = regexp.MustCompile(`[.,!?]+`)

	// Most specific first: a card number contains several phone and OTP shaped runs
	creditCardPattern = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
	phonePattern      = regexp.MustCompile(`\b(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	accountPattern    = regexp.MustCompile(`\b\d{8,16}\b`)
	otpPattern        = regexp.MustCompile(`\b\d{4,6}\b`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// Mask sentinels
const (
	MaskCreditCard    = "[CREDIT_CARD]"
	MaskPhoneNumber   = "[PHONE_NUMBER]"
	MaskAccountNumber = "[ACCOUNT_NUMBER]"
	MaskOTPCode       = "[OTP_CODE]"
)

// Normalizer canonicalizes text before scam matching. It is immutable after
// construction and safe for concurrent use.
type Normalizer struct {
	stopWords    map[string]struct{}
	replacements map[string]string
}

// NewNormalizer creates a normalizer with the built-in English and Hindi tables
func NewNormalizer() *Normalizer {
	stop := make(map[string]struct{}, len(englishStopWords)+len(hindiStopWords))
	for _, w := range englishStopWords {
		stop[w] = struct{}{}
	}
	for _, w := range hindiStopWords {
		stop[w] = struct{}{}
	}

	return &Normalizer{
		stopWords:    stop,
		replacements: tokenReplacements,
	}
}

// Preprocess runs the full pipeline: clean, optionally mask, normalize, replace tokens.
func (n *Normalizer) Preprocess(raw string, maskSensitive bool) string {
	if raw == "" {
		return ""
	}

	s := BasicClean(raw)
	if maskSensitive {
		s = MaskSensitive(s)
	}
	s = Normalize(s)
	return n.ApplyReplacements(s)
}

// BasicClean collapses whitespace and long runs of terminal punctuation
func BasicClean(s string) string {
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	return terminalRun.ReplaceAllStringFunc(s, func(run string) string {
		last := run[len(run)-1:]
		return last + last
	})
}

// MaskSensitive replaces card numbers, phone numbers, account numbers, OTP-like
// codes and e-mail local parts with placeholders. Applying it twice is a no-op.
func MaskSensitive(s string) string {
	s = creditCardPattern.ReplaceAllString(s, MaskCreditCard)
	s = phonePattern.ReplaceAllString(s, MaskPhoneNumber)
	s = accountPattern.ReplaceAllString(s, MaskAccountNumber)
	s = otpPattern.ReplaceAllString(s, MaskOTPCode)
	return emailPattern.ReplaceAllStringFunc(s, maskEmail)
}

func maskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at:]
	// local is ASCII by construction of emailPattern
	if len(local) <= 3 {
		return email
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + domain
}

// Normalize lowercases, drops symbols outside the allowed set and collapses
// punctuation runs to their last character.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = disallowedChars.ReplaceAllString(s, " ")
	return punctuationRun.ReplaceAllStringFunc(s, func(run string) string {
		return run[len(run)-1:]
	})
}

// ApplyReplacements substitutes tokens found in the replacement table. Punctuation
// carried by a replaced token is appended after the replacement.
func (n *Normalizer) ApplyReplacements(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		clean := strings.Trim(word, asciiPunctuation)
		repl, ok := n.replacements[strings.ToLower(clean)]
		if !ok {
			continue
		}
		words[i] = repl + punctuationOf(word)
	}
	return strings.Join(words, " ")
}

func punctuationOf(word string) string {
	var b strings.Builder
	for _, r := range word {
		if strings.ContainsRune(asciiPunctuation, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractKeywords returns up to 20 distinct content words in order of appearance
func (n *Normalizer) ExtractKeywords(s string) []string {
	processed := n.Preprocess(s, false)

	seen := make(map[string]struct{})
	keywords := make([]string, 0, maxKeywords)
	for _, word := range strings.Fields(processed) {
		clean := strings.Trim(word, asciiPunctuation)
		if utf8.RuneCountInString(clean) <= 2 {
			continue
		}
		key := strings.ToLower(clean)
		if _, stop := n.stopWords[key]; stop {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, clean)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// IsStopWord reports whether word is in the English or Hindi stop-word list
func (n *Normalizer) IsStopWord(word string) bool {
	_, ok := n.stopWords[strings.ToLower(word)]
	return ok
}
