package text

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"

	"truthlens/internal/domain/models"
)

const displayLimit = 500

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	urlMarker      = regexp.MustCompile(`https?://|www\.`)
	phoneCandidate = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)
	scriptBlock    = regexp.MustCompile(`(?is)<script.*?</script>`)
	javascriptURI  = regexp.MustCompile(`(?i)javascript:`)
)

// ComputeStats returns descriptive statistics of raw text. Phone numbers are
// parsed with region as the default when they carry no country code.
func ComputeStats(s string, region string) models.TextStats {
	chars := utf8.RuneCountInString(s)
	words := strings.Fields(s)

	stats := models.TextStats{
		CharCount:        chars,
		WordCount:        len(words),
		SentenceCount:    countSentences(s),
		HasURLs:          urlMarker.MatchString(s),
		PhoneNumberCount: countPhoneNumbers(s, region),
	}

	letters := 0
	for _, w := range words {
		letters += utf8.RuneCountInString(strings.Trim(w, asciiPunctuation))
	}
	stats.AvgWordLength = round(float64(letters)/float64(max(len(words), 1)), 2)

	upper, punct := 0, 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper++
		case strings.ContainsRune(asciiPunctuation, r):
			punct++
		case unicode.IsDigit(r):
			stats.HasNumbers = true
		}
	}
	if chars > 0 {
		stats.UppercaseRatio = round(float64(upper)/float64(chars), 3)
		stats.PunctuationRatio = round(float64(punct)/float64(chars), 3)
	}
	stats.HasExcessiveCaps = stats.UppercaseRatio > 0.3
	stats.HasExcessivePunctuation = stats.PunctuationRatio > 0.1

	if len(words) > 0 {
		stats.ReadabilityScore = readability(
			float64(len(words))/float64(stats.SentenceCount),
			float64(chars)/float64(len(words)),
		)
	}

	return stats
}

// readability rewards sentences near 17.5 words and words near 5 characters
func readability(wordsPerSentence, charsPerWord float64) float64 {
	sentenceScore := math.Max(0, 1-math.Abs(wordsPerSentence-17.5)/17.5)
	wordScore := math.Max(0, 1-math.Abs(charsPerWord-5)/5)
	return round((sentenceScore+wordScore)/2, 3)
}

// countSentences counts the segments between terminators, so text ending
// in punctuation carries one empty trailing segment
func countSentences(s string) int {
	return len(sentenceSplit.Split(s, -1))
}

func countPhoneNumbers(s, region string) int {
	n := 0
	for _, candidate := range phoneCandidate.FindAllString(s, -1) {
		num, err := phonenumbers.Parse(candidate, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsPossibleNumber(num) {
			n++
		}
	}
	return n
}

// CleanForDisplay strips script blocks and javascript: URIs and truncates the
// result for safe echoing in logs and terminals.
func CleanForDisplay(s string) string {
	s = scriptBlock.ReplaceAllString(s, "")
	s = javascriptURI.ReplaceAllString(s, "")
	if utf8.RuneCountInString(s) > displayLimit {
		s = string([]rune(s)[:displayLimit]) + "..."
	}
	return s
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
