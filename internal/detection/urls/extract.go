package urls

import (
	"regexp"
	"strings"
)

// A bare www. token is only matched where no scheme precedes it, since the
// scheme alternative consumes the whole URL first.
var urlPattern = regexp.MustCompile("(?i)https?://[^\\s<>\"{}|\\\\^`\\[\\]]+|www\\.[^\\s<>\"{}|\\\\^`\\[\\]]+")

const trailingPunctuation = ".,;:!?)'\""

// ExtractURLs returns the distinct URLs in s in order of first appearance.
// Bare www. matches are prefixed with http://.
func ExtractURLs(s string) []string {
	matches := urlPattern.FindAllString(s, -1)

	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, trailingPunctuation)
		if !hasHostPart(m) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(m), "www.") {
			m = "http://" + m
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		urls = append(urls, m)
	}
	return urls
}

func hasHostPart(m string) bool {
	lower := strings.ToLower(m)
	for _, prefix := range []string{"https://", "http://", "www."} {
		if strings.HasPrefix(lower, prefix) {
			return len(m) > len(prefix)
		}
	}
	return false
}
