package text_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/detection/text"
)

func TestPreprocessExpandsAbbreviations(t *testing.T) {
	n := text.NewNormalizer()

	got := n.Preprocess("Congratulations! You won 50 lakh rupees. Share your OTP immediately!", true)

	assert.Equal(t, "congratulations! you won 50 lakh rupees. share your one time password immediately!", got)
}

func TestPreprocessEmpty(t *testing.T) {
	assert.Equal(t, "", text.NewNormalizer().Preprocess("", true))
}

func TestPreprocessStripsSymbolsAndCollapsesPunctuation(t *testing.T) {
	n := text.NewNormalizer()

	assert.Equal(t, "hello, world! win", n.Preprocess("Hello,   WORLD!!! #win $$$", false))
	assert.Equal(t, "wait?", n.Preprocess("wait?!?!?", false))
}

func TestPreprocessKeepsPunctuationOfReplacedTokens(t *testing.T) {
	n := text.NewNormalizer()

	assert.Equal(t, "you r gr8, please reply!", n.Preprocess("u r gr8, pls reply!", false))
	assert.Equal(t, "is this your? call for help", n.Preprocess("is this ur? call 4 help", false))
	assert.Equal(t, "i will receive it", n.Preprocess("I will recieve it", false))
}

func TestPreprocessKeepsNonLatinScripts(t *testing.T) {
	got := text.NewNormalizer().Preprocess("नमस्ते दोस्त, OTP भेजो", false)

	assert.Contains(t, got, "नमस्ते")
	assert.Contains(t, got, "one time password")
}

func TestPreprocessIsDeterministic(t *testing.T) {
	n := text.NewNormalizer()
	in := "URGENT!!! Your SBI account 12345678 is blocked, call 987-654-3210 or mail help.desk@sbi-alerts.com"

	assert.Equal(t, n.Preprocess(in, true), n.Preprocess(in, true))
}

func TestMaskSensitive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"credit card", "Card 4111 1111 1111 1111 now", "Card [CREDIT_CARD] now"},
		{"phone", "Call 987-654-3210", "Call [PHONE_NUMBER]"},
		{"account", "acct 12345678", "acct [ACCOUNT_NUMBER]"},
		{"otp", "Your code is 482913", "Your code is [OTP_CODE]"},
		{"email", "mail john.doe@example.com", "mail j******e@example.com"},
		{"short email", "mail bob@example.com", "mail bob@example.com"},
		{"short numbers untouched", "won 50 lakh", "won 50 lakh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.MaskSensitive(tt.in))
		})
	}
}

func TestMaskSensitiveIsIdempotent(t *testing.T) {
	inputs := []string{
		"Card 4111-1111-1111-1111, OTP 4829, acct 123456789012, call 987.654.3210",
		"write to john.doe@example.com or a1234@mail.example.org, code 99881",
		"nothing sensitive here",
	}

	for _, in := range inputs {
		once := text.MaskSensitive(in)
		assert.Equal(t, once, text.MaskSensitive(once), in)
	}
}

func TestExtractKeywords(t *testing.T) {
	n := text.NewNormalizer()

	got := n.ExtractKeywords("The quick brown fox jumps over the lazy dog. The fox!")

	assert.Equal(t, []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}, got)
}

func TestExtractKeywordsCapsAtTwenty(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = fmt.Sprintf("kw%02d", i)
	}

	got := text.NewNormalizer().ExtractKeywords(strings.Join(words, " "))

	require.Len(t, got, 20)
	assert.Equal(t, "kw00", got[0])
	assert.Equal(t, "kw19", got[19])
}

func TestStopWords(t *testing.T) {
	n := text.NewNormalizer()

	assert.True(t, n.IsStopWord("The"))
	assert.True(t, n.IsStopWord("hai"))
	assert.False(t, n.IsStopWord("lottery"))
}
