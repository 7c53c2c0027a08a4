package text

import (
	"truthlens/internal/domain/models"
)

// SupportedLanguage describes a language the detector can report
type SupportedLanguage struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	NativeName  string `json:"native_name"`
	ScriptRange []rune `json:"-"` // inclusive Unicode block, empty for Latin
}

// Detection order matters: the first script present wins
var scriptLanguages = []SupportedLanguage{
	{
		Code:        models.LanguageHindi,
		Name:        "Hindi",
		NativeName:  "हिन्दी",
		ScriptRange: []rune{0x0900, 0x097F}, // Devanagari
	},
	{
		Code:        models.LanguageTelugu,
		Name:        "Telugu",
		NativeName:  "తెలుగు",
		ScriptRange: []rune{0x0C00, 0x0C7F},
	},
	{
		Code:        models.LanguageTamil,
		Name:        "Tamil",
		NativeName:  "தமிழ்",
		ScriptRange: []rune{0x0B80, 0x0BFF},
	},
}

// LanguageDetector guesses the language of a text from the Unicode scripts it uses
type LanguageDetector struct {
	languages []SupportedLanguage
}

// NewLanguageDetector creates a detector for Hindi, Telugu and Tamil with English fallback
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{languages: scriptLanguages}
}

// Detect returns the code of the first language whose script appears in s, else "en"
func (d *LanguageDetector) Detect(s string) string {
	if len(s) == 0 {
		return models.LanguageEnglish
	}

	present := make([]bool, len(d.languages))
	for _, r := range s {
		for i, lang := range d.languages {
			if r >= lang.ScriptRange[0] && r <= lang.ScriptRange[1] {
				present[i] = true
			}
		}
	}

	for i, ok := range present {
		if ok {
			return d.languages[i].Code
		}
	}
	return models.LanguageEnglish
}

// Languages lists the script-detected languages in detection order
func (d *LanguageDetector) Languages() []SupportedLanguage {
	out := make([]SupportedLanguage, len(d.languages))
	copy(out, d.languages)
	return out
}
