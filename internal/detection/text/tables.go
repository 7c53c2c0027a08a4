package text

// asciiPunctuation matches the characters stripped from token edges
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var englishStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "you", "your", "yours", "have", "had",
	"this", "these", "they", "them", "their", "we", "us", "our", "me",
	"my", "i", "am",
}

// Romanized Hindi
var hindiStopWords = []string{
	"aur", "hai", "hain", "ka", "ki", "ke", "ko", "se", "me", "par",
	"ya", "jo", "kya", "koi", "sab", "kuch", "yah", "vah", "woh", "iske", "uske",
}

// tokenReplacements expands abbreviations and undoes common obfuscation.
// Lookups happen on lowercased tokens with edge punctuation stripped.
var tokenReplacements = map[string]string{
	// ordinals and chat shorthand
	"1st": "first",
	"2nd": "second",
	"3rd": "third",
	"u":   "you",
	"ur":  "your",
	"pls": "please",
	"plz": "please",

	// abbreviations seen in scam messages
	"otp": "one time password",
	"atm": "automated teller machine",
	"sms": "text message",
	"app": "application",

	// misspellings
	"recieve":  "receive",
	"beleive":  "believe",
	"seperate": "separate",
	"occured":  "occurred",
	"begining": "beginning",

	// leetspeak
	"3": "e",
	"4": "for",
	"7": "t",
	"0": "o",
	"1": "i",
	"5": "s",

	// currency symbols
	"₹": "rupees",
	"$": "dollars",
	"€": "euros",
	"£": "pounds",
}
