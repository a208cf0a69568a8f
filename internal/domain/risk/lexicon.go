package risk

import "strings"

// Lexicon holds the trigger phrases the classifier matches against
// normalized symptom text. Entries mix English, Hindi transliterations and
// Devanagari script; matching is case-insensitive substring containment
// with no word-boundary requirement. The greeting set short-circuits
// classification for junk input from the chat entry point.
type Lexicon struct {
	High      []string
	Medium    []string
	Greetings []string
}

// DefaultLexicon returns the built-in trigger phrases. The sets are
// read-only after construction and safe for concurrent use.
func DefaultLexicon() Lexicon {
	return Lexicon{
		High: []string{
			"bleeding", "blood", "खून", "no movement", "movement nahi", "हिलावट नहीं",
			"severe pain", "intense pain", "गंभीर दर्द", "contraction", "संकुचन",
			"water break", "पानी छूट", "high fever", "बुखार", "fiver", "seizure",
		},
		Medium: []string{
			"dizziness", "chakkar", "चक्कर", "vomiting", "ulti", "उल्टी",
			"headache", "सिर दर्द", "swelling", "सूजन", "shortness of breath",
			"सांस फूलना", "nausea", "मिचली", "fever", "cough",
		},
		Greetings: []string{"hi", "hello"},
	}
}

// MatchHigh reports whether any high-severity phrase occurs in the
// normalized text.
func (l Lexicon) MatchHigh(normalized string) bool {
	return containsAny(normalized, l.High)
}

// MatchMedium reports whether any medium-severity phrase occurs in the
// normalized text.
func (l Lexicon) MatchMedium(normalized string) bool {
	return containsAny(normalized, l.Medium)
}

// IsGreeting reports whether the normalized text is exactly one of the
// greeting phrases.
func (l Lexicon) IsGreeting(normalized string) bool {
	for _, g := range l.Greetings {
		if normalized == g {
			return true
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
