package risk

import "strings"

// Advice strings keyed off the final level. The movement-driven variants
// are chosen by Assess; the fixed ones by AssessText.
const (
	adviceGreeting     = "Hello! Please type or speak your actual symptoms so I can analyze them for you."
	adviceNoMovement   = "CRITICAL: No baby movement felt. Please consult your doctor IMMEDIATELY or visit the nearest hospital."
	adviceHighMovement = "Emergency Alert: High Risk Condition (Reduced Movement). Please consult your doctor IMMEDIATELY."
	adviceMediumMove   = "Observation recommended. Baby movement is slightly low. Monitor closely and take rest."
	adviceSafeMove     = "Everything looks good! Baby movement is normal. Continue regular care."

	adviceHighText   = "Please consult your doctor immediately."
	adviceMediumText = "Monitor symptoms. Consult doctor if persists."
	adviceSafeText   = "Continue regular prenatal care."
)

// Config holds the product-defined escalation thresholds. The values are
// preserved exactly as documented; they carry no clinical validation.
type Config struct {
	// LatePregnancyMonth is the month from which medium-severity symptoms
	// escalate to High (third trimester).
	LatePregnancyMonth int
	// HighRiskMaxCount is the movement count at or below which the day is
	// treated as an emergency.
	HighRiskMaxCount int
	// MediumRiskMaxCount is the movement count at or below which (and
	// above HighRiskMaxCount) the day warrants observation.
	MediumRiskMaxCount int
	// ConsecutiveSilentDays is the number of consecutive no-movement days
	// that forces the critical aggregate advice.
	ConsecutiveSilentDays int
}

// DefaultConfig returns the documented thresholds: <=4 High, 5-9 Medium,
// >=10 Safe, month >=7 late pregnancy, 2 silent days critical.
func DefaultConfig() Config {
	return Config{
		LatePregnancyMonth:    7,
		HighRiskMaxCount:      4,
		MediumRiskMaxCount:    9,
		ConsecutiveSilentDays: 2,
	}
}

// Classifier is the rule-based risk engine. It is pure and stateless:
// no I/O, no mutation after construction, safe for unsynchronized
// concurrent use. It never fails; every input yields a verdict.
type Classifier struct {
	lex Lexicon
	cfg Config
}

// NewClassifier builds a classifier over an explicit lexicon and
// threshold configuration.
func NewClassifier(lex Lexicon, cfg Config) *Classifier {
	return &Classifier{lex: lex, cfg: cfg}
}

// DefaultClassifier returns a classifier with the built-in lexicon and
// thresholds.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultLexicon(), DefaultConfig())
}

// normalize lower-cases and trims text for matching. It deliberately does
// no transliteration or script folding: the lexicon carries both Latin and
// Devanagari forms.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Assess fuses symptom text, pregnancy month and the day's movement
// signals into a verdict. Rules run in strict order and can only raise
// the level, never lower it; the greeting short-circuit returns before
// any other signal is consulted.
func (c *Classifier) Assess(in Input) Verdict {
	t := normalize(in.SymptomText)

	if c.lex.IsGreeting(t) {
		return Verdict{Level: LevelSafe, Advice: adviceGreeting}
	}

	level := LevelSafe

	// Text-driven base level. Medium symptoms count as High late in
	// pregnancy.
	switch {
	case c.lex.MatchHigh(t):
		level = LevelHigh
	case c.lex.MatchMedium(t):
		if in.PregnancyMonth >= c.cfg.LatePregnancyMonth {
			level = LevelHigh
		} else {
			level = LevelMedium
		}
	}

	// Movement override: absence of movement is the most safety-critical
	// signal and always escalates, regardless of what the text said.
	if !in.HasMovement || in.MovementCount <= c.cfg.HighRiskMaxCount {
		level = LevelHigh
	} else if in.MovementCount <= c.cfg.MediumRiskMaxCount {
		if level == LevelSafe {
			level = LevelMedium
		}
	}

	return Verdict{Level: level, Advice: c.advise(level, in)}
}

// AssessText is the narrow, text-only entry point for call sites that
// have a lone symptom string and no user context yet.
func (c *Classifier) AssessText(text string) Verdict {
	t := normalize(text)
	if c.lex.IsGreeting(t) {
		return Verdict{Level: LevelSafe, Advice: adviceGreeting}
	}
	switch {
	case c.lex.MatchHigh(t):
		return Verdict{Level: LevelHigh, Advice: adviceHighText}
	case c.lex.MatchMedium(t):
		return Verdict{Level: LevelMedium, Advice: adviceMediumText}
	default:
		return Verdict{Level: LevelSafe, Advice: adviceSafeText}
	}
}

// advise picks the advice text for the final level. The High variants are
// keyed off the movement inputs, not the text match.
func (c *Classifier) advise(level Level, in Input) string {
	switch level {
	case LevelHigh:
		if !in.HasMovement || in.MovementCount == 0 {
			return adviceNoMovement
		}
		return adviceHighMovement
	case LevelMedium:
		return adviceMediumMove
	default:
		return adviceSafeMove
	}
}
