package risk

// Level is the risk classification attached to every assessment.
type Level string

const (
	LevelSafe   Level = "Safe"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Verdict is the output of every assessment: a level plus advice text the
// client shows verbatim. Verdicts are value types and never mutated after
// they are returned.
type Verdict struct {
	Level  Level  `json:"level"`
	Advice string `json:"advice"`
}

// Input carries the signals the context-aware classifier fuses. Build it
// with NewInput so that missing context defaults to safe sentinel values
// and an absent check-in never fabricates an emergency.
type Input struct {
	SymptomText    string
	PregnancyMonth int
	HasMovement    bool
	MovementCount  int
}

// NewInput returns an Input with safe defaults: month 1, movement felt,
// count 10. Callers override only the fields they actually know.
func NewInput(symptomText string) Input {
	return Input{
		SymptomText:    symptomText,
		PregnancyMonth: 1,
		HasMovement:    true,
		MovementCount:  10,
	}
}
