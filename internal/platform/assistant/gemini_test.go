package assistant

import "testing"

func TestParseVoiceAnalysis_PlainJSON(t *testing.T) {
	va, err := parseVoiceAnalysis(`{"transcript":"pet me dard hai","riskLevel":"High","advice":"See a doctor."}`)
	if err != nil {
		t.Fatalf("parseVoiceAnalysis returned error: %v", err)
	}
	if va.Transcript != "pet me dard hai" || va.RiskLevel != "High" || va.Advice != "See a doctor." {
		t.Errorf("got %+v", va)
	}
}

func TestParseVoiceAnalysis_MarkdownFences(t *testing.T) {
	text := "```json\n{\"transcript\":\"sab theek hai\",\"riskLevel\":\"Low\",\"advice\":\"Rest well.\"}\n```"
	va, err := parseVoiceAnalysis(text)
	if err != nil {
		t.Fatalf("parseVoiceAnalysis returned error: %v", err)
	}
	if va.Transcript != "sab theek hai" || va.RiskLevel != "Low" {
		t.Errorf("got %+v", va)
	}
}

func TestParseVoiceAnalysis_SurroundingProse(t *testing.T) {
	text := `Here is my analysis: {"transcript":"x","riskLevel":"Medium","advice":"y"} hope that helps`
	va, err := parseVoiceAnalysis(text)
	if err != nil {
		t.Fatalf("parseVoiceAnalysis returned error: %v", err)
	}
	if va.RiskLevel != "Medium" {
		t.Errorf("RiskLevel = %q, want Medium", va.RiskLevel)
	}
}

func TestParseVoiceAnalysis_MissingRiskLevelDefaults(t *testing.T) {
	va, err := parseVoiceAnalysis(`{"transcript":"x","advice":"y"}`)
	if err != nil {
		t.Fatalf("parseVoiceAnalysis returned error: %v", err)
	}
	if va.RiskLevel != "Low" {
		t.Errorf("RiskLevel = %q, want the Low default", va.RiskLevel)
	}
}

func TestParseVoiceAnalysis_Garbage(t *testing.T) {
	if _, err := parseVoiceAnalysis("I could not understand the audio"); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}
