// Package assistant wraps the Gemini API for the two language features:
// free-form maternal-health chat and voice-note analysis. The engine only
// consumes the transcript it returns as ordinary symptom text; nothing in
// this package makes risk decisions.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// VoiceAnalysis is the structured result of a voice-note submission.
type VoiceAnalysis struct {
	Transcript string `json:"transcript"`
	RiskLevel  string `json:"riskLevel"`
	Advice     string `json:"advice"`
}

// Client is the narrow surface the handlers depend on.
type Client interface {
	Chat(ctx context.Context, message string) (string, error)
	AnalyzeVoice(ctx context.Context, audio []byte, mimeType string) (*VoiceAnalysis, error)
}

const defaultModel = "gemini-2.5-flash"

const chatPrompt = "You are a helpful, empathetic, and knowledgeable maternal healthcare assistant." +
	" A pregnant woman is asking a question or describing her symptoms." +
	" Her message is: %q." +
	" Respond in the same language she used (Hindi, English, or a mix of both)." +
	" Keep the response concise, clear, and focused on her well-being." +
	" If the symptom sounds severe (like severe bleeding, lack of baby movement, extreme pain, seizures, or very high fever), advise her to contact her doctor or visit a hospital immediately." +
	" If her message does not make any sense or is gibberish, politely ask her to clarify her question." +
	" Provide your reply as plain text without any JSON formatting or extra commentary."

const voicePrompt = "You are an experienced obstetrician/gynaecologist analyzing a pregnant woman's" +
	" voice description of her current health and pregnancy symptoms." +
	" The audio may be in Hindi, English, or a mix of both." +
	" First, carefully TRANSCRIBE exactly what she is saying in natural language." +
	" Then, based on the transcript, assess MATERNAL risk level as one of: \"Low\", \"Medium\", or \"High\"." +
	" Consider red flags like severe abdominal pain, heavy bleeding, absent baby movements, high blood pressure symptoms," +
	" seizures, severe headache, vision changes, breathlessness at rest, high fever, or convulsions." +
	" Finally, provide clear, empathetic advice in 2-4 sentences in simple language." +
	" VERY IMPORTANT: Respond ONLY with a single valid JSON object of the form:" +
	" {\"transcript\":\"...\",\"riskLevel\":\"Low|Medium|High\",\"advice\":\"...\"} with double quotes and no comments, no markdown, no extra text."

// Gemini implements Client against the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a client with the given API key. The model defaults to
// gemini-2.5-flash when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Chat(ctx context.Context, message string) (string, error) {
	content := genai.NewContentFromText(fmt.Sprintf(chatPrompt, message), genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	reply := collectText(resp)
	if reply == "" {
		return "", fmt.Errorf("no text output received from model")
	}
	return reply, nil
}

func (g *Gemini) AnalyzeVoice(ctx context.Context, audio []byte, mimeType string) (*VoiceAnalysis, error) {
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(voicePrompt),
		genai.NewPartFromBytes(audio, mimeType),
	}, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	text := collectText(resp)
	if text == "" {
		return nil, fmt.Errorf("no text output received from model")
	}
	return parseVoiceAnalysis(text)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// parseVoiceAnalysis decodes the model's JSON reply, recovering when the
// object is wrapped in markdown fences or surrounding prose.
func parseVoiceAnalysis(text string) (*VoiceAnalysis, error) {
	var va VoiceAnalysis
	if err := json.Unmarshal([]byte(text), &va); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("decode voice analysis: %w", err)
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &va); err != nil {
			return nil, fmt.Errorf("decode voice analysis: %w", err)
		}
	}
	if va.RiskLevel == "" {
		va.RiskLevel = "Low"
	}
	return &va, nil
}
