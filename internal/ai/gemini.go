package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService implements Service against Google's Gemini API.
type GeminiService struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiService creates a Gemini-backed AI service. The model defaults to
// gemini-2.5-flash when empty. A nil logger is replaced with a nop logger.
func NewGeminiService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiService{client: client, model: model, logger: logger}, nil
}

// generate sends a prompt and returns the response text. When schema is
// non-nil the model is constrained to structured JSON output.
func (g *GeminiService) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	g.logger.Debug("gemini request", zap.String("model", g.model), zap.Int("prompt_len", len(prompt)))
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		g.logger.Warn("gemini request failed", zap.Error(err))
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

func noteHeader(note NoteContext) string {
	var sb strings.Builder
	if note.Subject != "" {
		fmt.Fprintf(&sb, "Subject: %s\n", note.Subject)
	}
	if note.NodeName != "" {
		fmt.Fprintf(&sb, "Note title: %s\n", note.NodeName)
	}
	sb.WriteString("\nNote content:\n")
	sb.WriteString(note.Text)
	return sb.String()
}

// Summarize returns a concise summary of the note.
func (g *GeminiService) Summarize(ctx context.Context, note NoteContext) (string, error) {
	prompt := "Summarize the following study note in a few short paragraphs. " +
		"Keep key terms and definitions intact.\n\n" + noteHeader(note)
	return g.generate(ctx, prompt, nil)
}

// Flashcards generates front/back study cards from the note.
func (g *GeminiService) Flashcards(ctx context.Context, note NoteContext) ([]Flashcard, error) {
	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"front": {Type: genai.TypeString},
				"back":  {Type: genai.TypeString},
			},
			Required: []string{"front", "back"},
		},
	}
	prompt := "Create flashcards covering the key facts in the following study note. " +
		"Each card has a question on the front and the answer on the back.\n\n" + noteHeader(note)

	text, err := g.generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var cards []Flashcard
	if err := json.Unmarshal([]byte(text), &cards); err != nil {
		return nil, fmt.Errorf("failed to parse flashcard response: %w", err)
	}
	return cards, nil
}

// Quiz generates quiz questions from the note.
func (g *GeminiService) Quiz(ctx context.Context, note NoteContext) ([]QuizQuestion, error) {
	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question":       {Type: genai.TypeString},
				"type":           {Type: genai.TypeString, Enum: []string{"multiple_choice", "true_false", "short_answer"}},
				"options":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"correct_answer": {Type: genai.TypeString},
				"explanation":    {Type: genai.TypeString},
			},
			Required: []string{"question", "type", "correct_answer", "explanation"},
		},
	}
	prompt := "Write a short quiz testing understanding of the following study note. " +
		"Mix multiple-choice, true/false, and short-answer questions.\n\n" + noteHeader(note)

	text, err := g.generate(ctx, prompt, schema)
	if err != nil {
		return nil, err
	}
	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse quiz response: %w", err)
	}
	return questions, nil
}

// MindMap returns a markdown outline mapping the note's concepts.
func (g *GeminiService) MindMap(ctx context.Context, note NoteContext) (string, error) {
	prompt := "Produce a markdown mind map of the following study note: a nested " +
		"bullet outline with the central concept at the top level and supporting " +
		"ideas indented beneath it. Output only the markdown.\n\n" + noteHeader(note)
	return g.generate(ctx, prompt, nil)
}

// Connections suggests conceptual links between the note and candidate notes
// from the user's history.
func (g *GeminiService) Connections(ctx context.Context, note NoteContext, candidates []NoteRef) ([]Connection, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"note_id":     {Type: genai.TypeString},
				"title":       {Type: genai.TypeString},
				"subject":     {Type: genai.TypeString},
				"concept":     {Type: genai.TypeString},
				"explanation": {Type: genai.TypeString},
			},
			Required: []string{"note_id", "title", "concept", "explanation"},
		},
	}

	var sb strings.Builder
	sb.WriteString("Given the study note below and a list of the user's other notes, ")
	sb.WriteString("suggest which other notes share concepts with it. Only reference ")
	sb.WriteString("note ids from the candidate list.\n\nCandidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- id=%s title=%q subject=%q\n", c.ID, c.Title, c.Subject)
	}
	sb.WriteString("\n")
	sb.WriteString(noteHeader(note))

	text, err := g.generate(ctx, sb.String(), schema)
	if err != nil {
		return nil, err
	}
	var conns []Connection
	if err := json.Unmarshal([]byte(text), &conns); err != nil {
		return nil, fmt.Errorf("failed to parse connections response: %w", err)
	}

	// Drop hallucinated ids not present in the candidate list.
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}
	filtered := conns[:0]
	for _, c := range conns {
		if known[c.NoteID] {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
