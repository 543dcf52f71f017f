// Package ai is the boundary to the hosted large-language-model API. Each
// feature takes the active note's text (plus light context) and returns a
// structured artifact; failures are surfaced to the user and never touch the
// note buffer.
//
// Callers must capture the target note id at request time and append the
// artifact to that note on completion, even if the active node changed while
// the request was in flight.
package ai

import "context"

// NoteContext is the input to every AI feature: the current buffer content of
// the note the request was issued from, plus light context for the prompt.
type NoteContext struct {
	Subject  string
	NodeName string
	Text     string
}

// Flashcard is one generated front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is one generated quiz item.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"` // "multiple_choice" | "true_false" | "short_answer"
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// NoteRef identifies a candidate note for connection suggestions.
type NoteRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

// Connection suggests a conceptual link between the source note and another
// note in the user's history.
type Connection struct {
	NoteID      string `json:"note_id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Concept     string `json:"concept"`
	Explanation string `json:"explanation"`
}

// Service is the AI content boundary consumed by the CLI and editor. Each
// method reads a snapshot of the note text at request time; timeouts and
// retries are the implementation's concern, not the caller's.
type Service interface {
	Summarize(ctx context.Context, note NoteContext) (string, error)
	Flashcards(ctx context.Context, note NoteContext) ([]Flashcard, error)
	Quiz(ctx context.Context, note NoteContext) ([]QuizQuestion, error)
	// MindMap returns a markdown outline of the note's concepts.
	MindMap(ctx context.Context, note NoteContext) (string, error)
	Connections(ctx context.Context, note NoteContext, candidates []NoteRef) ([]Connection, error)
}
