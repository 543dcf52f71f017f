package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/ai"
	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/notify"
	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
)

const aiTimeout = 60 * time.Second

var aiNoteID string

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Generate study material from a note with the Gemini API",
}

// aiTarget is everything an AI subcommand needs: the open gateway, the live
// session wrapped in a manager, and the note captured as the append target.
// The target id is fixed before the request goes out, so the result lands on
// the right note even if selection moves meanwhile.
type aiTarget struct {
	gw   store.Gateway
	sess *session.Session
	mgr  *notebook.Manager
	note *notebook.Node
	ctx  ai.NoteContext
}

func loadAITarget(requireText bool) (*aiTarget, error) {
	gw, err := openGateway()
	if err != nil {
		return nil, err
	}

	s, err := gw.LoadActive()
	if err != nil {
		gw.Close()
		if errors.Is(err, store.ErrNoSession) {
			return nil, fmt.Errorf("no active session — AI features work on the current session's notes")
		}
		return nil, err
	}

	mgr := notebook.NewManager(s.Tree, s.Content)

	var note *notebook.Node
	if aiNoteID != "" {
		ids := noteIDs(mgr.Roots())
		id, err := resolveID(aiNoteID, ids)
		if err != nil {
			gw.Close()
			return nil, err
		}
		note, _ = mgr.FindNode(id)
	} else {
		var ok bool
		note, ok = mgr.FindFirstNote()
		if !ok {
			gw.Close()
			return nil, fmt.Errorf("session has no notes")
		}
	}
	if note == nil || note.Type != notebook.TypeNote {
		gw.Close()
		return nil, fmt.Errorf("target %s is not a note", aiNoteID)
	}

	text := mgr.Content()[note.ID]
	if requireText && strings.TrimSpace(text) == "" {
		gw.Close()
		return nil, fmt.Errorf("note %q is empty — nothing to work with", note.Name)
	}

	return &aiTarget{
		gw:   gw,
		sess: s,
		mgr:  mgr,
		note: note,
		ctx: ai.NoteContext{
			Subject:  s.Subject,
			NodeName: note.Name,
			Text:     text,
		},
	}, nil
}

// appendAndSave writes the generated artifact onto the captured target note
// and persists the session.
func (t *aiTarget) appendAndSave(artifact string) error {
	defer t.gw.Close()
	if strings.TrimSpace(t.mgr.Content()[t.note.ID]) != "" {
		artifact = "\n\n" + artifact
	}
	t.mgr.AppendToNote(t.note.ID, artifact)
	t.sess.Tree = t.mgr.Roots()
	t.sess.Content = t.mgr.Content()
	return t.gw.SaveSession(t.sess)
}

func noteIDs(roots []*notebook.Node) []string {
	var ids []string
	var walk func(nodes []*notebook.Node)
	walk = func(nodes []*notebook.Node) {
		for _, n := range nodes {
			if n.Type == notebook.TypeNote {
				ids = append(ids, n.ID)
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return ids
}

func newAIService(ctx context.Context) (ai.Service, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return ai.NewGeminiService(ctx, key, cfg.GeminiModel, logger)
}

// runAIFeature wraps the shared flow: load target, call the feature with a
// timeout, append the artifact to the captured note, report via toast.
func runAIFeature(label string, requireText bool, generate func(context.Context, ai.Service, *aiTarget) (string, error)) error {
	t, err := loadAITarget(requireText)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
	defer cancel()

	svc, err := newAIService(ctx)
	if err != nil {
		t.gw.Close()
		return err
	}

	toast := notify.Writer(os.Stdout)
	toast(notify.Info, fmt.Sprintf("generating %s for %q…", label, t.note.Name))

	artifact, err := generate(ctx, svc, t)
	if err != nil {
		t.gw.Close()
		return fmt.Errorf("%s failed: %w", label, err)
	}

	if err := t.appendAndSave(artifact); err != nil {
		return err
	}
	toast(notify.Info, fmt.Sprintf("%s appended to %q", label, t.note.Name))
	return nil
}

var aiSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the note and append the summary to it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("summary", true, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			text, err := svc.Summarize(ctx, t.ctx)
			if err != nil {
				return "", err
			}
			return "## Summary\n\n" + text, nil
		})
	},
}

var aiFlashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Generate flashcards from the note",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("flashcards", true, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			cards, err := svc.Flashcards(ctx, t.ctx)
			if err != nil {
				return "", err
			}
			var sb strings.Builder
			sb.WriteString("## Flashcards\n")
			for i, c := range cards {
				fmt.Fprintf(&sb, "\n%d. **Q:** %s\n   **A:** %s\n", i+1, c.Front, c.Back)
			}
			return sb.String(), nil
		})
	},
}

var aiQuizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz from the note",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("quiz", true, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			questions, err := svc.Quiz(ctx, t.ctx)
			if err != nil {
				return "", err
			}
			var sb strings.Builder
			sb.WriteString("## Quiz\n")
			for i, q := range questions {
				fmt.Fprintf(&sb, "\n%d. %s\n", i+1, q.Question)
				for j, opt := range q.Options {
					fmt.Fprintf(&sb, "   %c) %s\n", 'a'+j, opt)
				}
				fmt.Fprintf(&sb, "   Answer: %s — %s\n", q.CorrectAnswer, q.Explanation)
			}
			return sb.String(), nil
		})
	},
}

var aiMindMapCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Generate a mind-map outline from the note",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("mind map", true, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			outline, err := svc.MindMap(ctx, t.ctx)
			if err != nil {
				return "", err
			}
			return "## Mind Map\n\n" + outline, nil
		})
	},
}

var aiConnectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Suggest links between this note and notes from past sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("connections", true, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			candidates, err := historyNoteRefs(t.gw, t.sess.ID)
			if err != nil {
				return "", err
			}
			if len(candidates) == 0 {
				return "", fmt.Errorf("no past notes to connect to")
			}
			conns, err := svc.Connections(ctx, t.ctx, candidates)
			if err != nil {
				return "", err
			}
			if len(conns) == 0 {
				return "", fmt.Errorf("no connections found")
			}
			var sb strings.Builder
			sb.WriteString("## Connections\n")
			for _, c := range conns {
				fmt.Fprintf(&sb, "\n- **%s** (%s): %s\n  %s\n", c.Title, c.Subject, c.Concept, c.Explanation)
			}
			return sb.String(), nil
		})
	},
}

var aiURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Fetch a web page, summarize it, and append the summary to the note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAIFeature("page summary", false, func(ctx context.Context, svc ai.Service, t *aiTarget) (string, error) {
			page, err := ai.FetchPage(ctx, args[0])
			if err != nil {
				return "", fmt.Errorf("fetching page: %w", err)
			}
			summary, err := svc.Summarize(ctx, ai.NoteContext{
				Subject:  t.sess.Subject,
				NodeName: page.Title,
				Text:     page.Text,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("## From %s\n\n%s", page.URL, summary), nil
		})
	},
}

// historyNoteRefs collects note references from archived sessions, skipping
// the current one. Capped so the prompt stays a reasonable size.
func historyNoteRefs(gw store.Gateway, currentID string) ([]ai.NoteRef, error) {
	const maxCandidates = 50

	sums, err := gw.ListSessions()
	if err != nil {
		return nil, err
	}

	var refs []ai.NoteRef
	for _, sum := range sums {
		if sum.ID == currentID {
			continue
		}
		past, err := gw.LoadSession(sum.ID)
		if err != nil {
			continue // skip unreadable history entries
		}
		for _, id := range noteIDs(past.Tree) {
			n, _ := notebook.FindNode(past.Tree, id)
			refs = append(refs, ai.NoteRef{ID: id, Title: n.Name, Subject: past.Subject})
			if len(refs) >= maxCandidates {
				return refs, nil
			}
		}
	}
	return refs, nil
}

func init() {
	aiCmd.PersistentFlags().StringVar(&aiNoteID, "note", "", "Target note id (default: first note in the session)")
	aiCmd.AddCommand(aiSummaryCmd, aiFlashcardsCmd, aiQuizCmd, aiMindMapCmd, aiConnectionsCmd, aiURLCmd)
	rootCmd.AddCommand(aiCmd)
}
