package session_test

import (
	"testing"
	"time"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
)

func TestNewSeedsDefaultTree(t *testing.T) {
	s := session.New("Biology", 25*time.Minute, session.TimerCountdown)

	if s.ID == "" {
		t.Fatal("session id is empty")
	}
	if err := notebook.Validate(s.Tree); err != nil {
		t.Fatalf("seeded tree invalid: %v", err)
	}

	root := s.Tree[0]
	if root.Name != "Biology" || root.Type != notebook.TypeSubject {
		t.Errorf("root = %q (%s), want Biology subject", root.Name, root.Type)
	}

	note, ok := notebook.FindFirstNote(s.Tree)
	if !ok {
		t.Fatal("seeded tree has no note")
	}
	if body, present := s.Content[note.ID]; !present || body != "" {
		t.Errorf("seed note content entry = %q, %v; want empty entry", body, present)
	}
	if s.NoteCount() != 1 {
		t.Errorf("NoteCount = %d, want 1", s.NoteCount())
	}
}

func TestNewNormalizesTimerMode(t *testing.T) {
	if s := session.New("x", 0, "pomodoro"); s.TimerMode != session.TimerStopwatch {
		t.Errorf("unknown mode not normalized: %q", s.TimerMode)
	}
	if s := session.New("x", 0, session.TimerCountdown); s.TimerMode != session.TimerCountdown {
		t.Errorf("countdown mode lost: %q", s.TimerMode)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	s := session.New("x", 0, session.TimerStopwatch)
	s.StartTime = time.Now().Add(-10 * time.Minute)

	first := s.StartTime.Add(10 * time.Minute)
	s.End(first)
	if !s.Ended() {
		t.Fatal("session not marked ended")
	}
	if s.ActualDuration != 10*time.Minute {
		t.Errorf("ActualDuration = %s, want 10m", s.ActualDuration)
	}

	// A second End must not move the end time or duration.
	s.End(first.Add(time.Hour))
	if !s.EndTime.Equal(first) {
		t.Errorf("EndTime moved on second End: %v", s.EndTime)
	}
	if s.ActualDuration != 10*time.Minute {
		t.Errorf("ActualDuration changed on second End: %s", s.ActualDuration)
	}
	if s.Elapsed() != 10*time.Minute {
		t.Errorf("Elapsed after end = %s, want frozen 10m", s.Elapsed())
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	s := session.New("x", 5*time.Minute, session.TimerCountdown)
	s.StartTime = time.Now().Add(-time.Hour)
	if got := s.Remaining(); got != 0 {
		t.Errorf("overrun countdown Remaining = %s, want 0", got)
	}

	s = session.New("x", time.Hour, session.TimerStopwatch)
	if got := s.Remaining(); got != 0 {
		t.Errorf("stopwatch Remaining = %s, want 0", got)
	}
}

func TestNoteCountWalksNestedTree(t *testing.T) {
	s := session.New("Math", 0, session.TimerStopwatch)
	root := s.Tree[0]

	title := &notebook.Node{ID: "t", Name: "Algebra", Type: notebook.TypeTitle, ParentID: root.ID}
	sub := &notebook.Node{ID: "sh", Name: "Groups", Type: notebook.TypeSubheading, ParentID: "t"}
	deep := &notebook.Node{ID: "n", Name: "Deep", Type: notebook.TypeNote, ParentID: "sh"}
	sub.Children = []*notebook.Node{deep}
	title.Children = []*notebook.Node{sub}
	root.Children = append(root.Children, title)

	if got := s.NoteCount(); got != 2 {
		t.Errorf("NoteCount = %d, want 2", got)
	}
}
