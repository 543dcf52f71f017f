package board_test

import (
	"testing"
	"time"

	"github.com/kavitarao/studyhall/internal/board"
	"github.com/kavitarao/studyhall/internal/session"
)

// endedOn builds a history entry for a session that ended at the given UTC
// day offset from now (0 = today, 1 = yesterday, ...).
func endedOn(now time.Time, daysAgo int, dur time.Duration) session.Summary {
	end := now.UTC().AddDate(0, 0, -daysAgo)
	return session.Summary{
		ID:        "s",
		Subject:   "x",
		StartTime: end.Add(-dur),
		EndTime:   end,
		Duration:  dur,
	}
}

func TestComputeStreakEmptyHistory(t *testing.T) {
	st := board.ComputeStreak(nil, time.Now())
	if st.Current != 0 || st.Longest != 0 || st.TotalDays != 0 {
		t.Fatalf("empty history should yield a zero streak, got %+v", st)
	}
}

func TestComputeStreakConsecutiveDays(t *testing.T) {
	// Noon UTC keeps the day key stable regardless of offsets in the test.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	history := []session.Summary{
		endedOn(now, 0, 30*time.Minute),
		endedOn(now, 1, 45*time.Minute),
		endedOn(now, 2, 25*time.Minute),
	}
	st := board.ComputeStreak(history, now)

	if st.Current != 3 {
		t.Errorf("Current = %d, want 3", st.Current)
	}
	if st.Longest != 3 {
		t.Errorf("Longest = %d, want 3", st.Longest)
	}
	if st.TotalDays != 3 {
		t.Errorf("TotalDays = %d, want 3", st.TotalDays)
	}
	if st.TotalTime != 100*time.Minute {
		t.Errorf("TotalTime = %s, want 100m", st.TotalTime)
	}
	if !st.LastActive.Equal(history[0].EndTime) {
		t.Errorf("LastActive = %v, want %v", st.LastActive, history[0].EndTime)
	}
}

func TestComputeStreakForgivesTodayNotStudiedYet(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	// Studied yesterday and the day before, nothing yet today.
	history := []session.Summary{
		endedOn(now, 1, time.Hour),
		endedOn(now, 2, time.Hour),
	}
	st := board.ComputeStreak(history, now)
	if st.Current != 2 {
		t.Errorf("Current = %d, want 2 (today should be forgiven)", st.Current)
	}
}

func TestComputeStreakBreaksOnGap(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// A two-day gap before the older block.
	history := []session.Summary{
		endedOn(now, 0, time.Hour),
		endedOn(now, 4, time.Hour),
		endedOn(now, 5, time.Hour),
		endedOn(now, 6, time.Hour),
	}
	st := board.ComputeStreak(history, now)

	if st.Current != 1 {
		t.Errorf("Current = %d, want 1", st.Current)
	}
	if st.Longest != 3 {
		t.Errorf("Longest = %d, want 3 (the older block)", st.Longest)
	}
	if st.TotalDays != 4 {
		t.Errorf("TotalDays = %d, want 4", st.TotalDays)
	}
}

func TestComputeStreakMultipleSessionsSameDay(t *testing.T) {
	now := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)

	history := []session.Summary{
		endedOn(now, 0, 30*time.Minute),
		endedOn(now, 0, 40*time.Minute),
	}
	st := board.ComputeStreak(history, now)

	if st.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1 (same day counts once)", st.TotalDays)
	}
	if st.Current != 1 {
		t.Errorf("Current = %d, want 1", st.Current)
	}
	if st.TotalTime != 70*time.Minute {
		t.Errorf("TotalTime = %s, want 70m (all sessions counted)", st.TotalTime)
	}
}
