package board

import (
	"time"

	"github.com/kavitarao/studyhall/internal/session"
)

// Streak summarizes study consistency computed from ended sessions.
type Streak struct {
	Current    int // consecutive days ending today or yesterday
	Longest    int
	TotalDays  int // distinct days with at least one ended session
	TotalTime  time.Duration
	LastActive time.Time
}

// ComputeStreak derives streak statistics from session history. A day counts
// when at least one session ended on it; the current streak survives if the
// most recent study day is today or yesterday.
func ComputeStreak(history []session.Summary, now time.Time) Streak {
	var st Streak
	if len(history) == 0 {
		return st
	}

	// All date arithmetic happens in UTC so day keys are consistent.
	days := make(map[string]bool)
	for _, s := range history {
		days[s.EndTime.UTC().Format("2006-01-02")] = true
		st.TotalTime += s.Duration
		if s.EndTime.After(st.LastActive) {
			st.LastActive = s.EndTime
		}
	}
	st.TotalDays = len(days)

	// Longest run of consecutive days anywhere in history.
	run := 0
	day := earliestDay(days)
	last := startOfDay(now.UTC())
	for !day.After(last) {
		if days[day.Format("2006-01-02")] {
			run++
			if run > st.Longest {
				st.Longest = run
			}
		} else {
			run = 0
		}
		day = day.AddDate(0, 0, 1)
	}

	// Current streak: walk backwards from today; a gap of one day (today not
	// yet studied) is forgiven.
	day = startOfDay(now.UTC())
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		st.Current++
		day = day.AddDate(0, 0, -1)
	}
	return st
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func earliestDay(days map[string]bool) time.Time {
	var earliest time.Time
	for d := range days {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	return earliest
}
