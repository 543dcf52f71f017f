// Package profile manages the user's persistent studyhall profile.
// The profile is stored at ~/.config/studyhall/profile.json and is created
// once via the interactive setup flow, then referenced on every command.
package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	Name             string `json:"name"`
	DefaultSubject   string `json:"default_subject"`    // pre-filled on `start`
	DailyGoalMinutes int    `json:"daily_goal_minutes"` // streak/dashboard target
	TimerMode        string `json:"timer_mode"`         // "countdown" | "stopwatch"
	PlannedMinutes   int    `json:"planned_minutes"`    // default session length
}

// profilePath returns the path to the profile file.
func profilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studyhall", "profile.json"), nil
}

// ConfigDir returns the studyhall config directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studyhall"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found — run 'studyhall setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// RunSetup runs the interactive setup wizard and saves the resulting profile.
// If existing is non-nil, it is used as the default for each prompt (edit mode).
func RunSetup(existing *Profile) (*Profile, error) {
	r := bufio.NewReader(os.Stdin)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Printf("%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Printf("%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	askInt := func(prompt string, defaultVal int) (int, error) {
		ans, err := ask(prompt, strconv.Itoa(defaultVal))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(ans)
		if err != nil || n <= 0 {
			return defaultVal, nil
		}
		return n, nil
	}

	prof := &Profile{
		TimerMode:        "stopwatch",
		PlannedMinutes:   25,
		DailyGoalMinutes: 60,
	}
	if existing != nil {
		*prof = *existing
	}

	fmt.Println()
	fmt.Println("  ┌─────────────────────────────────┐")
	fmt.Println("  │  studyhall — first-time setup   │")
	fmt.Println("  └─────────────────────────────────┘")
	fmt.Println()

	var err error

	prof.Name, err = ask("  Your name", prof.Name)
	if err != nil {
		return nil, err
	}

	prof.DefaultSubject, err = ask("  Default subject (pre-filled when starting a session)", prof.DefaultSubject)
	if err != nil {
		return nil, err
	}

	mode, err := ask("  Timer mode (countdown/stopwatch)", prof.TimerMode)
	if err != nil {
		return nil, err
	}
	if mode == "countdown" {
		prof.TimerMode = "countdown"
	} else {
		prof.TimerMode = "stopwatch"
	}

	prof.PlannedMinutes, err = askInt("  Default session length in minutes", prof.PlannedMinutes)
	if err != nil {
		return nil, err
	}

	prof.DailyGoalMinutes, err = askInt("  Daily study goal in minutes", prof.DailyGoalMinutes)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	return prof, nil
}
