package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kavitarao/studyhall/internal/config"
	"github.com/kavitarao/studyhall/internal/profile"
	"github.com/kavitarao/studyhall/internal/store"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded user profile.
var activeProfile *profile.Profile

var logger *zap.Logger

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studyhall",
	Short: "Timed study sessions with a structured notebook, dashboard, and AI study tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		// Skip setup check for the setup command itself.
		if cmd.Name() == "setup" {
			return nil
		}

		// First-run: profile missing → run setup wizard automatically.
		// Only do this when stdin is an interactive terminal.
		if !profile.Exists() {
			if term.IsTerminal(os.Stdin.Fd()) {
				fmt.Println()
				fmt.Println("  Welcome to studyhall! Looks like this is your first time.")
				if err := runSetup(true); err != nil {
					return err
				}
			}
			// Non-interactive (tests, pipes): continue with defaults, no profile required.
		}

		// Load profile if present; non-interactive environments may not have one.
		if profile.Exists() {
			p, err := profile.Load()
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			activeProfile = p
		}

		// Load and merge config files.
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// Profile values fill in config gaps.
		if activeProfile != nil {
			if cfg.DefaultTimerMode == "stopwatch" && activeProfile.TimerMode != "" {
				cfg.DefaultTimerMode = activeProfile.TimerMode
			}
			if cfg.DefaultPlanned == 25 && activeProfile.PlannedMinutes > 0 {
				cfg.DefaultPlanned = activeProfile.PlannedMinutes
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetProfile returns the active user profile.
func GetProfile() *profile.Profile {
	return activeProfile
}

// openDiskStore returns the local store, honoring the config DataDir override.
func openDiskStore() (*store.DiskStore, error) {
	if cfg.DataDir != "" {
		return store.NewDiskStoreAt(cfg.DataDir)
	}
	return store.NewDiskStore()
}

// openGateway opens the persistence backend selected by config. The local
// backend is the default; the document backend keeps everything in SQLite.
func openGateway() (store.Gateway, error) {
	if cfg.Backend == "document" {
		dir := cfg.DataDir
		if dir == "" {
			ds, err := openDiskStore()
			if err != nil {
				return nil, err
			}
			dir = ds.Dir()
		}
		return store.OpenDocumentStore(filepath.Join(dir, "studyhall.db"))
	}
	return openDiskStore()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
