package main

import (
	"github.com/spf13/cobra"

	"github.com/beingmomen/dictation-core/internal/config"
	"github.com/beingmomen/dictation-core/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dictate",
	Short: "Streaming dictation engine: capture, transcribe, and filter speech in real time",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		initLogging(cfg.LogLevel)

		// Picks up edits to config.yaml while the process runs. A
		// session already in progress keeps the model, device,
		// language, auto-stop and noise-suppression values it started
		// with; settings read after Stop (the refiner settings and the
		// language passed to the refiner) come from the reloaded config.
		config.WatchConfig(func(reloaded *config.Config) {
			cfg = reloaded
			logger.Info("configuration reloaded from disk")
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd, devicesCmd)
}
