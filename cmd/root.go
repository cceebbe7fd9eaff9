package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edenhq/meeting-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meeting-api",
	Short: "Meeting Intelligence API server",
	Long: `Meeting Intelligence API - automated meeting transcription and insights

This API ingests meeting recordings and runs them through a durable
processing pipeline: transcription, translation, summarization and
action item extraction, with summary delivery by email.

Features:
  • Recording upload with idempotent transcription
  • Structured summaries and action item extraction
  • Transcript translation into requested languages
  • Scheduled bot-listener sessions for external calls
  • Account erasure covering recordings, artifacts and stored audio`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it. Version and
// help do not touch config, so they run without a config file present.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
