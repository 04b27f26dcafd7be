// Package cli implements the command line driving adapter using cobra.
// Commands call the driving port services; wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driving"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Set via SetServices before Execute.
var (
	ingestService     driving.IngestService
	knowledgeService  driving.KnowledgeService
	chatService       driving.ChatService
	fileWatcher       driven.FileWatcher
	completionService driven.CompletionService
	configStore       driven.ConfigStore
)

// verboseFlag enables debug logging on all commands.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "scholia",
	Short: "Ingest documents and explore them as a knowledge graph",
	Long: `Scholia ingests plain text and markdown documents, analyses them
into a knowledge graph of chunks, entities, topics and timeline events,
and lets you search, browse and chat over the result.

Analysis uses a completion model when one is configured and falls back
to deterministic heuristics when none is reachable.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services bundles everything the commands need.
type Services struct {
	Ingest     driving.IngestService
	Knowledge  driving.KnowledgeService
	Chat       driving.ChatService
	Watcher    driven.FileWatcher
	Completion driven.CompletionService
	Config     driven.ConfigStore
}

// SetServices wires the services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	knowledgeService = s.Knowledge
	chatService = s.Chat
	fileWatcher = s.Watcher
	completionService = s.Completion
	configStore = s.Config
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
