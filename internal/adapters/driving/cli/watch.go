package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest documents as they change",
	Long: `Monitors a directory and ingests supported files as they are
created or modified. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if fileWatcher == nil {
		return errors.New("file watcher not configured")
	}

	dir := args[0]

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events, err := fileWatcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer fileWatcher.Stop()

	cmd.Printf("Watching %s (ctrl-c to stop)...\n", dir)

	for event := range events {
		switch event.Operation {
		case driven.FileCreated, driven.FileModified:
			content, err := os.ReadFile(event.Path)
			if err != nil {
				logger.Warn("watch: reading %s: %v", event.Path, err)
				continue
			}
			doc, err := ingestService.Ingest(ctx, event.Path, content, domain.UnderstandOptions{})
			if err != nil {
				cmd.PrintErrf("  %s: %v\n", event.Path, err)
				continue
			}
			cmd.Printf("  %s -> %s\n", event.Path, doc.ID)
		case driven.FileDeleted:
			logger.Debug("watch: %s deleted, leaving graph untouched", event.Path)
		}
	}

	cmd.Println("Watch stopped.")
	return nil
}
