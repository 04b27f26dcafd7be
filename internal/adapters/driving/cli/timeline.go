package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the global timeline",
	Long:  `Lists dated events found across all documents, earliest first.`,
	RunE:  runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	events, err := knowledgeService.Timeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to get timeline: %w", err)
	}

	if len(events) == 0 {
		cmd.Println("No dated events found.")
		return nil
	}

	cmd.Println("Timeline:")
	cmd.Println()
	for _, e := range events {
		cmd.Printf("  %-12s %s\n", e.Date, snippet(e.Event, 100))
	}
	cmd.Printf("\nTotal: %d events\n", len(events))
	return nil
}
