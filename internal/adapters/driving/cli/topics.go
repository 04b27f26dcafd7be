package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [topic]",
	Short: "List topics or the documents under one topic",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	if len(args) == 1 {
		docs, err := knowledgeService.DocumentsByTopic(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get documents: %w", err)
		}
		if len(docs) == 0 {
			cmd.Printf("No documents tagged with topic %q.\n", args[0])
			return nil
		}
		cmd.Printf("Documents on %q:\n\n", args[0])
		for i := range docs {
			cmd.Printf("  %s  %s\n", docs[i].ID, docs[i].Name)
		}
		return nil
	}

	topics, err := knowledgeService.Topics(ctx)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}

	if len(topics) == 0 {
		cmd.Println("No topics yet.")
		return nil
	}

	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Println("Topics:")
	cmd.Println()
	for _, name := range names {
		cmd.Printf("  %-30s %d document(s)\n", name, topics[name])
	}
	return nil
}
