package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var relatedCmd = &cobra.Command{
	Use:   "related [doc-id]",
	Short: "List documents related by shared topics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelated,
}

func init() {
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	docs, err := knowledgeService.RelatedDocuments(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get related documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No related documents.")
		return nil
	}

	cmd.Println("Related documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s  %s\n", docs[i].ID, docs[i].Name)
	}
	return nil
}
