package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var conceptCmd = &cobra.Command{
	Use:   "concept [name]",
	Short: "Look up a concept in the cross-document dictionary",
	Long: `Shows the dictionary entry for a concept: its definition, related
concepts and the documents it appears in. The first document to define
a concept owns its definition.`,
	Args: cobra.ExactArgs(1),
	RunE: runConcept,
}

func init() {
	rootCmd.AddCommand(conceptCmd)
}

func runConcept(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	entry, err := knowledgeService.Concept(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get concept: %w", err)
	}

	cmd.Printf("Concept: %s\n\n", highlight(entry.Name))
	if entry.Definition != "" {
		cmd.Printf("  %s\n", entry.Definition)
	}

	if len(entry.RelatedConcepts) > 0 {
		cmd.Println("\n  Related concepts:")
		for _, r := range entry.RelatedConcepts {
			cmd.Printf("    - %s\n", r)
		}
	}

	if len(entry.DocumentSources) > 0 {
		cmd.Println("\n  Appears in:")
		for _, id := range entry.DocumentSources {
			cmd.Printf("    - %s\n", id)
		}
	}

	return nil
}
