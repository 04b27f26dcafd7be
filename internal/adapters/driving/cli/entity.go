package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var entityCmd = &cobra.Command{
	Use:   "entity [name]",
	Short: "Show a merged entity and its mentions",
	Long: `Looks up an entity by name. Name matching is case-insensitive;
mentions from every ingested document are merged under one entity.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntity,
}

func init() {
	rootCmd.AddCommand(entityCmd)
}

func runEntity(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	ent, err := knowledgeService.Entity(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", err)
	}

	cmd.Printf("Entity: %s\n\n", highlight(ent.Name))
	cmd.Printf("  Type:     %s\n", ent.Type)
	cmd.Printf("  Mentions: %d\n", len(ent.Mentions))

	if len(ent.Relationships) > 0 {
		cmd.Println("\n  Related entities:")
		for _, id := range ent.Relationships {
			cmd.Printf("    - %s\n", id)
		}
	}

	if len(ent.Mentions) > 0 {
		cmd.Println("\n  Mentions:")
		for _, m := range ent.Mentions {
			cmd.Printf("    [%s] %s\n", m.DocumentID, snippet(m.Context, 100))
		}
	}

	return nil
}
