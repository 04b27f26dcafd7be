package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire knowledge graph",
	Long:  `Removes every document, entity, topic and timeline event, and deletes persisted state.`,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	if !clearForce {
		cmd.Print("This deletes all ingested documents. Continue? [y/N] ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := knowledgeService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear: %w", err)
	}

	cmd.Println("Knowledge graph cleared.")
	return nil
}
