package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

var (
	ingestDepth string
	ingestFocus []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the knowledge graph",
	Long: `Reads each file, extracts its text, analyses it and commits the
result to the knowledge graph. Plain text and markdown are supported.

Files that fail extraction are recorded with an error status so their
failure stays visible in 'scholia document list'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDepth, "depth", "d", "normal", "analysis depth: shallow, normal or deep")
	ingestCmd.Flags().StringSliceVar(&ingestFocus, "focus", nil, "subject areas to focus analysis on")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := domain.UnderstandOptions{
		Depth:      domain.Depth(ingestDepth),
		FocusAreas: ingestFocus,
	}

	ctx := context.Background()
	failed := 0

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		doc, err := ingestService.Ingest(ctx, path, content, opts)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("  %s -> %s (%s, %d topics)\n", path, doc.ID, doc.GeneratedBy, len(doc.Topics))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	cmd.Printf("Ingested %d document(s).\n", len(args))
	return nil
}
