package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, view, or remove documents in the knowledge graph.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print extracted document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and all derived state",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	ctx := context.Background()

	docs, err := knowledgeService.Documents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:   %s\n", docs[i].Name)
		cmd.Printf("    Status: %s\n", docs[i].Status)
		if docs[i].ErrorMessage != "" {
			cmd.Printf("    Error:  %s\n", docs[i].ErrorMessage)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := knowledgeService.Document(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Name:      %s\n", doc.Name)
	cmd.Printf("  Status:    %s\n", doc.Status)
	cmd.Printf("  Size:      %d bytes\n", doc.Size)
	cmd.Printf("  Extracted: %s (%s)\n", doc.ExtractedAt.Format("2006-01-02 15:04:05"), doc.ExtractionMethod)
	cmd.Printf("  Analysis:  %s\n", doc.GeneratedBy)

	if doc.Summary != "" {
		cmd.Printf("\n  Summary:\n    %s\n", doc.Summary)
	}
	if len(doc.Topics) > 0 {
		cmd.Println("\n  Topics:")
		for _, t := range doc.Topics {
			cmd.Printf("    - %s\n", t)
		}
	}
	if len(doc.KeyPoints) > 0 {
		cmd.Println("\n  Key points:")
		for _, k := range doc.KeyPoints {
			cmd.Printf("    - %s\n", k)
		}
	}
	if n := doc.Concepts.Len(); n > 0 {
		cmd.Printf("\n  Concepts (%d):\n", n)
		for _, c := range doc.Concepts.All() {
			cmd.Printf("    [%s] %s\n", c.Importance, c.Name)
		}
	}
	if len(doc.Entities) > 0 {
		cmd.Println("\n  Entities:")
		for _, e := range doc.Entities {
			cmd.Printf("    [%s] %s\n", e.Type, e.Name)
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := knowledgeService.Document(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := ingestService.Remove(ctx, docID); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", docID)
	return nil
}
