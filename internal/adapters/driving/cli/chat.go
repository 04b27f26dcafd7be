package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [doc-id]",
	Short: "Start an interactive chat session about a document",
	Long: `Launches an interactive terminal session for asking questions
about one document. The conversation keeps the last few turns as
context.

Controls:
  Enter - Ask the typed question
  Esc   - Quit the session`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	if chatService == nil || knowledgeService == nil {
		return errors.New("chat service not configured")
	}

	// Panic recovery so terminal state problems come with a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat session: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	docID := args[0]
	ctx := context.Background()

	doc, err := knowledgeService.Document(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if err := chatService.LoadDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to start chat: %w", err)
	}

	return tui.Run(chatService, doc)
}
