package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askStream bool

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a single question about a document",
	Long: `Answers one question about a document using the most relevant
excerpts as context. Without a completion model configured, the answer
is the relevant excerpts themselves.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askStream, "stream", false, "stream the answer as it is generated")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	docID, question := args[0], args[1]
	ctx := context.Background()

	if err := chatService.LoadDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	if askStream {
		_, err := chatService.AskStream(ctx, question, func(chunk string) {
			cmd.Print(chunk)
		})
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		cmd.Println()
		return nil
	}

	answer, err := chatService.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
