package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration file path and the effective settings.
Unset values show the built-in default they resolve to.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	st := configStore.Settings()

	backend := st.Completion.Backend
	if backend == "" {
		backend = "none"
	}
	storageDir := st.Storage.Dir
	if storageDir == "" {
		storageDir = "~/.scholia/data"
	}
	extensions := st.Watch.Extensions
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md", ".markdown"}
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())
	cmd.Printf("  completion.backend:  %s\n", backend)
	if st.Completion.Model != "" {
		cmd.Printf("  completion.model:    %s\n", st.Completion.Model)
	}
	if st.Completion.BaseURL != "" {
		cmd.Printf("  completion.base_url: %s\n", st.Completion.BaseURL)
	}
	cmd.Printf("  storage.dir:         %s\n", storageDir)
	cmd.Printf("  watch.extensions:    %s\n", strings.Join(extensions, ", "))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Save(configStore.Settings()); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", configStore.Path())
	return nil
}
