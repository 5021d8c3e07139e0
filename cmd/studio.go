package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fableworks/storyteller/internal/tui"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Start an interactive storytelling session",
	Long: `Start an interactive terminal session for the storyteller.

The knowledge base is embedded and indexed once when the session starts;
every story request reuses the same pipeline. Type an idea, press Enter,
and rate the result with ctrl+y / ctrl+n.`,
	RunE: runStudio,
}

func init() {
	rootCmd.AddCommand(studioCmd)
	studioCmd.Flags().StringVar(&cfgPath, "config", "config.yaml", "Path to config YAML")
	studioCmd.Flags().IntVar(&topK, "topk", 0, "Number of passages to retrieve as context (overrides config)")
}

func runStudio(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	fmt.Println(contextStyle.Render("Warming up the storyteller... (this may take a moment)"))
	pipe, _, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer pipe.Close()

	m := tui.New(pipe)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}
