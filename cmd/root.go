package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storyteller",
	Short: "Storyteller - retrieval-augmented story generation",
	Long: `Storyteller writes short, culturally-informed stories grounded in a
curated knowledge base of folklore and mythology.

Each request embeds your story idea, retrieves the most relevant passages
from the corpus, and asks a language model to weave them into a story.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
