package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fableworks/storyteller/internal/config"
	"github.com/fableworks/storyteller/internal/knowledge"
	"github.com/fableworks/storyteller/internal/pipeline"
	"github.com/fableworks/storyteller/internal/rag"
	"github.com/fableworks/storyteller/internal/story"
)

var (
	cfgPath string
	topK    int
	verbose bool
)

var tellCmd = &cobra.Command{
	Use:   "tell [story idea]",
	Short: "Generate one story for a request",
	Long: `Generate a single story grounded in the folklore knowledge base.

This command:
1. Embeds the corpus and builds a similarity index
2. Retrieves the passages most relevant to your request
3. Composes a storytelling prompt from the retrieved context
4. Generates the story with an LLM (OpenAI)

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings and generation
  MILVUS_ADDRESS     - Milvus address (only with the milvus store backend)

Examples:
  storyteller tell "a story about a mythical fox from Japan"
  storyteller tell "a tale of a hidden city of gold" --topk 3 --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runTell,
}

func init() {
	rootCmd.AddCommand(tellCmd)
	tellCmd.Flags().StringVar(&cfgPath, "config", "config.yaml", "Path to config YAML")
	tellCmd.Flags().IntVar(&topK, "topk", 0, "Number of passages to retrieve as context (overrides config)")
	tellCmd.Flags().BoolVar(&verbose, "verbose", false, "Show retrieved passages and progress")
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	requestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Italic(true)
	storyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

func runTell(cmd *cobra.Command, args []string) error {
	request := args[0]
	ctx := context.Background()

	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	pipe, passages, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer pipe.Close()

	if verbose {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d passages", len(passages))))
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Story request:"))
	fmt.Println(requestStyle.Render(request))
	fmt.Println()

	if verbose {
		fmt.Println(contextStyle.Render("→ Retrieving context..."))
		results, err := pipe.Retrieve(ctx, request)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		for _, res := range results {
			fmt.Println(contextStyle.Render(fmt.Sprintf("  [%.2f] %s", res.Score, res.Passage.Text)))
		}
		fmt.Println(contextStyle.Render("→ Generating story..."))
		fmt.Println()
	}

	st, err := pipe.Run(ctx, request)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	fmt.Println(headerStyle.Render("Your story:"))
	fmt.Println()
	fmt.Println(storyStyle.Render(strings.TrimSpace(st.Text)))
	fmt.Println()

	return nil
}

// buildPipeline loads configuration and the corpus, then constructs the
// process-wide pipeline. Commands call this exactly once; interactive
// submissions reuse the handle.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, []knowledge.Passage, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	passages, err := knowledge.LoadOrBuiltin(cfg.CorpusPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	pipeCfg := pipelineConfig(cfg)
	if topK > 0 {
		pipeCfg.TopK = topK
	}

	pipe, err := pipeline.Shared(ctx, pipeCfg, passages)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return pipe, passages, nil
}

func pipelineConfig(cfg *config.AppConfig) pipeline.Config {
	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.TopK = cfg.TopK
	pipeCfg.EmbedderModel = cfg.Embedder.Model
	pipeCfg.EmbedderDimension = cfg.Embedder.Dimension
	pipeCfg.StoreBackend = cfg.Store.Backend
	pipeCfg.LLMConfig = story.LLMConfig{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	if cfg.Store.Milvus != nil {
		pipeCfg.MilvusConfig = rag.MilvusConfig{
			Address:        cfg.Store.Milvus.Address,
			CollectionName: cfg.Store.Milvus.Collection,
			Dimension:      cfg.Embedder.Dimension,
			IndexType:      "HNSW",
			MetricType:     "COSINE",
			M:              16,
			EfConstruction: 256,
		}
	}
	return pipeCfg
}
