// Package config loads the application configuration from a YAML file,
// falling back to defaults when no file exists. Model identifiers and
// retrieval width are startup constants, not runtime-negotiable.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EmbedderConfig configures the embedding model.
type EmbedderConfig struct {
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// LLMConfig configures the story generation model. Temperature is a
// pointer so an explicit 0 in the file is distinguishable from the key
// being absent.
type LLMConfig struct {
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	Backend string        `yaml:"backend"`
	Milvus  *MilvusConfig `yaml:"milvus,omitempty"`
}

// MilvusConfig contains connection details for a Milvus vector store.
type MilvusConfig struct {
	Address    string `yaml:"address"`
	Collection string `yaml:"collection"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	TopK       int            `yaml:"top_k"`
	CorpusPath string         `yaml:"corpus_path"`
	Embedder   EmbedderConfig `yaml:"embedder"`
	LLM        LLMConfig      `yaml:"llm"`
	Store      StoreConfig    `yaml:"store"`
}

// Load reads a config from the specified path. If the file does not
// exist, it returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.TopK == 0 {
		cfg.TopK = 2
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.Dimension == 0 {
		cfg.Embedder.Dimension = 1536
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.LLM.Temperature == nil {
		temp := 0.8
		cfg.LLM.Temperature = &temp
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1500
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.Backend == "milvus" && cfg.Store.Milvus == nil {
		cfg.Store.Milvus = &MilvusConfig{}
	}
	if cfg.Store.Milvus != nil {
		if cfg.Store.Milvus.Address == "" {
			cfg.Store.Milvus.Address = "localhost:19530"
		}
		if cfg.Store.Milvus.Collection == "" {
			cfg.Store.Milvus.Collection = "storyteller_passages"
		}
	}
}
