package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyCorpus = errors.New("corpus contains no passages")

// corpusFile is the YAML shape of an external corpus file.
type corpusFile struct {
	Passages []Passage `yaml:"passages"`
}

// Load reads a corpus from a YAML file. Passages with blank text are
// rejected rather than silently dropped so a malformed corpus is caught
// at startup instead of at retrieval time.
func Load(path string) ([]Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	if len(file.Passages) == 0 {
		return nil, ErrEmptyCorpus
	}

	for i := range file.Passages {
		if strings.TrimSpace(file.Passages[i].Text) == "" {
			return nil, fmt.Errorf("passage %d has no text", i)
		}
		file.Passages[i].ID = i
	}

	return file.Passages, nil
}

// LoadOrBuiltin loads a corpus from path, or returns the built-in corpus
// when path is empty.
func LoadOrBuiltin(path string) ([]Passage, error) {
	if path == "" {
		return Builtin(), nil
	}
	return Load(path)
}
