package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regsight/regsight/internal/cache"
	"github.com/regsight/regsight/internal/llm"
	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/pdfx"
)

// newExtractor builds the page-text extractor with the configured cache
// in front of it
func newExtractor(cfg *model.Config) *pdfx.Extractor {
	if !cfg.Cache.Enabled {
		return pdfx.NewExtractor(nil)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(home, ".regsight", "cache")
		}
	}
	memory := cache.NewMemory(cfg.Cache.MemoryTTL)
	if dir == "" {
		return pdfx.NewExtractor(memory)
	}
	return pdfx.NewExtractor(cache.NewTiered(memory, cache.NewDisk(dir, cfg.Cache.DiskTTL)))
}

// applyLLMFlags fills cfg.LLM from the provider/model flags and the
// provider's API key environment variable
func applyLLMFlags(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = modelName

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	case "":
		return fmt.Errorf("an LLM provider is required (openai, anthropic, ollama)")
	default:
		return fmt.Errorf("unknown LLM provider: %s", provider)
	}
	return nil
}

// newProvider constructs the extraction provider from configuration
func newProvider(cfg *model.Config) (llm.Provider, error) {
	return llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
}
