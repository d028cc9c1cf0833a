package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"hyperassist/internal/core"
	"hyperassist/pkg"
)

// YAMLConfig represents the structure of config.yaml
type YAMLConfig struct {
	Generation struct {
		Enabled     bool    `yaml:"enabled"`
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"generation"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Corpus struct {
		Path string `yaml:"path"`
	} `yaml:"corpus"`
}

// LoadConfig loads configuration from config.yaml
func LoadConfig(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config YAMLConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML: %v", err)
	}

	return &config, nil
}

// LoadLogConfig loads logger settings from the environment.
func LoadLogConfig() (pkg.LogConfig, error) {
	var logConfig pkg.LogConfig
	if err := envconfig.Process("", &logConfig); err != nil {
		return pkg.LogConfig{}, fmt.Errorf("error processing environment configuration: %v", err)
	}
	return logConfig, nil
}

// BuildGenerationConfig creates GenerationConfig from YAML config and the
// API key taken from the environment. The defaults target Groq's
// OpenAI-compatible endpoint.
func BuildGenerationConfig(yamlConfig *YAMLConfig, apiKey string) pkg.GenerationConfig {
	generation := pkg.GenerationConfig{
		Enabled:     yamlConfig.Generation.Enabled,
		Provider:    yamlConfig.Generation.Provider,
		Model:       yamlConfig.Generation.Model,
		APIKey:      apiKey,
		BaseURL:     yamlConfig.Generation.BaseURL,
		MaxTokens:   yamlConfig.Generation.MaxTokens,
		Temperature: yamlConfig.Generation.Temperature,
	}
	if generation.Model == "" {
		generation.Model = "llama-3.1-8b-instant"
	}
	if generation.BaseURL == "" {
		generation.BaseURL = "https://api.groq.com/openai/v1"
	}
	if generation.MaxTokens == 0 {
		generation.MaxTokens = 1024
	}
	return generation
}

// BuildCoreConfig creates core.Config with the default pipeline flow:
// redact, signal extraction, profile update, then retrieval only when the
// profile node flags a store/order/policy intent, then prompt composition
// and generation.
func BuildCoreConfig(yamlConfig *YAMLConfig, generation pkg.GenerationConfig, logConfig pkg.LogConfig) core.Config {
	addr := yamlConfig.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	return core.Config{
		Generation: generation,
		Server:     pkg.ServerConfig{Addr: addr},
		Log:        logConfig,
		Corpus:     core.CorpusConfig{Path: yamlConfig.Corpus.Path},
		Graph: core.GraphConfig{
			DefaultFlow: DefaultFlow(),
		},
	}
}

// DefaultFlow returns the standard node graph.
func DefaultFlow() core.GraphFlow {
	return core.GraphFlow{
		StartNode: "redact",
		Edges: map[string][]core.GraphEdge{
			"redact": {
				{To: "signals", Priority: 1},
			},
			"signals": {
				{To: "profile", Priority: 1},
			},
			"profile": {
				{To: "retrieve", Condition: map[string]any{"need_docs": true}, Priority: 1},
				{To: "compose", Priority: 2},
			},
			"retrieve": {
				{To: "compose", Priority: 1},
			},
			"compose": {
				{To: "generate", Priority: 1},
			},
			"generate": {
				{To: "complete", Priority: 1},
			},
		},
	}
}
