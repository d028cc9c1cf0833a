package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperassist/pkg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `generation:
  enabled: true
  provider: ollama
  model: llama3
  base_url: http://localhost:11434
  max_tokens: 512
  temperature: 0.2
server:
  addr: ":9090"
corpus:
  path: data/corpus.yaml
`)

	yamlConfig, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, yamlConfig.Generation.Enabled)
	assert.Equal(t, "ollama", yamlConfig.Generation.Provider)
	assert.Equal(t, "llama3", yamlConfig.Generation.Model)
	assert.Equal(t, ":9090", yamlConfig.Server.Addr)
	assert.Equal(t, "data/corpus.yaml", yamlConfig.Corpus.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildGenerationConfigDefaults(t *testing.T) {
	path := writeConfig(t, "generation:\n  enabled: true\n")
	yamlConfig, err := LoadConfig(path)
	require.NoError(t, err)

	generation := BuildGenerationConfig(yamlConfig, "test-key")

	assert.Equal(t, "test-key", generation.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", generation.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", generation.BaseURL)
	assert.Equal(t, 1024, generation.MaxTokens)
}

func TestBuildCoreConfig(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \"\"\n")
	yamlConfig, err := LoadConfig(path)
	require.NoError(t, err)

	coreConfig := BuildCoreConfig(yamlConfig, pkg.GenerationConfig{}, pkg.LogConfig{})

	assert.Equal(t, ":8080", coreConfig.Server.Addr)
	assert.Equal(t, "redact", coreConfig.Graph.DefaultFlow.StartNode)
}

func TestDefaultFlowEdges(t *testing.T) {
	flow := DefaultFlow()

	profileEdges := flow.Edges["profile"]
	require.Len(t, profileEdges, 2)
	assert.Equal(t, "retrieve", profileEdges[0].To)
	assert.Equal(t, map[string]any{"need_docs": true}, profileEdges[0].Condition)
	assert.Equal(t, "compose", profileEdges[1].To)

	assert.Equal(t, "complete", flow.Edges["generate"][0].To)
}
