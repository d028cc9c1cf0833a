package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperassist/pkg"
)

func TestNewChatModelDisabled(t *testing.T) {
	chatModel, err := NewChatModel(context.Background(), pkg.GenerationConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, chatModel)
}

func TestNewChatModelUnknownProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), pkg.GenerationConfig{
		Enabled:  true,
		Provider: "carrier-pigeon",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generation provider")
}

func TestNewChatModelOpenAIRequiresKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), pkg.GenerationConfig{
		Enabled:  true,
		Provider: "openai",
		Model:    "llama-3.1-8b-instant",
	})
	assert.Error(t, err)
}

func TestNewChatModelArkRequiresKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), pkg.GenerationConfig{
		Enabled:  true,
		Provider: "ark",
	})
	assert.Error(t, err)
}

func TestNewChatModelDeepseekRequiresKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), pkg.GenerationConfig{
		Enabled:  true,
		Provider: "deepseek",
	})
	assert.Error(t, err)
}
