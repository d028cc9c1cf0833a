package services

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/ollama/ollama/api"

	"hyperassist/pkg"
)

// NewChatModel builds the external generation model from config. The
// default provider is any OpenAI-compatible endpoint (Groq, OpenRouter,
// OpenAI itself); ollama serves local models, ark and deepseek their
// respective platforms. Returns nil when generation is disabled.
func NewChatModel(ctx context.Context, config pkg.GenerationConfig) (model.BaseChatModel, error) {
	if !config.Enabled {
		return nil, nil
	}

	switch config.Provider {
	case "", "openai":
		return newOpenAIModel(ctx, config)
	case "ollama":
		return newOllamaModel(ctx, config)
	case "ark":
		return newArkModel(ctx, config)
	case "deepseek":
		return newDeepseekModel(ctx, config)
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", config.Provider)
	}
}

func newOpenAIModel(ctx context.Context, config pkg.GenerationConfig) (model.BaseChatModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("generation API key is required for provider openai")
	}

	maxTokens := config.MaxTokens
	temperature := float32(config.Temperature)

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		Model:       config.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating chat model: %v", err)
	}
	return chatModel, nil
}

func newOllamaModel(ctx context.Context, config pkg.GenerationConfig) (model.BaseChatModel, error) {
	temperature := float32(config.Temperature)

	chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: config.BaseURL,
		Model:   config.Model,
		Options: &api.Options{
			Temperature: temperature,
			NumPredict:  config.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating ollama chat model: %v", err)
	}
	return chatModel, nil
}

func newArkModel(ctx context.Context, config pkg.GenerationConfig) (model.BaseChatModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("generation API key is required for provider ark")
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey: config.APIKey,
		Model:  config.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating ark chat model: %v", err)
	}
	return chatModel, nil
}

func newDeepseekModel(ctx context.Context, config pkg.GenerationConfig) (model.BaseChatModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("generation API key is required for provider deepseek")
	}

	chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey: config.APIKey,
		Model:  config.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating deepseek chat model: %v", err)
	}
	return chatModel, nil
}
