package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"hyperassist/internal/config"
	"hyperassist/internal/core"
	"hyperassist/internal/logger"
	"hyperassist/internal/nodes"
	"hyperassist/internal/server"
	"hyperassist/internal/services"
	"hyperassist/internal/storage"
)

func main() {
	// Load environment variables from .env file when present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	ctx := context.Background()

	yamlConfig, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Error loading config.yaml: %v", err)
	}

	logConfig, err := config.LoadLogConfig()
	if err != nil {
		log.Fatalf("Error loading log configuration: %v", err)
	}
	if err := logger.InitLogger(logConfig); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	generation := config.BuildGenerationConfig(yamlConfig, os.Getenv("GENERATION_API_KEY"))
	coreConfig := config.BuildCoreConfig(yamlConfig, generation, logConfig)

	pipeline, err := buildPipeline(ctx, coreConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	srv := server.New(pipeline, coreConfig.Server)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// buildPipeline wires the node graph: redact, signal extraction, profile
// maintenance, conditional retrieval, prompt composition, generation.
func buildPipeline(ctx context.Context, coreConfig core.Config) (core.Pipeline, error) {
	store := storage.NewProfileStore()

	corpus, err := storage.LoadCorpus(coreConfig.Corpus.Path)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("documents", corpus.Len()).Msg("knowledge corpus loaded")

	chatModel, err := services.NewChatModel(ctx, coreConfig.Generation)
	if err != nil {
		return nil, err
	}
	if chatModel == nil {
		logger.Warn().Msg("generation disabled, replies fall back to canned answers")
	}

	pipeline := core.NewPipeline(coreConfig)
	for _, node := range []core.Node{
		nodes.NewRedactNode(),
		nodes.NewSignalsNode(),
		nodes.NewProfileNode(store),
		nodes.NewRetrieveNode(corpus),
		nodes.NewComposeNode(),
		nodes.NewGenerateNode(chatModel),
	} {
		if err := pipeline.AddNode(node); err != nil {
			return nil, err
		}
	}

	return pipeline, nil
}
