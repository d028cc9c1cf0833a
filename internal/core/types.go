package core

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"hyperassist/pkg"
)

// Node represents a single processing unit in the pipeline flow
type Node interface {
	Execute(ctx context.Context, input NodeInput) (NodeOutput, error)
	GetName() string
	GetType() NodeType
}

// NodeType defines the different types of nodes in the pipeline
type NodeType string

const (
	NodeTypeRedact   NodeType = "redact"
	NodeTypeSignals  NodeType = "signals"
	NodeTypeProfile  NodeType = "profile"
	NodeTypeRetrieve NodeType = "retrieve"
	NodeTypeCompose  NodeType = "compose"
	NodeTypeGenerate NodeType = "generate"
)

// NodeInput contains the accumulated request state handed to each node.
// RawLocation is intentionally never redacted: it is request metadata from
// the client app, not message content, and retrieval plus the composer
// match against it verbatim.
type NodeInput struct {
	RawMessage      string               `json:"raw_message"`
	RedactedMessage string               `json:"redacted_message"`
	CustomerID      string               `json:"customer_id"`
	RawLocation     string               `json:"raw_location"`
	Intent          string               `json:"intent,omitempty"`
	Mood            string               `json:"mood,omitempty"`
	Profile         *pkg.CustomerProfile `json:"profile,omitempty"`
	Documents       []pkg.Document       `json:"documents,omitempty"`
	PromptMessages  []*schema.Message    `json:"-"`
	Metadata        map[string]any       `json:"metadata"`
}

// NodeOutput contains the output data from a node
type NodeOutput struct {
	Data     map[string]any `json:"data"`
	NextNode string         `json:"next_node,omitempty"`
	Error    error          `json:"error,omitempty"`
	Complete bool           `json:"complete"`
}

// Pipeline orchestrates the execution of nodes in a graph flow
type Pipeline interface {
	Execute(ctx context.Context, input PipelineInput) (*PipelineOutput, error)
	AddNode(node Node) error
	GetNode(name string) (Node, error)
	SetFlow(flow GraphFlow) error
}

// PipelineInput is the main input for the pipeline
type PipelineInput struct {
	Message    string `json:"message"`
	CustomerID string `json:"customer_id"`
	Location   string `json:"location"`
}

// PipelineOutput is the bundle produced by one pass through the pipeline.
// Intent is always non-empty; Mood may be empty; Documents holds at most
// three entries and empty means "no relevant internal documents".
type PipelineOutput struct {
	Reply           string               `json:"reply"`
	RedactedMessage string               `json:"redacted_message"`
	Intent          string               `json:"intent"`
	Mood            string               `json:"mood,omitempty"`
	Profile         *pkg.CustomerProfile `json:"profile"`
	Documents       []pkg.Document       `json:"documents"`
	ProcessingTime  int64                `json:"processing_time_ms"`
	Metadata        map[string]any       `json:"metadata"`
}

// GraphFlow defines the execution flow between nodes
type GraphFlow struct {
	StartNode string                 `json:"start_node"`
	Edges     map[string][]GraphEdge `json:"edges"` // node_name -> possible next nodes
}

// GraphEdge represents a connection between two nodes with conditions
type GraphEdge struct {
	To        string         `json:"to"`
	Condition map[string]any `json:"condition,omitempty"`
	Priority  int            `json:"priority"`
}

// Config holds all configuration for the pipeline service
type Config struct {
	Generation pkg.GenerationConfig `json:"generation"`
	Server     pkg.ServerConfig     `json:"server"`
	Log        pkg.LogConfig        `json:"log"`
	Corpus     CorpusConfig         `json:"corpus"`
	Graph      GraphConfig          `json:"graph"`
}

// CorpusConfig holds knowledge corpus configuration
type CorpusConfig struct {
	Path string `json:"path"` // optional YAML override; empty uses the built-in corpus
}

// GraphConfig holds pipeline flow configuration
type GraphConfig struct {
	DefaultFlow GraphFlow `json:"default_flow"`
}
