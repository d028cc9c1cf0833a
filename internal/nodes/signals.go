package nodes

import (
	"context"
	"log"

	"hyperassist/internal/core"
	"hyperassist/internal/rules"
)

// SignalsNode classifies the redacted message into an intent and an optional
// mood using the deterministic rule cascades.
type SignalsNode struct{}

// NewSignalsNode creates a new signal extraction node
func NewSignalsNode() *SignalsNode {
	return &SignalsNode{}
}

// Execute detects intent and mood on the redacted message
func (s *SignalsNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	intent := rules.DetectIntent(input.RedactedMessage)
	mood := rules.DetectMood(input.RedactedMessage)

	log.Printf("🧠 Signals detected: intent=%s, mood=%q", intent, mood)

	return core.NodeOutput{
		Data: map[string]any{
			"intent": intent,
			"mood":   mood,
		},
		NextNode: "profile",
		Complete: false,
	}, nil
}

// GetName returns the node name
func (s *SignalsNode) GetName() string {
	return "signals"
}

// GetType returns the node type
func (s *SignalsNode) GetType() core.NodeType {
	return core.NodeTypeSignals
}
