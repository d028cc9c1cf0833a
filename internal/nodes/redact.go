package nodes

import (
	"context"

	"hyperassist/internal/core"
	"hyperassist/internal/rules"
)

// RedactNode masks PII before any other node sees the message.
type RedactNode struct{}

// NewRedactNode creates a new PII redaction node
func NewRedactNode() *RedactNode {
	return &RedactNode{}
}

// Execute replaces email addresses and 10-digit runs with the sentinel token
func (r *RedactNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	masked := rules.Redact(input.RawMessage)

	return core.NodeOutput{
		Data: map[string]any{
			"redacted_message": masked,
			"pii_masked":       masked != input.RawMessage,
		},
		NextNode: "signals",
		Complete: false,
	}, nil
}

// GetName returns the node name
func (r *RedactNode) GetName() string {
	return "redact"
}

// GetType returns the node type
func (r *RedactNode) GetType() core.NodeType {
	return core.NodeTypeRedact
}
