package nodes

import (
	"context"
	"log"

	"hyperassist/internal/core"
	"hyperassist/internal/rules"
	"hyperassist/internal/storage"
)

// ProfileNode creates or updates the customer profile from the redacted
// message and records the detected intent and mood. It also decides whether
// the retriever should run for this request.
type ProfileNode struct {
	store *storage.ProfileStore
}

// NewProfileNode creates a new profile maintenance node
func NewProfileNode(store *storage.ProfileStore) *ProfileNode {
	return &ProfileNode{store: store}
}

// Execute applies the per-message profile update sequence
func (p *ProfileNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	p.store.GetOrCreate(input.CustomerID, input.RawLocation, input.RedactedMessage)
	profile := p.store.RecordSignals(input.CustomerID, input.Intent, input.Mood)

	needDocs := rules.NeedsRetrieval(input.Intent)

	log.Printf("👤 Profile updated: customer=%s, city=%s, topics=%d, need_docs=%v",
		profile.ID, profile.CurrentCity, len(profile.FavoriteTopics), needDocs)

	return core.NodeOutput{
		Data: map[string]any{
			"profile":   profile,
			"need_docs": needDocs,
		},
		Complete: false,
	}, nil
}

// GetName returns the node name
func (p *ProfileNode) GetName() string {
	return "profile"
}

// GetType returns the node type
func (p *ProfileNode) GetType() core.NodeType {
	return core.NodeTypeProfile
}
