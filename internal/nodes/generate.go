package nodes

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"

	"hyperassist/internal/core"
	"hyperassist/pkg"
)

// GenerateNode invokes the external chat model with the composed prompt.
// The model is the only blocking collaborator in the request path; when it
// is absent (offline mode) or fails, an intent-keyed fallback reply keeps
// the endpoint total.
type GenerateNode struct {
	chatModel model.BaseChatModel
}

// NewGenerateNode creates a new generation node. A nil model disables the
// external call and always falls back.
func NewGenerateNode(chatModel model.BaseChatModel) *GenerateNode {
	return &GenerateNode{chatModel: chatModel}
}

// Execute generates the reply text
func (g *GenerateNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	if len(input.PromptMessages) == 0 {
		return core.NodeOutput{Error: fmt.Errorf("no prompt messages to generate from")}, nil
	}

	if g.chatModel == nil {
		return core.NodeOutput{
			Data: map[string]any{
				"reply":     FallbackReply(input.Intent),
				"generated": false,
			},
			Complete: true,
		}, nil
	}

	out, err := g.chatModel.Generate(ctx, input.PromptMessages)
	if err != nil {
		log.Printf("Warning: generation failed, using fallback reply: %v", err)
		return core.NodeOutput{
			Data: map[string]any{
				"reply":     FallbackReply(input.Intent),
				"generated": false,
			},
			Error:    fmt.Errorf("error generating reply: %v", err),
			Complete: true,
		}, nil
	}

	return core.NodeOutput{
		Data: map[string]any{
			"reply":     out.Content,
			"generated": true,
		},
		Complete: true,
	}, nil
}

// GetName returns the node name
func (g *GenerateNode) GetName() string {
	return "generate"
}

// GetType returns the node type
func (g *GenerateNode) GetType() core.NodeType {
	return core.NodeTypeGenerate
}

// FallbackReply returns a safe canned answer for the detected intent.
func FallbackReply(intent string) string {
	switch intent {
	case pkg.IntentOrderStatus:
		return "You can track your order from the 'My Orders' section in the app or website using your order ID."
	case pkg.IntentRefundPolicy:
		return "Most items can be returned within 7-10 days of delivery if unused and with the original bill."
	case pkg.IntentStoreInfo:
		return "Most of our partner stores are open from 9 AM to 9 PM, though timings may vary by location."
	case pkg.IntentProductAvailability:
		return "Availability varies by store. Share the item and your city and I can point you in the right direction."
	case pkg.IntentLocationHelp:
		return "Let me know your area and what you are looking for, and I can suggest the closest options."
	case pkg.IntentHealthAdvice:
		return "I can only share general self-care tips. For anything serious, please consult a doctor."
	case pkg.IntentFoodSuggestion:
		return "Happy to suggest something to eat. Tell me what you are in the mood for!"
	case pkg.IntentColdOutside:
		return "If you are feeling cold, step inside a nearby cafe or store and warm up with a hot drink."
	case pkg.IntentGeneralKnowledge:
		return "That's a good question. I'm having trouble reaching my knowledge source right now, please try again in a moment."
	default:
		return "Thanks for your message! I'm here to help with anything you need."
	}
}
