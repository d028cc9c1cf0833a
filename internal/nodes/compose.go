package nodes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"hyperassist/internal/core"
	"hyperassist/pkg"
)

// noDocsText is what the model sees when retrieval was skipped or empty.
const noDocsText = "No specific internal documents were found for this question."

const systemTemplate = `You are a hyper-personalized AI Customer Support & Personal Assistant.

You can answer ANY type of question:
- general knowledge (e.g., who is the president of a country),
- lifestyle & food suggestions,
- basic wellness tips (non-medical, always suggest seeing a doctor for serious issues),
- shopping, orders, store timings, refunds, memberships, etc.

You MUST:
- Use the customer's profile, interests, previous messages, and location when helpful.
- Use internal docs (context) for anything related to orders, stores, policies or membership.
- Be specific and actionable. When user is near a store or location, suggest clear next steps.
- Keep answers friendly, concise (2-5 sentences), and easy to read.
- Sound caring and human: reflect their mood gently (if they seem cold, tired, bored, etc.).

Customer profile:
- ID: {customer_id}
- Name: {customer_name}
- Loyalty tier: {loyalty_tier}
- Home / last known location text: {last_location}
- City (rough): {city}
- Known interests: {interests}
- Notes: {notes}
- Most common type of question so far: {top_intent}
- Recent mood trend: {mood_trend}

Recent conversation history (most recent last): {recent_history}

If the user says "I'm cold" and mentions or implies they are outside a store or mall, invite them to go inside somewhere nearby (like a cafe, store, or waiting area) and optionally suggest a warm drink or snack.
Never mention that you are masking data or that you are using internal documents. Just answer naturally.`

const userTemplate = `User message (PII masked): {masked_message}

Detected intent: {intent}
Detected mood: {mood}

Relevant internal documents (for store/order/policy context, if any):
{context_text}

Now respond with a friendly, short answer that feels personal to {customer_name}.
You should:
- Acknowledge their location when relevant (they wrote: "{raw_location}").
- Use their interests when suggesting food, places, or activities.
- If intent is general_knowledge, give a clear, correct answer plus a tiny personal touch.
- If intent is health_advice, give only general self-care tips and advise consulting a doctor for serious issues.
- If intent is order_status/store_info/refund_policy/product_availability/location_help or cold_outside, use the internal docs when possible and give very actionable next steps.
- If chit_chat, talk like a warm friend who remembers their preferences.`

// ComposeNode merges the profile, retrieved documents and detected signals
// into the chat messages handed to the external generator.
type ComposeNode struct {
	template prompt.ChatTemplate
}

// NewComposeNode creates a new prompt composition node
func NewComposeNode() *ComposeNode {
	template := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemTemplate),
		schema.UserMessage(userTemplate),
	)
	return &ComposeNode{template: template}
}

// Execute renders the prompt template against the request bundle
func (c *ComposeNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	if input.Profile == nil {
		return core.NodeOutput{Error: fmt.Errorf("no profile available for customer %s", input.CustomerID)}, nil
	}

	messages, err := c.template.Format(ctx, templateParams(input))
	if err != nil {
		return core.NodeOutput{Error: fmt.Errorf("error formatting prompt: %v", err)}, nil
	}

	return core.NodeOutput{
		Data: map[string]any{
			"prompt_messages": messages,
		},
		NextNode: "generate",
		Complete: false,
	}, nil
}

// GetName returns the node name
func (c *ComposeNode) GetName() string {
	return "compose"
}

// GetType returns the node type
func (c *ComposeNode) GetType() core.NodeType {
	return core.NodeTypeCompose
}

func templateParams(input core.NodeInput) map[string]any {
	profile := input.Profile

	name := profile.Name
	if name == "" {
		name = "friend"
	}

	interests := "not known yet"
	if len(profile.FavoriteTopics) > 0 {
		interests = strings.Join(profile.FavoriteTopics, ", ")
	}

	city := profile.CurrentCity
	if city == "" {
		city = "Unknown"
	}

	mood := input.Mood
	if mood == "" {
		mood = "unknown"
	}

	return map[string]any{
		"customer_id":    profile.ID,
		"customer_name":  name,
		"loyalty_tier":   profile.LoyaltyTier,
		"last_location":  profile.LastLocation,
		"city":           city,
		"interests":      interests,
		"notes":          profile.Notes,
		"top_intent":     topIntent(profile),
		"mood_trend":     moodTrend(profile),
		"recent_history": recentHistory(profile.History, 5),
		"masked_message": input.RedactedMessage,
		"intent":         input.Intent,
		"mood":           mood,
		"context_text":   contextText(input.Documents),
		"raw_location":   input.RawLocation,
	}
}

// topIntent picks the most frequent intent so far; ties break
// lexicographically so the prompt stays deterministic.
func topIntent(profile *pkg.CustomerProfile) string {
	if len(profile.FrequentIntents) == 0 {
		return "unknown"
	}

	labels := make([]string, 0, len(profile.FrequentIntents))
	for label := range profile.FrequentIntents {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	top := labels[0]
	for _, label := range labels[1:] {
		if profile.FrequentIntents[label] > profile.FrequentIntents[top] {
			top = label
		}
	}
	return top
}

func moodTrend(profile *pkg.CustomerProfile) string {
	if len(profile.MoodHistory) == 0 {
		return "unknown"
	}
	return profile.MoodHistory[len(profile.MoodHistory)-1]
}

func recentHistory(history []string, maxMessages int) string {
	if len(history) == 0 {
		return "No prior messages."
	}
	if len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}
	return strings.Join(history, " | ")
}

func contextText(docs []pkg.Document) string {
	if len(docs) == 0 {
		return noDocsText
	}
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf("%s: %s", doc.Title, doc.Text))
	}
	return strings.Join(parts, "\n\n")
}
