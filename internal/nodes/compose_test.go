package nodes

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperassist/internal/core"
	"hyperassist/pkg"
)

func testProfile() *pkg.CustomerProfile {
	return &pkg.CustomerProfile{
		ID:             "c1",
		Name:           "Asha",
		LoyaltyTier:    "Guest",
		FavoriteTopics: []string{"coffee", "movies"},
		HomeLocation:   "Bangalore, Karnataka",
		CurrentCity:    "Karnataka",
		LastLocation:   "Bangalore, Karnataka",
		History:        []string{"hi", "my name is Asha"},
		MoodHistory:    []string{pkg.MoodHappy},
		FrequentIntents: map[string]int{
			pkg.IntentChitChat:    3,
			pkg.IntentOrderStatus: 1,
		},
		Notes: "New customer, no prior history.",
	}
}

func TestComposeRendersProfileIntoPrompt(t *testing.T) {
	node := NewComposeNode()

	out, err := node.Execute(context.Background(), core.NodeInput{
		CustomerID:      "c1",
		RawLocation:     "Bangalore, Karnataka",
		RedactedMessage: "what do you suggest?",
		Intent:          pkg.IntentChitChat,
		Mood:            pkg.MoodHappy,
		Profile:         testProfile(),
	})
	require.NoError(t, err)
	require.NoError(t, out.Error)

	messages, ok := out.Data["prompt_messages"].([]*schema.Message)
	require.True(t, ok)
	require.Len(t, messages, 2)

	system := messages[0]
	assert.Equal(t, schema.System, system.Role)
	assert.Contains(t, system.Content, "Name: Asha")
	assert.Contains(t, system.Content, "City (rough): Karnataka")
	assert.Contains(t, system.Content, "Known interests: coffee, movies")
	assert.Contains(t, system.Content, "Most common type of question so far: chit_chat")
	assert.Contains(t, system.Content, "Recent mood trend: happy")
	assert.Contains(t, system.Content, "hi | my name is Asha")

	user := messages[1]
	assert.Equal(t, schema.User, user.Role)
	assert.Contains(t, user.Content, "what do you suggest?")
	assert.Contains(t, user.Content, "Detected intent: chit_chat")
	// The raw location is acknowledged verbatim; it is never redacted.
	assert.Contains(t, user.Content, `they wrote: "Bangalore, Karnataka"`)
}

func TestComposeEmptyDocumentsAndUnknowns(t *testing.T) {
	node := NewComposeNode()
	profile := testProfile()
	profile.Name = ""
	profile.FavoriteTopics = nil
	profile.MoodHistory = nil
	profile.FrequentIntents = map[string]int{}
	profile.History = nil

	out, err := node.Execute(context.Background(), core.NodeInput{
		CustomerID:      "c1",
		RedactedMessage: "hello",
		Intent:          pkg.IntentChitChat,
		Profile:         profile,
	})
	require.NoError(t, err)
	require.NoError(t, out.Error)

	messages := out.Data["prompt_messages"].([]*schema.Message)
	system, user := messages[0], messages[1]

	assert.Contains(t, system.Content, "Name: friend")
	assert.Contains(t, system.Content, "Known interests: not known yet")
	assert.Contains(t, system.Content, "Most common type of question so far: unknown")
	assert.Contains(t, system.Content, "Recent mood trend: unknown")
	assert.Contains(t, system.Content, "No prior messages.")
	assert.Contains(t, user.Content, "No specific internal documents were found for this question.")
	assert.Contains(t, user.Content, "Detected mood: unknown")
}

func TestComposeIncludesDocumentContext(t *testing.T) {
	node := NewComposeNode()

	out, err := node.Execute(context.Background(), core.NodeInput{
		CustomerID:      "c1",
		RedactedMessage: "where is my order",
		Intent:          pkg.IntentOrderStatus,
		Profile:         testProfile(),
		Documents: []pkg.Document{
			{ID: 2, Title: "Order Tracking", Location: pkg.DocumentWildcard, Text: "Track orders in the app."},
		},
	})
	require.NoError(t, err)

	user := out.Data["prompt_messages"].([]*schema.Message)[1]
	assert.Contains(t, user.Content, "Order Tracking: Track orders in the app.")
}

func TestComposeRequiresProfile(t *testing.T) {
	node := NewComposeNode()

	out, err := node.Execute(context.Background(), core.NodeInput{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Error(t, out.Error)
}

func TestTopIntentTieBreaksLexicographically(t *testing.T) {
	profile := testProfile()
	profile.FrequentIntents = map[string]int{
		pkg.IntentStoreInfo:   2,
		pkg.IntentOrderStatus: 2,
	}

	assert.Equal(t, pkg.IntentOrderStatus, topIntent(profile))
}
