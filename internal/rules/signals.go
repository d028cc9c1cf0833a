package rules

import (
	"regexp"
	"strings"

	"hyperassist/pkg"
)

// Deterministic signal extraction. Every function here is pure and total
// over lower-cased text; rule order is part of the contract (first match
// wins), so reordering any table changes behavior.

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bmy name is ([a-z]+)`),
	regexp.MustCompile(`\bi am ([a-z]+)`),
	regexp.MustCompile(`\bi'm ([a-z]+)`),
	regexp.MustCompile(`\bthis is ([a-z]+)`),
}

// MaybeExtractName returns the title-cased capture of the first matching
// name pattern, or "" when none match.
func MaybeExtractName(text string) string {
	lower := strings.ToLower(text)
	for _, pat := range namePatterns {
		if m := pat.FindStringSubmatch(lower); m != nil {
			return TitleCase(strings.TrimSpace(m[1]))
		}
	}
	return ""
}

type moodRule struct {
	label    string
	keywords []string
}

// moodRules is a priority list, not a weighted vote: the first group with a
// substring hit wins.
var moodRules = []moodRule{
	{pkg.MoodCold, []string{"cold", "freezing", "chilly"}},
	{pkg.MoodTired, []string{"tired", "sleepy", "exhausted"}},
	{pkg.MoodBored, []string{"bored", "boring"}},
	{pkg.MoodSad, []string{"sad", "depressed", "upset"}},
	{pkg.MoodHappy, []string{"happy", "excited", "great"}},
	{pkg.MoodHungry, []string{"hungry", "starving"}},
}

// DetectMood returns the first matching mood label, or "" when none match.
func DetectMood(message string) string {
	text := strings.ToLower(message)
	for _, rule := range moodRules {
		if containsAny(text, rule.keywords) {
			return rule.label
		}
	}
	return ""
}

type intentRule struct {
	label    string
	keywords []string
}

var intentRules = []intentRule{
	// order / store / policy type
	{pkg.IntentOrderStatus, []string{"where is my order", "track", "tracking", "delivery"}},
	{pkg.IntentRefundPolicy, []string{"refund", "return", "exchange"}},
	{pkg.IntentStoreInfo, []string{"open", "closing time", "close", "store timing"}},
	{pkg.IntentProductAvailability, []string{"size", "in stock", "availability", "stock"}},
	{pkg.IntentLocationHelp, []string{"near me", "nearby", "closest", "around me"}},

	// health / food / mood
	{pkg.IntentHealthAdvice, []string{"headache", "fever", "sick", "health", "medicine"}},
	{pkg.IntentFoodSuggestion, []string{"eat", "restaurant", "food", "hungry"}},

	// coffee-shop style scenario
	{pkg.IntentColdOutside, []string{"cold"}},

	// GK and general questions
	{pkg.IntentGeneralKnowledge, []string{"who is", "what is", "capital of", "when did"}},
}

// DetectIntent runs the ordered intent cascade and always returns a label;
// chit_chat is the universal fallback.
func DetectIntent(message string) string {
	text := strings.ToLower(message)
	for _, rule := range intentRules {
		if containsAny(text, rule.keywords) {
			return rule.label
		}
	}
	return pkg.IntentChitChat
}

// retrievalIntents gates the knowledge retriever: anything else skips
// retrieval entirely.
var retrievalIntents = map[string]bool{
	pkg.IntentStoreInfo:           true,
	pkg.IntentOrderStatus:         true,
	pkg.IntentRefundPolicy:        true,
	pkg.IntentProductAvailability: true,
	pkg.IntentLocationHelp:        true,
	pkg.IntentColdOutside:         true,
}

// NeedsRetrieval reports whether the intent is store/order/policy related.
func NeedsRetrieval(intent string) bool {
	return retrievalIntents[intent]
}

type interestRule struct {
	keyword string
	topic   string
}

// interestRules is ordered so that multiple hits in one message append
// topics deterministically.
var interestRules = []interestRule{
	{"coffee", "coffee"},
	{"latte", "coffee"},
	{"tea", "tea"},
	{"pizza", "pizza"},
	{"biryani", "biryani"},
	{"movie", "movies"},
	{"series", "movies"},
	{"k-drama", "kdrama"},
	{"shopping", "shopping"},
	{"shoes", "fashion"},
	{"dress", "fashion"},
	{"mall", "malls"},
}

// ExtractInterests appends the topic label for every keyword hit not already
// present. Append-if-absent only; topics are never removed.
func ExtractInterests(topics []string, text string) []string {
	lower := strings.ToLower(text)
	for _, rule := range interestRules {
		if strings.Contains(lower, rule.keyword) && !containsLabel(topics, rule.topic) {
			topics = append(topics, rule.topic)
		}
	}
	return topics
}

// ExtractCity derives a rough city from a free-text location: the trailing
// comma segment when present, otherwise the trailing whitespace token.
// Returns "" for empty input.
func ExtractCity(location string) string {
	if location == "" {
		return ""
	}
	if strings.Contains(location, ",") {
		parts := strings.Split(location, ",")
		return TitleCase(strings.TrimSpace(parts[len(parts)-1]))
	}
	parts := strings.Fields(location)
	if len(parts) == 0 {
		return ""
	}
	return TitleCase(parts[len(parts)-1])
}

// TitleCase upper-cases the first letter of each whitespace-separated word
// and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
