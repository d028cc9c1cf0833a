package pkg

// Personalization core types shared across the pipeline.

// Intent labels form a closed set; DetectIntent always returns one of these.
const (
	IntentOrderStatus         = "order_status"
	IntentRefundPolicy        = "refund_policy"
	IntentStoreInfo           = "store_info"
	IntentProductAvailability = "product_availability"
	IntentLocationHelp        = "location_help"
	IntentHealthAdvice        = "health_advice"
	IntentFoodSuggestion      = "food_suggestion"
	IntentColdOutside         = "cold_outside"
	IntentGeneralKnowledge    = "general_knowledge"
	IntentChitChat            = "chit_chat"
)

// Mood labels. An empty string means no mood was detected.
const (
	MoodCold   = "cold"
	MoodTired  = "tired"
	MoodBored  = "bored"
	MoodSad    = "sad"
	MoodHappy  = "happy"
	MoodHungry = "hungry"
)

// HistoryLimit bounds both message history and mood history per profile.
const HistoryLimit = 10

// CustomerProfile is the per-customer state maintained by the store.
// History only ever contains redacted messages.
type CustomerProfile struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	LoyaltyTier     string         `json:"loyalty_tier"`
	FavoriteTopics  []string       `json:"favorite_topics"`
	HomeLocation    string         `json:"home_location"`
	CurrentCity     string         `json:"current_city"`
	LastLocation    string         `json:"last_location"`
	History         []string       `json:"history"`
	MoodHistory     []string       `json:"mood_history"`
	FrequentIntents map[string]int `json:"frequent_intents"`
	Notes           string         `json:"notes"`
}

// Document is a static internal knowledge snippet. Location is either the
// wildcard "any" or a specific location string.
type Document struct {
	ID       int    `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Location string `json:"location" yaml:"location"`
	Text     string `json:"text" yaml:"text"`
}

// DocumentWildcard matches every request location.
const DocumentWildcard = "any"

// ChatRequest is the inbound HTTP payload.
type ChatRequest struct {
	Message    string `json:"message"`
	CustomerID string `json:"customer_id"`
	Location   string `json:"location"`
}

// ChatResponse is the outbound HTTP payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// GenerationConfig holds configuration for the external chat model.
type GenerationConfig struct {
	Enabled     bool    `json:"enabled"`
	Provider    string  `json:"provider"` // openai, ollama, ark, deepseek
	Model       string  `json:"model"`
	APIKey      string  `json:"api_key"`
	BaseURL     string  `json:"base_url"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// ServerConfig holds HTTP listener configuration.
type ServerConfig struct {
	Addr string `json:"addr" envconfig:"SERVER_ADDR"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level      string `json:"level" envconfig:"LOG_LEVEL" default:"info"`
	Format     string `json:"format" envconfig:"LOG_FORMAT" default:"console"`
	Output     string `json:"output" envconfig:"LOG_OUTPUT" default:"stdout"`
	TimeFormat string `json:"time_format" envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
	FilePath   string `json:"file_path" envconfig:"LOG_FILE_PATH" default:"logs/hyperassist.log"`
}
