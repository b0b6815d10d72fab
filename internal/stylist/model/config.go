package model

import "time"

// ================ Config ================
type ConversationConfig struct {
	TTL      string `envconfig:"STYLIST_CONVERSATION_TTL" default:"30m"`
	MaxTurns int    `envconfig:"STYLIST_MAX_TURNS" default:"10"`
	Tools    struct {
		MaxCalls int `envconfig:"STYLIST_TOOL_MAX_CALLS" default:"5"`
	}
}

// HistoryTTL parses TTL; invalid values disable expiry.
func (c ConversationConfig) HistoryTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

type AdviceModelConfig struct {
	Model       string  `envconfig:"STYLIST_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"STYLIST_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"STYLIST_TEMPERATURE" default:"0.6"`
}

type StructuredModelConfig struct {
	Model       string  `envconfig:"STYLIST_STRUCTURED_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"STYLIST_STRUCTURED_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"STYLIST_STRUCTURED_TEMPERATURE" default:"0.2"`
}

type PromptConfig struct {
	BrandName     string `envconfig:"STYLIST_BRAND_NAME" default:"Vancy"`
	AssistantName string `envconfig:"STYLIST_ASSISTANT_NAME" default:"Vancy AI Assistant"`
	Categories    string `envconfig:"STYLIST_CATEGORIES" default:"Polo T-Shirts, Round Neck T-Shirts, Joggers, Chino Shorts, Hoodies, Sweatshirts"`
}

// Config groups everything the stylist reads from the environment.
type Config struct {
	APIKey       string `envconfig:"GEMINI_API_KEY"`
	BaseURL      string `envconfig:"GEMINI_BASE_URL"`
	Timeout      string `envconfig:"STYLIST_TIMEOUT" default:"20s"`
	Advice       AdviceModelConfig
	Structured   StructuredModelConfig
	Prompt       PromptConfig
	Conversation ConversationConfig
}

// CallTimeout parses Timeout, defaulting to 20s.
func (c Config) CallTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// Enabled reports whether a Gemini key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
