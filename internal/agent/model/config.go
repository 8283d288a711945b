package model

// ================ Config ================
type SessionConfig struct {
	TTL     string `envconfig:"SESSION_TTL" default:"30m"`
	History struct {
		MaxTurns int `envconfig:"SESSION_HISTORY_MAX_TURNS" default:"10"`
	}
}

type CacheConfig struct {
	TTL string `envconfig:"RESPONSE_CACHE_TTL" default:"10m"`
}

type GeneratorModelConfig struct {
	Model       string  `envconfig:"GENERATOR_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"GENERATOR_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"GENERATOR_TEMPERATURE" default:"0.4"`
	Timeout     string  `envconfig:"GENERATOR_TIMEOUT" default:"20s"`
}

type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"16"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
}

type PromptConfig struct {
	AgentName   string `envconfig:"PROMPT_AGENT_NAME" default:"Xiara"`
	Marketplace string `envconfig:"PROMPT_MARKETPLACE" default:"Pasar"`
}
