package model

// ================ Config ================
type ConversationConfig struct {
	TTL    string `envconfig:"CONVERSATION_TTL" default:"30m"`
	Router struct {
		// MaxToolCycles caps the model -> tools cycles within one turn.
		MaxToolCycles int `envconfig:"CONVERSATION_MAX_TOOL_CYCLES" default:"25"`
	}
	Explorer struct {
		// MaxTurns caps the destination-explorer sub-dialogue length.
		MaxTurns int `envconfig:"CONVERSATION_EXPLORER_MAX_TURNS" default:"10"`
	}
}

type PlannerModelConfig struct {
	Model       string  `envconfig:"PLANNER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"PLANNER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"PLANNER_TEMPERATURE" default:"0.2"`
	Timeout     string  `envconfig:"PLANNER_TIMEOUT" default:"30s"`
}

type ExplorerModelConfig struct {
	Model       string  `envconfig:"EXPLORER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"EXPLORER_MAX_TOKENS" default:"1500"`
	Temperature float32 `envconfig:"EXPLORER_TEMPERATURE" default:"0.7"`
	Timeout     string  `envconfig:"EXPLORER_TIMEOUT" default:"30s"`
}
