package conversation

import "tourplan/app/service/prefs"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one entry of a session transcript. Order is significant:
// the first-turn greeting and incremental extraction both depend on it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnResult is what one processed user message yields.
type TurnResult struct {
	AssistantText string       `json:"assistant_text"`
	Preferences   prefs.Record `json:"preferences"`
	IsComplete    bool         `json:"is_complete"`
}
