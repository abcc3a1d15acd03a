package dto

import (
	"opx-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type CommandRequest struct {
	Text      string                 `json:"text" validate:"required"`
	UIContext map[string]interface{} `json:"ui_context"`
}

type CommandResponse struct {
	Success        bool                  `json:"success"`
	Response       string                `json:"response"`
	VoiceConfig    store.VoiceConfig     `json:"voice_config"`
	Visualizations []store.Visualization `json:"visualizations,omitempty"`
	Suggestions    []store.Suggestion    `json:"suggestions,omitempty"`
	Intent         string                `json:"intent,omitempty"`
	QualityScore   int                   `json:"quality_score"`
	Error          string                `json:"error,omitempty"`
}

type HistoryResponse struct {
	Entries []store.ConversationEntry `json:"entries"`
}

// PublishEmbedRecordMessage is the broker payload asking the consumer
// to (re)vectorize one CRM record.
type PublishEmbedRecordMessage struct {
	EntityType string    `json:"entity_type"`
	EntityId   uuid.UUID `json:"entity_id"`
	Document   string    `json:"document"`
	Deleted    bool      `json:"deleted"`
}
