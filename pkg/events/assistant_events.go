package events

import "time"

const CommandProcessedType = "ASSISTANT_COMMAND_PROCESSED"

// NewCommandProcessedEvent records one finished pipeline run for
// downstream consumers (analytics, audit).
func NewCommandProcessedEvent(userId, intent string, success bool, qualityScore int) Event {
	return BaseEvent{
		Type: CommandProcessedType,
		Data: map[string]interface{}{
			"user_id":       userId,
			"intent":        intent,
			"success":       success,
			"quality_score": qualityScore,
		},
		OccurredAt: time.Now(),
	}
}
