package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"opx-assistant-be/internal/dto"

	"github.com/google/uuid"
)

// Helpers shared by the domain action services. Command parameters
// arrive as loosely typed maps extracted from free text; a missing or
// mistyped value reads as the zero value.

func stringParam(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func floatParam(params map[string]interface{}, key string) float64 {
	if params == nil {
		return 0
	}
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func uuidParam(params map[string]interface{}, key string) (uuid.UUID, bool) {
	raw := stringParam(params, key)
	if raw == "" {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

// publishEmbedRecord queues one record for vectorization. Publishing is
// best-effort; the mutation itself has already committed.
func publishEmbedRecord(ctx context.Context, publisher IPublisherService, msg dto.PublishEmbedRecordMessage) {
	if publisher == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal embed message for %s/%s: %v", msg.EntityType, msg.EntityId, err)
		return
	}
	if err := publisher.Publish(ctx, payload); err != nil {
		log.Printf("[ERROR] Failed to publish embed message for %s/%s: %v", msg.EntityType, msg.EntityId, err)
	}
}
