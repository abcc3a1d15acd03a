package service

import (
	"context"
	"time"

	"opx-assistant-be/internal/dto"
	"opx-assistant-be/internal/pkg/logger"
	"opx-assistant-be/internal/websocket"
	"opx-assistant-be/pkg/assistant/executor"
	"opx-assistant-be/pkg/assistant/memory"
	"opx-assistant-be/pkg/events"
	"opx-assistant-be/pkg/nats"
	"opx-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IAssistantService interface {
	ProcessCommand(ctx context.Context, userId string, req *dto.CommandRequest) (*dto.CommandResponse, error)
	History(ctx context.Context, userId string, limit int) (*dto.HistoryResponse, error)
}

type assistantService struct {
	orchestrator  *executor.Orchestrator
	memory        *memory.Store
	hub           *websocket.Hub
	natsPublisher *nats.Publisher
	logger        logger.ILogger
}

func NewAssistantService(
	orchestrator *executor.Orchestrator,
	mem *memory.Store,
	hub *websocket.Hub,
	natsPublisher *nats.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		orchestrator:  orchestrator,
		memory:        mem,
		hub:           hub,
		natsPublisher: natsPublisher,
		logger:        log,
	}
}

func (s *assistantService) ProcessCommand(ctx context.Context, userId string, req *dto.CommandRequest) (*dto.CommandResponse, error) {
	cmd := store.Command{
		Text:       req.Text,
		UserID:     userId,
		ReceivedAt: time.Now(),
	}

	result := s.orchestrator.Run(ctx, cmd, store.UIContext(req.UIContext))

	resp := &dto.CommandResponse{
		Success:        result.Success,
		Response:       result.Response,
		VoiceConfig:    result.VoiceConfig,
		Visualizations: result.Visualizations,
		Suggestions:    result.Suggestions,
		Intent:         result.Intent,
		QualityScore:   result.QualityScore,
		Error:          result.Error,
	}

	if s.hub != nil {
		if uid, err := uuid.Parse(userId); err == nil {
			s.hub.Send(uid, "assistant_response", resp)
		}
	}

	if s.natsPublisher != nil {
		event := events.NewCommandProcessedEvent(userId, result.Intent, result.Success, result.QualityScore)
		if err := s.natsPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("AssistantService", "Failed to publish command event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("AssistantService", "Command processed", map[string]interface{}{
		"user_id":       userId,
		"intent":        result.Intent,
		"success":       result.Success,
		"quality_score": result.QualityScore,
	})

	return resp, nil
}

func (s *assistantService) History(ctx context.Context, userId string, limit int) (*dto.HistoryResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	return &dto.HistoryResponse{Entries: s.memory.Recent(limit)}, nil
}
