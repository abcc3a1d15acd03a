package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"opx-assistant-be/internal/dto"
	"opx-assistant-be/internal/entity"
	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/pkg/embedding"
	"opx-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedRecordMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing record embedding for %s/%s", payload.EntityType, payload.EntityId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if payload.Deleted {
		if err := uow.DataEmbeddingRepository().DeleteByEntity(ctx, payload.EntityType, payload.EntityId); err != nil {
			log.Printf("[ERROR] Failed to delete embeddings for %s/%s: %v", payload.EntityType, payload.EntityId, err)
			msg.Nack()
			return
		}
		log.Printf("[INFO] Embeddings removed for %s/%s", payload.EntityType, payload.EntityId)
		msg.Ack()
		return
	}

	if payload.Document == "" {
		log.Printf("[ERROR] Empty document for %s/%s", payload.EntityType, payload.EntityId)
		msg.Ack() // Nothing to embed, retrying will not help.
		return
	}

	// ChunkSize: 1500 chars (approx 375 tokens) - Ultra safe for context limits
	// Overlap: 200 chars
	chunks := utils.SplitText(payload.Document, 1500, 200)
	log.Printf("[INFO] Document split into %d chunks", len(chunks))

	vectors, err := cs.embeddingProvider.GenerateBatch(ctx, chunks)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embeddings for %s/%s: %v", payload.EntityType, payload.EntityId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if len(vectors) != len(chunks) {
		log.Printf("[ERROR] Provider returned %d vectors for %d chunks", len(vectors), len(chunks))
		msg.Nack()
		return
	}

	newEmbeddings := make([]*entity.DataEmbedding, len(chunks))
	for i, chunk := range chunks {
		newEmbeddings[i] = &entity.DataEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: vectors[i],
			EntityType:     payload.EntityType,
			EntityId:       payload.EntityId,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DataEmbeddingRepository().DeleteByEntity(ctx, payload.EntityType, payload.EntityId); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.DataEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Record processed: %d chunks for %s/%s", len(newEmbeddings), payload.EntityType, payload.EntityId)
	msg.Ack()
}
