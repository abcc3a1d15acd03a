package bootstrap

import (
	"context"
	"log"
	"os"

	"opx-assistant-be/internal/config"
	"opx-assistant-be/internal/controller"
	"opx-assistant-be/internal/pkg/logger"
	"opx-assistant-be/internal/repository/unitofwork"
	"opx-assistant-be/internal/service"
	"opx-assistant-be/internal/websocket"
	"opx-assistant-be/pkg/assistant/action"
	"opx-assistant-be/pkg/assistant/contextinfo"
	"opx-assistant-be/pkg/assistant/executor"
	"opx-assistant-be/pkg/assistant/intent"
	"opx-assistant-be/pkg/assistant/knowledge"
	"opx-assistant-be/pkg/assistant/memory"
	"opx-assistant-be/pkg/assistant/permission"
	"opx-assistant-be/pkg/assistant/planner"
	"opx-assistant-be/pkg/assistant/response"
	"opx-assistant-be/pkg/assistant/search"
	"opx-assistant-be/pkg/assistant/suggestion"
	"opx-assistant-be/pkg/assistant/supervisor"
	"opx-assistant-be/pkg/assistant/visualization"
	"opx-assistant-be/pkg/embedding"
	"opx-assistant-be/pkg/llm/factory"

	pktNats "opx-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}
	// 24h response cache in front of the raw provider
	cachedEmbedder := embedding.NewCachedProvider(embeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Domain Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	actorService := service.NewActorService(uowFactory)
	datasetService := service.NewDatasetService(uowFactory)
	vectorIndexService := service.NewVectorIndexService(uowFactory)

	companyService := service.NewCompanyService(uowFactory, publisherService)
	employeeService := service.NewEmployeeService(uowFactory, publisherService)
	prospectService := service.NewProspectService(uowFactory, publisherService)
	campaignService := service.NewCampaignService(uowFactory, publisherService)
	benefitService := service.NewBenefitService(uowFactory, publisherService)
	productService := service.NewProductService(uowFactory, publisherService)
	integrationService := service.NewIntegrationService(uowFactory)

	// 6. Pipeline Stages
	stageLogger := log.New(os.Stdout, "[assistant] ", log.LstdFlags)
	kb := knowledge.NewBase()
	conversationMemory := memory.NewStore()

	dispatcher := action.NewDispatcher(action.Collaborators{
		Companies:    companyService,
		Employees:    employeeService,
		Prospects:    prospectService,
		Campaigns:    campaignService,
		Benefits:     benefitService,
		Products:     productService,
		Integrations: integrationService,
	}, stageLogger)

	orchestrator := executor.NewOrchestrator(executor.Deps{
		Supervisor:  supervisor.New(llmProvider, stageLogger),
		Classifier:  intent.NewClassifier(llmProvider, stageLogger),
		Permissions: permission.NewEvaluator(actorService, stageLogger),
		Actors:      actorService,
		Collector:   contextinfo.NewCollector(actorService, stageLogger),
		Planner:     planner.NewPlanner(llmProvider, kb, stageLogger),
		Queries:     action.NewQueryExecutor(datasetService, stageLogger),
		Search:      search.NewEngine(cachedEmbedder, vectorIndexService, datasetService, stageLogger),
		Dispatcher:  dispatcher,
		Viz:         visualization.NewBuilder(),
		Composer:    response.NewComposer(),
		Suggestions: suggestion.NewGenerator(),
		Memory:      conversationMemory,
		Logger:      stageLogger,
	})

	assistantService := service.NewAssistantService(orchestrator, conversationMemory, wsHub, natsPub, sysLogger)

	// 7. Background Services
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, uowFactory, cachedEmbedder)

	// 8. Controllers
	assistantController := controller.NewAssistantController(assistantService, wsHub)

	return &Container{
		AssistantController: assistantController,
		ConsumerService:     consumerService,
		WebSocketHub:        wsHub,
	}
}
