package cmd

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hackforge/policy-chatbot-be/config"
	"github.com/hackforge/policy-chatbot-be/database"
	"github.com/hackforge/policy-chatbot-be/handler"
	"github.com/hackforge/policy-chatbot-be/logger"
	"github.com/hackforge/policy-chatbot-be/repository"
	"github.com/hackforge/policy-chatbot-be/service"
	"github.com/hackforge/policy-chatbot-be/types"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the policy Q&A server",
	Long:  `Starts the HTTP server exposing the upload, ask and history endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Init("info", "console")
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
		logger.Init(cfg.Log.Level, cfg.Log.Format)
		defer logger.Sync()

		weaviateDb, err := database.NewWeaviateStore(cfg.Weaviate)
		if err != nil {
			logger.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		embedder := service.NewOpenAIEmbeddingService(
			cfg.Embedding.BaseURL,
			cfg.Embedding.APIKey,
			cfg.Embedding.Model,
		)
		answerer, err := service.NewGeminiService(cfg.Gemini.APIKeys, cfg.Gemini.Model)
		if err != nil {
			logger.Fatalf("Failed to create Gemini service: %v", err)
		}
		defer answerer.Close()

		// Chat history is optional: without a Mongo URI exchanges are
		// simply not recorded.
		var historyRepo repository.HistoryRepo
		if cfg.Mongo.URI != "" {
			mongoClient, err := database.NewMongoClient(context.Background(), cfg.Mongo.URI)
			if err != nil {
				logger.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			defer mongoClient.Disconnect(context.Background())
			historyRepo = repository.NewHistoryRepo(
				mongoClient.Database(cfg.Mongo.Database).Collection("chat_history"),
			)
		} else {
			logger.Warnf("MONGODB_URI not set, chat history disabled")
		}

		documentService := service.NewDocumentService(types.DocumentServiceConfig{
			ChunkSize:    cfg.Retrieval.ChunkSize,
			ChunkOverlap: cfg.Retrieval.ChunkOverlap,
		})
		fileService := service.NewFileService(cfg.UploadDir, documentService)
		sessions := service.NewSessionStore(cfg.SessionTTL)
		classifier := service.NewClassifierService(embedder, weaviateDb, cfg.Retrieval.SimilarityThreshold)
		answerService := service.NewAnswerService(
			embedder,
			weaviateDb,
			answerer,
			sessions,
			historyRepo,
			service.AnswerConfig{
				SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
				ContextLimit:        cfg.Retrieval.ContextLimit,
				TopK:                cfg.Retrieval.TopK,
			},
		)

		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(fileService, classifier, sessions)
		askHandler := handler.NewAskHandler(answerService)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/upload", uploadHandler.HandleUpload)
		router.POST("/ask", askHandler.HandleAsk)
		if historyRepo != nil {
			historyHandler := handler.NewHistoryHandler(historyRepo)
			router.GET("/history", historyHandler.HandleHistory)
		}

		logger.Infof("Starting server on port %s...", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
