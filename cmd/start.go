package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/docmind-ai/multirag-be/handler"
	"github.com/docmind-ai/multirag-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document question-answering server",
	Long:  `Starts the HTTP server handling document uploads and questions`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		p, cleanup, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer cleanup()

		websocketService := service.NewWebSocketService(p.answer)

		// Initialize handlers
		queryCounter := &handler.StatsCounter{}
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(p.ingest)
		queryHandler := handler.NewQueryHandler(p.answer, queryCounter)
		documentHandler := handler.NewDocumentHandler(cfg.UploadDir, p.docs)
		healthHandler := handler.NewHealthHandler(cfg.UploadDir, p.store, p.docs, queryCounter)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", healthHandler.RootHandler)
		router.GET("/health", healthHandler.HealthHandler)
		router.GET("/stats", healthHandler.StatsHandler)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/upload", uploadHandler.UploadDocumentHandler)
			apiV1.POST("/query", queryHandler.QueryHandler)
			apiV1.GET("/documents", documentHandler.ListDocumentsHandler)
			apiV1.GET("/documents/file", documentHandler.ServeDocumentHandler)
			apiV1.GET("/ws", func(c *gin.Context) {
				websocketService.HandleQuery(c.Writer, c.Request)
			})
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
