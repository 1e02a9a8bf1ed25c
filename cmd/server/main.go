package main

import (
	"log"
	"os"

	"whisperapi/internal/api"
	"whisperapi/internal/config"
	"whisperapi/internal/stt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the inference engine once; it is shared by all requests
	// and may block here for model download/load.
	log.Printf("Loading %s engine...", cfg.STT.Engine)
	engine, err := stt.CreateEngine(cfg.STT)
	if err != nil {
		log.Fatalf("Failed to initialize STT engine: %v", err)
	}
	defer engine.Close()
	log.Printf("Engine loaded successfully: %s", engine.Name())

	r := gin.Default()

	// Add CORS middleware for browser clients
	r.Use(corsMiddleware())

	// Register routes
	api.RegisterRoutes(r, api.NewHandler(engine, cfg.ModelLabel()))

	log.Printf("Whisper Transcription API running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware allows cross-origin requests from any origin on all routes
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
