package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uleary/internal/ai"
	"uleary/internal/api"
	"uleary/internal/api/handlers"
	"uleary/internal/material"
	"uleary/internal/quiz"
	"uleary/internal/r2"
	"uleary/internal/speech"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func init() {
	// Load environment variables FIRST
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: Error loading .env file: %v", err)
		}
		log.Println("WARN: .env file not found. Relying on system environment variables.")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	// Every external service is optional; the server degrades rather
	// than refusing to start.
	aiService := ai.NewService(ctx)
	defer aiService.Close()

	speechClient := speech.NewClient()

	r2Client, err := r2.NewClient()
	if err != nil {
		log.Fatalf("Failed to initialize R2 client: %v", err)
	}

	materialService := material.NewService(aiService, r2Client, clock)
	quizManager := quiz.NewManager(aiService, clock)

	// Set up Gin router
	router := gin.Default()
	router.MaxMultipartMemory = handlers.MaxUploadSize

	handler := handlers.NewHandler(aiService, speechClient, materialService, quizManager)
	api.SetupRoutes(router, handler)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("INFO: ULeary backend listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give server 5 seconds to shut down gracefully
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
