package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avira-backend/internal/config"
	"avira-backend/internal/database"
	"avira-backend/internal/handlers"
	"avira-backend/internal/middleware"
	"avira-backend/internal/router"
	"avira-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Avira Wellness Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (model: %s)", cfg.GeminiModel)

	// ──── Step 3: Pick Rate Limiter Backend ────
	var chatLimiter middleware.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		chatLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.ChatRequestsPerMin, time.Minute)
		log.Println("✓ Redis connected, shared rate limiter enabled")
	} else {
		chatLimiter = middleware.NewRateLimiter(cfg.ChatRequestsPerMin, time.Minute)
		log.Println("✓ In-memory rate limiter enabled")
	}

	// ──── Step 4: Initialize Handlers & Router ────
	chatHandler := handlers.NewChatHandler(geminiService)
	r := router.New(chatHandler, chatLimiter)

	// WriteTimeout must outlast the 30s Gemini budget plus response encoding.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Avira Wellness Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/api/v1/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
