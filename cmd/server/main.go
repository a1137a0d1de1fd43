package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartstudy/internal/api"
	"smartstudy/internal/config"
	"smartstudy/internal/gemini"
	"smartstudy/internal/illustrate"
	"smartstudy/internal/r2"
	"smartstudy/internal/view"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	storeName      = "smartstudy_session"
	sessionIdleTTL = 2 * time.Hour
)

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: error loading .env file: %v", err)
		}
		log.Println("INFO: no .env file found, relying on system environment")
	}

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
	})
	if err != nil {
		log.Fatalf("FATAL: failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	// Optional illustration offload; nil keeps illustrations inline.
	r2Client, err := r2.NewClient()
	if err != nil {
		log.Fatalf("FATAL: failed to initialize R2 client: %v", err)
	}
	var uploader illustrate.Uploader
	if r2Client != nil {
		uploader = r2Client
	}
	illustrator := illustrate.New(geminiClient, uploader)

	sessionManager := view.NewManager(illustrator, sessionIdleTTL)
	defer sessionManager.Close()

	router := gin.Default()

	store := memstore.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(storeName, store))

	handler := api.NewHandler(sessionManager, geminiClient, cfg.DefaultQuestionCount)
	api.SetupRoutes(router, handler, cfg.FrontendURL)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("INFO: server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("FATAL: server forced to shutdown: %v", err)
	}

	log.Println("INFO: server exited properly")
}
