package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/config"
	"github.com/iamasit07/connect4-vs-ai/internal/repository/redis"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
	"github.com/iamasit07/connect4-vs-ai/internal/service/cleanup"
	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-vs-ai/internal/transport/http"
	"github.com/iamasit07/connect4-vs-ai/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-vs-ai/internal/transport/websocket"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	cfg := config.LoadConfig()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Tally store: Redis when reachable, memory otherwise
	var store game.TallyStore = game.NewMemoryTallyStore()
	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	if client := redis.Connect(pingCtx, cfg.RedisURL, cfg.RedisPassword); client != nil {
		defer client.Close()
		store = redis.NewTallyCache(client, cfg.TallyTTL)
	}
	cancelPing()

	// 2. Services
	newPlayer := func(difficulty string) bot.Player {
		return bot.NewPlayer(difficulty, cfg.SearchDepth, cfg.Heuristic)
	}
	sessionManager := game.NewSessionManager(store, newPlayer, game.Defaults{
		Columns:    cfg.Columns,
		Rows:       cfg.Rows,
		WinLength:  cfg.WinLength,
		Difficulty: cfg.Difficulty,
	})

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdle)
	go cleanupWorker.Start(ctx)

	// 3. Handlers
	connManager := websocket.NewConnectionManager()
	sessionManager.OnRemove(connManager.CloseSession)
	gameHandler := transportHttp.NewGameHandler(sessionManager, connManager)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)

	// 4. Router
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	gameHandler.Register(router)
	router.GET("/ws", wsHandler.HandleWebSocket)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessionManager.Count()})
	})

	if cfg.EnablePprof {
		pprof.Register(router)
		log.Info().Msg("pprof routes enabled under /debug/pprof")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Msgf("Server starting on :%s (board %dx%d, depth %d, difficulty %s)",
			cfg.Port, cfg.Columns, cfg.Rows, cfg.SearchDepth, cfg.Difficulty)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
