package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/quizgolf/backend/internal/api"
	"github.com/quizgolf/backend/internal/config"
	"github.com/quizgolf/backend/internal/controller"
	"github.com/quizgolf/backend/internal/database"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/game"
	"github.com/quizgolf/backend/internal/migrations"
	"github.com/quizgolf/backend/internal/quiz"
	"github.com/quizgolf/backend/internal/redis"
	"github.com/quizgolf/backend/internal/score"
	"github.com/quizgolf/backend/internal/sound"
	"github.com/quizgolf/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sqlx.DB
	if cfg.NeedsDatabase() {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			log.Println("[DB] Running migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
	}

	var rdb *goredis.Client
	if cfg.NeedsRedis() {
		var err error
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	}

	quizSource, err := newQuizProvider(cfg, db, rdb)
	if err != nil {
		log.Fatalf("Quiz backend: %v", err)
	}
	scoreStore, err := newScoreProvider(cfg, db, rdb)
	if err != nil {
		log.Fatalf("Score backend: %v", err)
	}

	// The hub hands decoded input to the session, which is built last.
	var session *game.Session
	hub := ws.NewHub(func(e events.Event) { session.Post(e) })
	bridge := ws.NewBridge(hub)
	hub.SetReplay(bridge.Replay)

	var manager *game.StateManager
	loop := game.NewLoop(cfg.TickRateHz, func(dt float64) { manager.Tick(dt) })
	scores := score.NewService(scoreStore, loop, cfg.DebugMode)

	manager = game.NewStateManager(game.Deps{
		Menu:     bridge,
		Keyboard: bridge,
		Board:    bridge,
		Rig:      bridge,
		Sound:    sound.NewManager(sound.DefaultClips(cfg.EasterEggUsesStartClip), bridge),
		Right:    bridge.HandDevice(controller.Right),
		Left:     bridge.HandDevice(controller.Left),
		Scores:   scores,
		Quiz:     quizSource,
		Events:   events.NewRegistry(),
		OnExit: func() {
			log.Println("[GAME] Headset requested exit, shutting down")
			stop()
		},
	}, game.Settings{
		StartCountdownSeconds: cfg.StartCountdownSeconds,
		FinalCountdownSeconds: cfg.FinalCountdownSeconds,
		DefaultSessionSeconds: cfg.DefaultSessionSeconds,
		DebugMode:             cfg.DebugMode,
	})
	manager.Start(ctx)
	session = game.NewSession(loop, manager)

	go hub.Run(ctx)
	go loop.Run(ctx)

	if cfg.SessionCommands {
		ws.StartCommandSubscriber(ctx, rdb, session.Post)
	}

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, api.Deps{
		Session:   session,
		Scores:    scores,
		WebSocket: hub.HandleWebSocket,
	}, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Starting quiz golf server on port %s (quiz=%s, scores=%s, frame=%v)", port, cfg.QuizBackend, cfg.ScoreBackend, loop.Interval())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down server (%d headset(s) connected)...", hub.ClientCount())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func newQuizProvider(cfg *config.Config, db *sqlx.DB, rdb *goredis.Client) (quiz.Provider, error) {
	switch cfg.QuizBackend {
	case "", "file":
		return quiz.NewFileProvider(cfg.QuizAssetsDir), nil
	case "redis":
		return quiz.NewRedisProvider(rdb, ""), nil
	case "postgres":
		return quiz.NewPostgresProvider(db), nil
	default:
		return nil, fmt.Errorf("unknown QUIZ_BACKEND %q", cfg.QuizBackend)
	}
}

func newScoreProvider(cfg *config.Config, db *sqlx.DB, rdb *goredis.Client) (score.Provider, error) {
	switch cfg.ScoreBackend {
	case "", "file":
		return score.NewFileProvider(cfg.ScoreDataDir), nil
	case "redis":
		return score.NewRedisProvider(rdb, ""), nil
	case "postgres":
		return score.NewPostgresProvider(db), nil
	default:
		return nil, fmt.Errorf("unknown SCORE_BACKEND %q", cfg.ScoreBackend)
	}
}
