package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quizgolf/backend/internal/auth"
	"github.com/quizgolf/backend/internal/config"
	"github.com/quizgolf/backend/internal/database"
	"github.com/quizgolf/backend/internal/models"
	"github.com/quizgolf/backend/internal/quiz"
	"github.com/quizgolf/backend/internal/redis"
)

func main() {
	file := flag.String("file", "", "quiz document to load (.json, .yaml or .yml); defaults to the bundled quiz")
	hashPIN := flag.String("hash-pin", "", "print the bcrypt hash of a device PIN and exit")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if *hashPIN != "" {
		hash, err := auth.HashPIN(*hashPIN)
		if err != nil {
			log.Fatalf("Failed to hash PIN: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.Load()
	ctx := context.Background()

	set, err := readQuiz(ctx, cfg, *file)
	if err != nil {
		log.Fatalf("Failed to read quiz: %v", err)
	}
	if err := quiz.Validate(set); err != nil {
		log.Fatalf("Refusing to seed invalid quiz: %v", err)
	}

	switch cfg.QuizBackend {
	case "redis":
		rdb, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		err = quiz.NewRedisProvider(rdb, "").Store(ctx, set)
		if err != nil {
			log.Fatalf("Failed to store quiz: %v", err)
		}
	case "postgres":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		err = quiz.NewPostgresProvider(db).Store(ctx, set)
		if err != nil {
			log.Fatalf("Failed to store quiz: %v", err)
		}
	default:
		log.Fatalf("QUIZ_BACKEND=%q has nothing to seed; use redis or postgres", cfg.QuizBackend)
	}

	log.Printf("✓ Seeded %d questions into %s", len(set.Questions), cfg.QuizBackend)
	log.Printf("  Questions per session: %d", set.SessionLength())
	log.Printf("  Round time: %ds", set.RoundTime)
}

func readQuiz(ctx context.Context, cfg *config.Config, path string) (models.QuizSet, error) {
	if path == "" {
		return quiz.NewFileProvider(cfg.QuizAssetsDir).LoadQuiz(ctx)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.QuizSet{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return quiz.DecodeYAML(data)
	default:
		return quiz.DecodeJSON(data)
	}
}
