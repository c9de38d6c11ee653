package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/quizgolf/backend/internal/config"
	"github.com/quizgolf/backend/internal/events"
	"github.com/quizgolf/backend/internal/redis"
	"github.com/quizgolf/backend/internal/ws"
)

// send-command publishes one input event to every session server running
// with SESSION_COMMANDS=true, e.g. to start or stop a round from a kiosk.
func main() {
	kind := flag.String("type", "", "event type, e.g. main_menu_start or quiz_stop")
	hand := flag.String("hand", "", "left or right, for controller events")
	hole := flag.Int("hole", 0, "answer hole for hole_hit")
	pressed := flag.Bool("pressed", false, "teleport button state")
	text := flag.String("text", "", "name text for keyboard_submit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	e := events.Event{Kind: events.Kind(*kind), Hand: *hand, Hole: *hole, Pressed: *pressed, Text: *text}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ws.PublishCommand(ctx, rdb, e); err != nil {
		log.Fatalf("Failed to publish %s: %v", e.Kind, err)
	}
	log.Printf("✓ Published %s on %s", e.Kind, ws.CommandChannel)
}
