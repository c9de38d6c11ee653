package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/quizgolf/backend/internal/events"
	"github.com/redis/go-redis/v9"
)

// CommandChannel carries input events published by operator tools.
const CommandChannel = "session_commands"

// StartCommandSubscriber relays events published on CommandChannel to post.
func StartCommandSubscriber(ctx context.Context, rdb *redis.Client, post func(events.Event)) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; command subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, CommandChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", CommandChannel)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[WS] %s subscriber stopping", CommandChannel)
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				e, err := events.Decode([]byte(msg.Payload))
				if err != nil {
					log.Printf("[WS] invalid command payload: %v", err)
					continue
				}
				log.Printf("[WS] command received: type=%s hand=%s", e.Kind, e.Hand)
				post(e)
			}
		}
	}()
}

// PublishCommand sends e to every server subscribed to CommandChannel.
func PublishCommand(ctx context.Context, rdb *redis.Client, e events.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, CommandChannel, b).Err()
}
