package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/pittman021/golf-game/internal/config"
	"github.com/redis/go-redis/v9"
)

var rdbClient *redis.Client
var wsConfig *config.Config

func SetRedisClient(r *redis.Client, cfg *config.Config) {
	rdbClient = r
	wsConfig = cfg
}

// StartRoundEventSubscriber subscribes to the round_events channel and relays
// server-side events (expiry, most notably) to connected clients. The expiry
// worker may run on another node, so the hop goes through Redis pub/sub.
func StartRoundEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; round event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, "round_events")
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] round_events subscriber started")
		for msg := range ch {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Printf("[WS] invalid event payload: %v", err)
				continue
			}

			typeStr, _ := payload["type"].(string)
			roundID, _ := payload["round_id"].(string)
			if roundID == "" {
				roundID, _ = payload["round_token"].(string)
			}

			log.Printf("[WS] event received: type=%s round_id=%s", typeStr, roundID)

			switch typeStr {
			case "round_expired":
				RoundHub.mu.RLock()
				room, exists := RoundHub.roundRooms[roundID]
				if !exists {
					log.Printf("[WS] no room for round %s; expiry will not be broadcast", roundID)
				} else {
					log.Printf("[WS] broadcasting expiry to round %s (room_size=%d)", roundID, len(room))
				}
				RoundHub.mu.RUnlock()
				RoundHub.BroadcastToRound(roundID, map[string]interface{}{
					"type":    "round_expired",
					"message": payload["message"],
				})

			default:
				log.Printf("[WS] unknown event type: %s", typeStr)
			}
		}
	}()
}
