package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pittman021/golf-game/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	roundExpiryKey    = "round_expiry"
	roundEventChannel = "round_events"
)

// StartRoundExpiryWorker starts a background worker that abandons rounds
// whose expiry deadline (a Redis sorted-set score) has passed. Deadlines are
// refreshed on every shot, so only genuinely idle rounds expire.
func StartRoundExpiryWorker(ctx context.Context, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	if rdb == nil || cfg == nil {
		log.Println("[EXPIRY] Redis or config missing; expiry worker not started")
		return
	}

	log.Println("[EXPIRY] Round expiry worker started")
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.ExpiryPollSeconds) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[EXPIRY] Round expiry worker stopping")
				return
			case <-ticker.C:
				now := time.Now().Unix()

				members, err := rdb.ZRangeByScore(ctx, roundExpiryKey, &redis.ZRangeBy{
					Min: "-inf", Max: fmt.Sprintf("%d", now),
				}).Result()
				if err != nil {
					log.Printf("[EXPIRY] Failed to fetch expired rounds: %v", err)
					continue
				}

				for _, token := range members {
					// ZRem first so concurrent workers don't double-process.
					if removed, _ := rdb.ZRem(ctx, roundExpiryKey, token).Result(); removed == 0 {
						continue
					}

					r, err := Manager.GetRoundByToken(token)
					if err != nil {
						continue
					}
					if r.Status() != StatusInProgress {
						continue
					}

					log.Printf("[EXPIRY] Abandoning idle round %s", r.ID)
					r.Abandon()
					Manager.FinalizeRound(r)
					Manager.RemoveRound(r)

					payload := map[string]interface{}{
						"type":        "round_expired",
						"round_token": token,
						"round_id":    r.ID,
						"message":     "Round abandoned due to inactivity",
					}
					b, _ := json.Marshal(payload)
					if n, err := rdb.Publish(ctx, roundEventChannel, b).Result(); err != nil {
						log.Printf("[EXPIRY] publish failed: round=%s err=%v", token, err)
					} else {
						log.Printf("[EXPIRY] published expiry: round=%s subscribers=%d", token, n)
					}
				}
			}
		}
	}()
}
