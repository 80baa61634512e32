package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pittman021/golf-game/internal/config"
	"github.com/redis/go-redis/v9"
)

// Manager is the process-wide game manager, set once at startup.
var Manager *GameManager

// GameManager owns the live rounds and their persistence.
type GameManager struct {
	rounds        map[string]*RoundState // roundID -> round
	tokenToRound  map[string]string      // round token -> roundID
	playerToRound map[int]string         // playerID -> roundID

	db     *sqlx.DB
	rdb    *redis.Client
	config *config.Config
	mu     sync.RWMutex
}

// InitializeManager sets up the global manager.
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = &GameManager{
		rounds:        make(map[string]*RoundState),
		tokenToRound:  make(map[string]string),
		playerToRound: make(map[int]string),
		db:            db,
		rdb:           rdb,
		config:        cfg,
	}
	log.Println("[GAME] Game manager initialized")
}

// CreateRound starts a new round for a player and registers it everywhere it
// needs to be found: memory, Postgres, and the Redis expiry schedule.
func (gm *GameManager) CreateRound(playerID int, playerName string) (*RoundState, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existingID, ok := gm.playerToRound[playerID]; ok {
		if existing, ok := gm.rounds[existingID]; ok && existing.Status() == StatusInProgress {
			return nil, errors.New("player already has a round in progress")
		}
	}

	roundID := generateRoundID()
	roundToken := generateToken(16)
	playerToken := generateToken(16)

	r := NewRound(roundID, roundToken, playerID, playerName, playerToken)
	if err := r.Start(); err != nil {
		return nil, err
	}

	if gm.db != nil {
		var sessionID int
		err := gm.db.Get(&sessionID,
			`INSERT INTO rounds (round_token, player_id, status, created_at, started_at)
			 VALUES ($1, $2, 'IN_PROGRESS', NOW(), NOW()) RETURNING id`,
			roundToken, playerID)
		if err != nil {
			log.Printf("[DB] Failed to insert round %s: %v", roundID, err)
		} else {
			r.SessionID = sessionID
		}
	}

	gm.rounds[roundID] = r
	gm.tokenToRound[roundToken] = roundID
	gm.playerToRound[playerID] = roundID

	gm.scheduleExpiry(r)
	gm.saveRoundToRedis(r)

	log.Printf("[GAME] Round created: %s (token=%s player=%d)", roundID, roundToken, playerID)
	return r, nil
}

// GetRoundByToken resolves a live round from its token.
func (gm *GameManager) GetRoundByToken(token string) (*RoundState, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	id, ok := gm.tokenToRound[token]
	if !ok {
		return nil, fmt.Errorf("round not found for token %s", token)
	}
	r, ok := gm.rounds[id]
	if !ok {
		return nil, fmt.Errorf("round %s missing from registry", id)
	}
	return r, nil
}

// RecordShot records a shot with its JSONB parameters and result summary.
func (gm *GameManager) RecordShot(r *RoundState, params ShotParams, result *ShotResult) {
	if gm == nil || gm.db == nil || r.SessionID == 0 {
		return
	}

	shotData, err := json.Marshal(map[string]interface{}{
		"params":           params,
		"events":           result.Outcome.Events,
		"final":            result.Outcome.Final,
		"distance_to_hole": result.DistanceToHole,
		"captured":         result.Outcome.Captured,
	})
	if err != nil {
		log.Printf("[DB] Failed to marshal shot data for round %d: %v", r.SessionID, err)
		return
	}

	var maxShot int
	if err := gm.db.Get(&maxShot,
		`SELECT COALESCE(MAX(shot_number), 0) FROM shots WHERE round_id = $1`, r.SessionID); err != nil {
		log.Printf("[DB] Failed to get max shot number for round %d: %v", r.SessionID, err)
		return
	}

	// result.Hole, not r.CurrentHole: a hole-out has already advanced the
	// round to the next hole by the time the shot is recorded.
	_, err = gm.db.Exec(
		`INSERT INTO shots (round_id, hole_number, shot_number, club, shot_data, created_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, NOW())`,
		r.SessionID, result.Hole, maxShot+1, params.Club, string(shotData))
	if err != nil {
		log.Printf("[DB] Failed to record shot for round %d: %v", r.SessionID, err)
	}
}

// PersistHoleScore writes one finished hole to the scorecard table.
func (gm *GameManager) PersistHoleScore(r *RoundState, score HoleScore) {
	if gm == nil || gm.db == nil || r.SessionID == 0 {
		return
	}
	_, err := gm.db.Exec(
		`INSERT INTO hole_scores (round_id, hole_number, par, strokes, created_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		r.SessionID, score.Hole, score.Par, score.Strokes)
	if err != nil {
		log.Printf("[DB] Failed to persist hole score for round %d: %v", r.SessionID, err)
	}
}

// FinalizeRound persists a completed or abandoned round and updates player
// aggregates.
func (gm *GameManager) FinalizeRound(r *RoundState) {
	if gm == nil || gm.db == nil || r.SessionID == 0 {
		return
	}

	view := r.View()
	_, err := gm.db.Exec(
		`UPDATE rounds SET status=$1, total_strokes=$2, completed_at=NOW() WHERE id=$3`,
		string(view.Status), view.TotalStrokes, r.SessionID)
	if err != nil {
		log.Printf("[DB] Failed to finalize round %d: %v", r.SessionID, err)
		return
	}

	if view.Status == StatusCompleted {
		_, err = gm.db.Exec(
			`UPDATE players SET rounds_played = rounds_played + 1,
			        best_round = LEAST(COALESCE(best_round, $1), $1),
			        last_active = NOW()
			 WHERE id=$2`,
			view.TotalStrokes, r.PlayerID)
		if err != nil {
			log.Printf("[DB] Failed to update player stats for %d: %v", r.PlayerID, err)
		}
	}
}

// RemoveRound drops a finished round from the in-memory registry.
func (gm *GameManager) RemoveRound(r *RoundState) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.rounds, r.ID)
	delete(gm.tokenToRound, r.Token)
	if id, ok := gm.playerToRound[r.PlayerID]; ok && id == r.ID {
		delete(gm.playerToRound, r.PlayerID)
	}
}

// saveRoundToRedis snapshots the round view with a TTL so a restarted API
// node can still answer status queries. Caller holds no particular lock.
func (gm *GameManager) saveRoundToRedis(r *RoundState) {
	if gm.rdb == nil {
		return
	}

	ctx := context.Background()
	key := "round:" + r.Token + ":state"

	data, err := json.Marshal(r.View())
	if err != nil {
		log.Printf("[REDIS] Failed to marshal round %s: %v", r.ID, err)
		return
	}
	if err := gm.rdb.SetEx(ctx, key, data, time.Hour).Err(); err != nil {
		log.Printf("[REDIS] Failed to save round %s: %v", r.ID, err)
	}
}

// SyncRound refreshes the Redis snapshot and expiry deadline after activity.
func (gm *GameManager) SyncRound(r *RoundState) {
	gm.saveRoundToRedis(r)
	gm.scheduleExpiry(r)
}

// scheduleExpiry pushes the round's abandonment deadline into the worker's
// sorted set.
func (gm *GameManager) scheduleExpiry(r *RoundState) {
	if gm.rdb == nil || gm.config == nil {
		return
	}
	deadline := time.Now().Add(time.Duration(gm.config.RoundExpiryMinutes) * time.Minute).Unix()
	err := gm.rdb.ZAdd(context.Background(), roundExpiryKey, redis.Z{
		Score:  float64(deadline),
		Member: r.Token,
	}).Err()
	if err != nil {
		log.Printf("[REDIS] Failed to schedule expiry for round %s: %v", r.ID, err)
	}
}

func generateRoundID() string {
	return "round_" + generateToken(8)
}

func generateToken(nBytes int) string {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for token generation
		panic(err)
	}
	return hex.EncodeToString(b)
}
