package models

import (
	"database/sql"
	"time"
)

// Player represents a registered user
type Player struct {
	ID           int           `db:"id" json:"id"`
	Username     string        `db:"username" json:"username"`
	PasswordHash string        `db:"password_hash" json:"-"`
	DisplayName  string        `db:"display_name" json:"display_name"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	RoundsPlayed int           `db:"rounds_played" json:"rounds_played"`
	BestRound    sql.NullInt64 `db:"best_round" json:"best_round,omitempty"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	LastActive   sql.NullTime  `db:"last_active" json:"last_active,omitempty"`
}

// Round represents one persisted round of golf
type Round struct {
	ID           int           `db:"id" json:"id"`
	RoundToken   string        `db:"round_token" json:"round_token"`
	PlayerID     int           `db:"player_id" json:"player_id"`
	Status       string        `db:"status" json:"status"`
	TotalStrokes sql.NullInt64 `db:"total_strokes" json:"total_strokes,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	StartedAt    sql.NullTime  `db:"started_at" json:"started_at,omitempty"`
	CompletedAt  sql.NullTime  `db:"completed_at" json:"completed_at,omitempty"`
}

// HoleScoreRow is one finished hole on the scorecard
type HoleScoreRow struct {
	ID         int       `db:"id" json:"id"`
	RoundID    int       `db:"round_id" json:"round_id"`
	HoleNumber int       `db:"hole_number" json:"hole_number"`
	Par        int       `db:"par" json:"par"`
	Strokes    int       `db:"strokes" json:"strokes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Shot represents a single recorded shot with its full outcome payload
type Shot struct {
	ID         int       `db:"id" json:"id"`
	RoundID    int       `db:"round_id" json:"round_id"`
	HoleNumber int       `db:"hole_number" json:"hole_number"`
	ShotNumber int       `db:"shot_number" json:"shot_number"`
	Club       string    `db:"club" json:"club"`
	ShotData   []byte    `db:"shot_data" json:"shot_data"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
