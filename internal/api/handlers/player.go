package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pittman021/golf-game/internal/models"
)

// GetMe returns the authenticated player's profile and stats
func GetMe(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pidI, ok := c.Get("player_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		pid := pidI.(int)

		var player models.Player
		err := db.Get(&player,
			`SELECT id, username, password_hash, display_name, created_at,
			        rounds_played, best_round, is_active, last_active
			 FROM players WHERE id=$1`, pid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "player not found"})
			return
		}

		profile := gin.H{
			"id":            player.ID,
			"username":      player.Username,
			"display_name":  player.DisplayName,
			"created_at":    player.CreatedAt,
			"rounds_played": player.RoundsPlayed,
		}
		if player.BestRound.Valid {
			profile["best_round"] = player.BestRound.Int64
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateDisplayName changes the authenticated player's display name
func UpdateDisplayName(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pidI, ok := c.Get("player_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		pid := pidI.(int)

		var req struct {
			DisplayName string `json:"display_name"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name required"})
			return
		}
		name := strings.TrimSpace(req.DisplayName)
		if name == "" || len(name) > 64 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name must be 1-64 characters"})
			return
		}

		if _, err := db.Exec(`UPDATE players SET display_name=$1 WHERE id=$2`, name, pid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update display name"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"display_name": name})
	}
}

// GetPlayerStats returns a player's public scoring record
func GetPlayerStats(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.ToLower(c.Param("username"))

		var player struct {
			ID           int           `db:"id"`
			DisplayName  string        `db:"display_name"`
			RoundsPlayed int           `db:"rounds_played"`
			BestRound    sql.NullInt64 `db:"best_round"`
		}
		err := db.Get(&player,
			`SELECT id, display_name, rounds_played, best_round FROM players WHERE username=$1`, username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}

		var agg struct {
			AvgStrokes sql.NullFloat64 `db:"avg_strokes"`
			Completed  int             `db:"completed"`
		}
		err = db.Get(&agg,
			`SELECT AVG(total_strokes) AS avg_strokes, COUNT(*) AS completed
			 FROM rounds WHERE player_id=$1 AND status='COMPLETED'`, player.ID)
		if err != nil {
			agg.Completed = 0
		}

		stats := gin.H{
			"username":         username,
			"display_name":     player.DisplayName,
			"rounds_played":    player.RoundsPlayed,
			"rounds_completed": agg.Completed,
		}
		if player.BestRound.Valid {
			stats["best_round"] = player.BestRound.Int64
		}
		if agg.AvgStrokes.Valid {
			stats["avg_strokes"] = agg.AvgStrokes.Float64
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetPlayerRounds returns a player's recent rounds with their scorecards
func GetPlayerRounds(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.ToLower(c.Param("username"))

		var pid int
		if err := db.Get(&pid, `SELECT id FROM players WHERE username=$1`, username); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}

		var rounds []models.Round
		err := db.Select(&rounds,
			`SELECT id, round_token, player_id, status, total_strokes, created_at, started_at, completed_at
			 FROM rounds WHERE player_id=$1 ORDER BY created_at DESC LIMIT 20`, pid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch rounds"})
			return
		}

		out := make([]gin.H, 0, len(rounds))
		for _, r := range rounds {
			entry := gin.H{"id": r.ID, "status": r.Status, "created_at": r.CreatedAt}
			if r.TotalStrokes.Valid {
				entry["total_strokes"] = r.TotalStrokes.Int64
			}
			if r.CompletedAt.Valid {
				entry["completed_at"] = r.CompletedAt.Time
			}

			var scores []models.HoleScoreRow
			if err := db.Select(&scores,
				`SELECT id, round_id, hole_number, par, strokes, created_at FROM hole_scores
				 WHERE round_id=$1 ORDER BY hole_number`, r.ID); err == nil {
				entry["scores"] = scores
			}
			out = append(out, entry)
		}

		c.JSON(http.StatusOK, gin.H{"rounds": out})
	}
}
