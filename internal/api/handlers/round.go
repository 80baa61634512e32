package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pittman021/golf-game/internal/game"
	"github.com/redis/go-redis/v9"
)

// CreateRound starts a new round for the authenticated player
func CreateRound(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pidI, ok := c.Get("player_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		pid := pidI.(int)

		var displayName string
		if err := db.Get(&displayName, `SELECT display_name FROM players WHERE id=$1`, pid); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}

		r, err := game.Manager.CreateRound(pid, displayName)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"round":        r.View(),
			"round_token":  r.Token,
			"player_token": r.PlayerToken,
			"ws_url":       "/api/v1/round/ws?token=" + r.Token + "&pt=" + r.PlayerToken,
		})
	}
}

// GetRoundState returns the round snapshot, falling back to the Redis copy
// when the round is no longer live on this node.
func GetRoundState(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		if r, err := game.Manager.GetRoundByToken(token); err == nil {
			c.JSON(http.StatusOK, gin.H{"round": r.View()})
			return
		}

		if rdb != nil {
			data, err := rdb.Get(context.Background(), "round:"+token+":state").Result()
			if err == nil {
				var view game.RoundStateView
				if err := json.Unmarshal([]byte(data), &view); err == nil {
					c.JSON(http.StatusOK, gin.H{"round": view, "source": "snapshot"})
					return
				}
			}
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
	}
}

// TakeShot executes a shot over plain HTTP. The WebSocket path is preferred;
// this exists for clients without a socket.
func TakeShot() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		playerToken := c.GetHeader("X-Player-Token")

		r, err := game.Manager.GetRoundByToken(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}

		var params game.ShotParams
		if err := c.BindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shot parameters"})
			return
		}

		if err := r.ValidateCanShoot(playerToken, params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := r.TakeShot(params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		game.Manager.RecordShot(r, params, result)
		if result.HoleScore != nil {
			game.Manager.PersistHoleScore(r, *result.HoleScore)
		}

		if result.RoundComplete {
			game.Manager.FinalizeRound(r)
			game.Manager.RemoveRound(r)
		} else {
			game.Manager.SyncRound(r)
		}

		c.JSON(http.StatusOK, gin.H{"result": result, "round": r.View()})
	}
}

// PreviewShot returns the aim-assist polyline for candidate parameters
func PreviewShot() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		r, err := game.Manager.GetRoundByToken(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}

		var params game.ShotParams
		if err := c.BindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shot parameters"})
			return
		}

		points, err := r.PreviewShot(params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"points": points})
	}
}

// IdealPower suggests the power fraction to reach the hole with a club
func IdealPower() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		club := c.Query("club")

		r, err := game.Manager.GetRoundByToken(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}

		power, err := r.IdealPower(club)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"club": club, "power": power})
	}
}

// AbandonRound ends a round at the player's request
func AbandonRound() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		playerToken := c.GetHeader("X-Player-Token")

		r, err := game.Manager.GetRoundByToken(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}
		if r.PlayerToken != playerToken {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid player token"})
			return
		}

		r.Abandon()
		game.Manager.FinalizeRound(r)
		game.Manager.RemoveRound(r)
		log.Printf("[API] Round %s abandoned by player %d", r.ID, r.PlayerID)

		c.JSON(http.StatusOK, gin.H{"round": r.View()})
	}
}
