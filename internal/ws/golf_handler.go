package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pittman021/golf-game/internal/game"
)

// Golf-specific message data types
type ShotData struct {
	Club     string  `json:"club"`
	Power    float64 `json:"power"`
	Aim      float64 `json:"aim"`
	Accuracy float64 `json:"accuracy"`
}

type IdealPowerData struct {
	Club string `json:"club"`
}

// RoundHub is the single hub for all rounds.
var RoundHub *Hub

func init() {
	RoundHub = NewHub()
	go runRoundHub(RoundHub)
}

// HandleWebSocket handles WebSocket connections for golf rounds.
func HandleWebSocket(c *gin.Context) {
	roundToken := c.Query("token")
	playerToken := c.Query("pt")

	if roundToken == "" || playerToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and pt required"})
		return
	}

	r, err := game.Manager.GetRoundByToken(roundToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
		return
	}
	if r.PlayerToken != playerToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid player token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:        conn,
		playerID:    strconv.Itoa(r.PlayerID),
		roundID:     r.ID,
		roundToken:  roundToken,
		playerToken: playerToken,
		send:        make(chan []byte, 256),
	}

	RoundHub.register <- client

	go client.writePump()
	go client.readPump()
}

// runRoundHub runs the hub with golf round logic.
func runRoundHub(h *Hub) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()

			if oldClient, exists := h.clients[client.playerID]; exists {
				log.Printf("[WS] Player %s reconnecting - closing old connection", client.playerID)
				if err := oldClient.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"), time.Now().Add(5*time.Second)); err != nil {
					log.Printf("Error writing close control to old client %s: %v", oldClient.playerID, err)
				}
				oldClient.conn.Close()
				select {
				case <-oldClient.send:
				default:
					close(oldClient.send)
				}
				delete(h.clients, client.playerID)
				if room, exists := h.roundRooms[oldClient.roundID]; exists {
					delete(room, client.playerID)
				}
			}

			h.clients[client.playerID] = client
			if _, exists := h.roundRooms[client.roundID]; !exists {
				h.roundRooms[client.roundID] = make(map[string]*Client)
			}
			h.roundRooms[client.roundID][client.playerID] = client
			h.mu.Unlock()

			log.Printf("[WS] Player %s connected to round %s", client.playerID, client.roundID)

			r, err := game.Manager.GetRoundByToken(client.roundToken)
			if err != nil {
				log.Printf("[WS] Round not found for token %s: %v", client.roundToken, err)
				continue
			}

			h.SendToPlayer(client.playerID, map[string]interface{}{
				"type":  "round_state",
				"round": r.View(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.playerID]; ok && cur == client {
				delete(h.clients, client.playerID)
				if room, exists := h.roundRooms[client.roundID]; exists {
					delete(room, client.playerID)
					if len(room) == 0 {
						delete(h.roundRooms, client.roundID)
					}
				}
				log.Printf("[WS] Player %s disconnected from round %s", client.playerID, client.roundID)

				select {
				case <-client.send:
				default:
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// readPump reads messages for golf rounds.
func (c *Client) readPump() {
	defer func() {
		RoundHub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (unexpected) for player %s: %v", c.playerID, err)
			} else {
				log.Printf("WebSocket read error for player %s: %v", c.playerID, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage processes incoming round messages.
func (c *Client) handleMessage(msg WSMessage) {
	r, err := game.Manager.GetRoundByToken(c.roundToken)
	if err != nil {
		c.sendError("Round not found")
		return
	}

	switch msg.Type {
	case "take_shot":
		var data ShotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid shot data")
			return
		}
		c.handleTakeShot(r, data)

	case "preview_shot":
		var data ShotData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid preview data")
			return
		}
		c.handlePreviewShot(r, data)

	case "ideal_power":
		var data IdealPowerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid club data")
			return
		}
		power, err := r.IdealPower(data.Club)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		d, _ := json.Marshal(map[string]interface{}{
			"type":  "ideal_power",
			"club":  data.Club,
			"power": power,
		})
		c.send <- d

	case "get_state":
		d, _ := json.Marshal(map[string]interface{}{
			"type":  "round_state",
			"round": r.View(),
		})
		c.send <- d

	case "quit":
		c.handleQuit(r)

	default:
		c.sendError("Unknown message type")
	}
}

// handleTakeShot runs one shot and pushes its full outcome to the room.
func (c *Client) handleTakeShot(r *game.RoundState, data ShotData) {
	params := game.ShotParams{
		Club:     data.Club,
		Power:    data.Power,
		Aim:      data.Aim,
		Accuracy: data.Accuracy,
	}

	if err := r.ValidateCanShoot(c.playerToken, params); err != nil {
		c.sendError(err.Error())
		return
	}

	result, err := r.TakeShot(params)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	game.Manager.RecordShot(r, params, result)
	if result.HoleScore != nil {
		game.Manager.PersistHoleScore(r, *result.HoleScore)
	}

	RoundHub.BroadcastToRound(c.roundID, map[string]interface{}{
		"type":   "shot_result",
		"params": params,
		"result": result,
		"round":  r.View(),
	})

	if result.RoundComplete {
		game.Manager.FinalizeRound(r)
		game.Manager.RemoveRound(r)
		return
	}

	// Activity refreshes the Redis snapshot and the expiry deadline.
	game.Manager.SyncRound(r)
}

// handlePreviewShot returns the aim-assist polyline to the requesting client.
func (c *Client) handlePreviewShot(r *game.RoundState, data ShotData) {
	points, err := r.PreviewShot(game.ShotParams{
		Club:  data.Club,
		Power: data.Power,
		Aim:   data.Aim,
	})
	if err != nil {
		c.sendError(err.Error())
		return
	}

	d, _ := json.Marshal(map[string]interface{}{
		"type":   "shot_preview",
		"points": points,
	})
	c.send <- d
}

// handleQuit abandons the round on the player's request.
func (c *Client) handleQuit(r *game.RoundState) {
	r.Abandon()
	game.Manager.FinalizeRound(r)
	game.Manager.RemoveRound(r)

	RoundHub.BroadcastToRound(c.roundID, map[string]interface{}{
		"type":  "round_over",
		"round": r.View(),
	})
}
