package game

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"
)

// RoundStatus is the lifecycle state of a round.
type RoundStatus string

const (
	StatusWaiting    RoundStatus = "WAITING"
	StatusInProgress RoundStatus = "IN_PROGRESS"
	StatusCompleted  RoundStatus = "COMPLETED"
	StatusAbandoned  RoundStatus = "ABANDONED"
)

// maxAimDeviationRad is the worst-case aim push from a fully missed
// accuracy phase.
const maxAimDeviationRad = 0.12

// ShotParams is the input for one shot, straight off the client's power and
// accuracy minigame.
type ShotParams struct {
	Club     string  `json:"club"`
	Power    float64 `json:"power"`    // 0-1
	Aim      float64 `json:"aim"`      // radians
	Accuracy float64 `json:"accuracy"` // 0-1, 1 = perfect timing
}

// HoleScore is one line of the scorecard.
type HoleScore struct {
	Hole    int `json:"hole"`
	Par     int `json:"par"`
	Strokes int `json:"strokes"`
}

// ShotResult is the outcome of a shot plus its scoring consequences.
// Hole is the hole the shot was played on; on a hole-out the round has
// already advanced past it by the time the result is consumed.
type ShotResult struct {
	Outcome        ShotOutcome `json:"outcome"`
	Hole           int         `json:"hole"`
	Strokes        int         `json:"strokes"`
	DistanceToHole float64     `json:"distance_to_hole"`
	HoleComplete   bool        `json:"hole_complete"`
	HoleScore      *HoleScore  `json:"hole_score,omitempty"`
	RoundComplete  bool        `json:"round_complete"`
	NextHole       int         `json:"next_hole,omitempty"`
}

// RoundStateView is the read-only snapshot sent to clients.
type RoundStateView struct {
	ID             string       `json:"id"`
	Token          string       `json:"token"`
	Status         RoundStatus  `json:"status"`
	CurrentHole    int          `json:"current_hole"`
	Par            int          `json:"par"`
	ShotNumber     int          `json:"shot_number"`
	Ball           BallSnapshot `json:"ball"`
	Wind           *Wind        `json:"wind,omitempty"`
	DistanceToHole float64      `json:"distance_to_hole"`
	Scores         []HoleScore  `json:"scores"`
	TotalStrokes   int          `json:"total_strokes"`
}

// RoundState is one player's round against the course. All access goes
// through the mutex; the embedded simulator is never handed out.
type RoundState struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	PlayerID    int    `json:"player_id"`
	PlayerName  string `json:"player_name"`
	PlayerToken string `json:"-"`

	CurrentHole  int         `json:"current_hole"`
	Scores       []HoleScore `json:"scores"`
	ShotNumber   int         `json:"shot_number"` // strokes on the current hole
	CreatedAt    time.Time   `json:"created_at"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	LastActivity time.Time   `json:"last_activity"`
	SessionID    int         `json:"session_id,omitempty"`

	status RoundStatus

	terrain   *TerrainField
	wind      *Wind
	sim       *BallSimulator
	shots     *ShotModel
	predictor *TrajectoryPredictor
	holeCfg   HoleConfig
	holePos   Vec2

	mu sync.RWMutex
}

// NewRound creates a round in the waiting state.
func NewRound(id, token string, playerID int, playerName, playerToken string) *RoundState {
	return &RoundState{
		ID:           id,
		Token:        token,
		PlayerID:     playerID,
		PlayerName:   playerName,
		PlayerToken:  playerToken,
		status:       StatusWaiting,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
}

// Start loads hole 1 and opens play.
func (r *RoundState) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting {
		log.Printf("[ROUND] Round %s already started, skipping", r.ID)
		return nil
	}

	if err := r.loadHole(1); err != nil {
		return err
	}

	now := time.Now()
	r.StartedAt = &now
	r.status = StatusInProgress
	r.LastActivity = now
	log.Printf("[ROUND] Round %s started on hole 1", r.ID)
	return nil
}

// loadHole builds the terrain for a hole, carves the cup, and tees the ball
// up. Terrain mutation is complete before any physics query runs. Caller
// holds the lock.
func (r *RoundState) loadHole(number int) error {
	cfg, err := HoleByNumber(number)
	if err != nil {
		return err
	}

	terrain, err := NewTerrainField(cfg)
	if err != nil {
		return fmt.Errorf("loading hole %d: %w", number, err)
	}
	terrain.CarveHole(cfg.GreenCenter.X, cfg.GreenCenter.Z)

	r.holeCfg = cfg
	r.holePos = cfg.GreenCenter
	r.terrain = terrain
	r.wind = NewWind(windSeed(r.Token, number))
	r.shots = NewShotModel()
	r.predictor = NewTrajectoryPredictor(terrain, r.shots)
	r.sim = NewBallSimulator(terrain, r.wind, r.holePos)
	r.sim.PlaceAt(cfg.Tee)
	r.CurrentHole = number
	r.ShotNumber = 0
	return nil
}

// ValidateCanShoot checks round status, turn ownership and shot parameters.
func (r *RoundState) ValidateCanShoot(playerToken string, params ShotParams) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.status != StatusInProgress {
		return errors.New("round is not in progress")
	}
	if playerToken != r.PlayerToken {
		return errors.New("invalid player token")
	}
	if params.Power < 0 || params.Power > 1 {
		return errors.New("invalid power")
	}
	if _, err := ParseClub(params.Club); err != nil {
		return err
	}
	if !r.sim.AtRest() {
		return errors.New("ball is still moving")
	}
	return nil
}

// TakeShot runs one shot to rest and applies its scoring consequences.
func (r *RoundState) TakeShot(params ShotParams) (*ShotResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusInProgress {
		return nil, errors.New("round is not in progress")
	}

	club, err := ParseClub(params.Club)
	if err != nil {
		return nil, err
	}

	// A missed accuracy window pushes the aim off-line; perfect timing
	// leaves it untouched. The physics core never sees the minigame.
	accuracy := clamp(params.Accuracy, 0, 1)
	aim := params.Aim + (1-accuracy)*maxAimDeviationRad

	vel := r.shots.InitialVelocity(clamp(params.Power, 0, 1), aim, club)
	r.sim.LaunchShot(vel)
	outcome := r.sim.Simulate()

	// Pin the hole the shot was played on before a hole-out advances
	// CurrentHole; persistence attributes the shot to this value.
	playedHole := r.CurrentHole

	r.ShotNumber++
	r.LastActivity = time.Now()

	result := &ShotResult{
		Outcome:        outcome,
		Hole:           playedHole,
		Strokes:        r.ShotNumber,
		DistanceToHole: outcome.Final.Position.Horizontal().DistanceTo(r.holePos),
	}

	if outcome.Captured {
		score := HoleScore{Hole: r.CurrentHole, Par: r.holeCfg.Par, Strokes: r.ShotNumber}
		r.Scores = append(r.Scores, score)
		result.HoleComplete = true
		result.HoleScore = &score
		log.Printf("[ROUND] Round %s holed out on %d in %d (par %d)",
			r.ID, r.CurrentHole, score.Strokes, score.Par)

		if r.CurrentHole >= len(NineHoleCourse()) {
			now := time.Now()
			r.CompletedAt = &now
			r.status = StatusCompleted
			result.RoundComplete = true
		} else {
			next := r.CurrentHole + 1
			if err := r.loadHole(next); err != nil {
				return nil, err
			}
			result.NextHole = next
		}
	}

	return result, nil
}

// PreviewShot returns the aim-assist polyline for candidate shot parameters.
func (r *RoundState) PreviewShot(params ShotParams) ([]Vec3, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.status != StatusInProgress {
		return nil, errors.New("round is not in progress")
	}
	club, err := ParseClub(params.Club)
	if err != nil {
		return nil, err
	}
	return r.predictor.Predict(clamp(params.Power, 0, 1), params.Aim, club, r.sim.Position()), nil
}

// IdealPower returns the power fraction that would carry the club to the
// hole from the ball's current lie.
func (r *RoundState) IdealPower(clubName string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	club, err := ParseClub(clubName)
	if err != nil {
		return 0, err
	}
	dist := r.sim.Position().Horizontal().DistanceTo(r.holePos)
	return r.shots.IdealPowerFraction(dist, club), nil
}

// Abandon marks a round dead (expiry worker or explicit quit).
func (r *RoundState) Abandon() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == StatusCompleted || r.status == StatusAbandoned {
		return
	}
	now := time.Now()
	r.CompletedAt = &now
	r.status = StatusAbandoned
	log.Printf("[ROUND] Round %s abandoned", r.ID)
}

// View returns the client-facing snapshot.
func (r *RoundState) View() RoundStateView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v := RoundStateView{
		ID:          r.ID,
		Token:       r.Token,
		Status:      r.status,
		CurrentHole: r.CurrentHole,
		ShotNumber:  r.ShotNumber,
		Scores:      append([]HoleScore(nil), r.Scores...),
	}
	for _, s := range r.Scores {
		v.TotalStrokes += s.Strokes
	}
	if r.sim != nil {
		v.Ball = r.sim.Snapshot()
		v.Par = r.holeCfg.Par
		v.Wind = r.wind
		v.DistanceToHole = v.Ball.Position.Horizontal().DistanceTo(r.holePos)
	}
	return v
}

// Status returns the round's lifecycle state under the lock. Background
// workers read it while TakeShot and Abandon write it.
func (r *RoundState) Status() RoundStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Terrain exposes the current hole's field for point queries. Nil before
// Start.
func (r *RoundState) Terrain() *TerrainField {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.terrain
}

// windSeed derives a stable per-hole gust seed from the round token.
func windSeed(token string, hole int) int64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return int64(h.Sum64()) + int64(hole)
}
