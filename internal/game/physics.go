package game

import (
	"log"
	"math"
	"time"
)

// BallMode is the ball's motion state. Exactly one mode holds at any time;
// CAPTURED is terminal for the shot.
type BallMode string

const (
	ModeInAir    BallMode = "IN_AIR"
	ModeOnGround BallMode = "ON_GROUND"
	ModeCaptured BallMode = "CAPTURED"
)

// FlightEvent records a notable moment during a shot for rule checking,
// sound playback and replay.
type FlightEvent struct {
	Type     string  `json:"type"` // "launch", "bounce", "capture", "rest"
	Tick     int     `json:"tick"`
	Position Vec3    `json:"position"`
	Surface  Surface `json:"surface"`
	Speed    float64 `json:"speed"`
}

// TickState is one frame of the flight trace streamed to clients.
type TickState struct {
	Tick     int      `json:"tick"`
	Position Vec3     `json:"position"`
	Mode     BallMode `json:"mode"`
}

// BallSnapshot is the read-only copy handed to everything outside the
// simulator each tick.
type BallSnapshot struct {
	Position Vec3     `json:"position"`
	Velocity Vec3     `json:"velocity"`
	Mode     BallMode `json:"mode"`
	Surface  Surface  `json:"surface"`
}

// ShotOutcome is the result of running one shot to rest.
type ShotOutcome struct {
	Events   []FlightEvent `json:"events"`
	Trace    []TickState   `json:"trace"`
	Final    BallSnapshot  `json:"final"`
	Ticks    int           `json:"ticks"`
	Captured bool          `json:"captured"`
}

// BallSimulator advances one ball's position and velocity each fixed tick.
// It is the exclusive owner of the ball state; collaborators get snapshots.
type BallSimulator struct {
	terrain *TerrainField
	wind    *Wind
	hole    Vec2
	cupY    float64 // cup floor height after carving

	pos  Vec3
	vel  Vec3
	mode BallMode
	spin float64

	tick   int
	events []FlightEvent

	nowFn func() time.Time
}

// NewBallSimulator wires a simulator to its terrain, wind and hole. The cup
// floor height is sampled once, after CarveHole has run.
func NewBallSimulator(terrain *TerrainField, wind *Wind, hole Vec2) *BallSimulator {
	return &BallSimulator{
		terrain: terrain,
		wind:    wind,
		hole:    hole,
		cupY:    terrain.HeightAt(hole.X, hole.Z),
		mode:    ModeOnGround,
		nowFn:   time.Now,
	}
}

// PlaceAt rests the ball on the terrain at a ground point (tee placement and
// hole reset, the orchestrator's owned transitions).
func (bs *BallSimulator) PlaceAt(p Vec2) {
	bs.pos = NewVec3(p.X, bs.terrain.HeightAt(p.X, p.Z), p.Z)
	bs.vel = Vec3{}
	bs.mode = ModeOnGround
	bs.spin = 0
}

// LaunchShot starts a shot: velocity from the ShotModel, mode forced to
// in-air regardless of prior mode, position nudged up so the ball cannot
// re-collide with the surface it started on.
func (bs *BallSimulator) LaunchShot(vel Vec3) {
	bs.vel = vel
	bs.mode = ModeInAir
	bs.pos = bs.pos.Plus(NewVec3(0, LaunchHeightEpsilon, 0))
	bs.tick = 0
	bs.events = []FlightEvent{{
		Type:     "launch",
		Position: bs.pos,
		Surface:  bs.Surface(),
		Speed:    vel.Magnitude(),
	}}
}

func (bs *BallSimulator) Position() Vec3   { return bs.pos }
func (bs *BallSimulator) Velocity() Vec3   { return bs.vel }
func (bs *BallSimulator) Mode() BallMode   { return bs.mode }
func (bs *BallSimulator) Surface() Surface { return bs.terrain.SurfaceAt(bs.pos.X, bs.pos.Z) }

// IsCaptured reports whether the ball has been holed.
func (bs *BallSimulator) IsCaptured() bool { return bs.mode == ModeCaptured }

// AtRest reports the terminal quiescent condition: safe to re-aim.
func (bs *BallSimulator) AtRest() bool {
	return bs.mode != ModeInAir && bs.vel.MagnitudeSquared() < RestSpeedSquared
}

// Snapshot returns a read-only copy of the ball state.
func (bs *BallSimulator) Snapshot() BallSnapshot {
	return BallSnapshot{
		Position: bs.pos,
		Velocity: bs.vel,
		Mode:     bs.mode,
		Surface:  bs.Surface(),
	}
}

// Update advances the ball by one fixed tick.
func (bs *BallSimulator) Update(dt float64) {
	if bs.mode == ModeCaptured {
		return
	}

	// Invariant repair: an unknown mode with velocity means a transition was
	// lost somewhere. Force in-air and keep the simulation moving.
	if bs.mode != ModeInAir && bs.mode != ModeOnGround {
		if !bs.vel.IsZero() {
			log.Printf("[PHYSICS] invalid mode %q with speed %.2f, forcing in-air", bs.mode, bs.vel.Magnitude())
			bs.mode = ModeInAir
		} else {
			bs.mode = ModeOnGround
		}
	}

	bs.tick++
	switch bs.mode {
	case ModeInAir:
		bs.stepAirborne(dt)
	case ModeOnGround:
		bs.stepRolling(dt)
	}
}

func (bs *BallSimulator) stepAirborne(dt float64) {
	bs.vel = applyGravityAndDrag(bs.vel, dt)

	// Wind only pushes a ball that is properly in flight; a nearly-stopped
	// lob should not drift sideways.
	if bs.wind != nil {
		speed := bs.vel.Magnitude()
		if speed > WindBallSpeedThreshold {
			bs.wind.MaybeUpdate(bs.nowFn(), speed)
			bs.vel = bs.vel.Plus(bs.wind.Accel().Times(dt))
		}
	}

	next := bs.pos.Plus(bs.vel.Times(dt))
	ground := bs.terrain.HeightAt(next.X, next.Z)
	if next.Y <= ground {
		bs.land(next, ground)
		return
	}
	bs.pos = next
}

// land resolves a terrain collision: clamp to the surface, reflect vertical
// velocity by the surface's restitution, bleed horizontal speed by the
// surface's landing friction. Sand additionally halves horizontal velocity
// on entry.
func (bs *BallSimulator) land(next Vec3, ground float64) {
	surface := bs.terrain.SurfaceAt(next.X, next.Z)
	impact := bs.vel.Magnitude()

	bs.pos = NewVec3(next.X, ground, next.Z)

	rebound := fix(-bs.vel.Y * bounceCoefficient(surface, impact))
	fr := landingFriction(surface)
	bs.vel.X = fix(bs.vel.X * fr)
	bs.vel.Z = fix(bs.vel.Z * fr)
	if surface == SurfaceBunker {
		bs.vel.X = fix(bs.vel.X * 0.5)
		bs.vel.Z = fix(bs.vel.Z * 0.5)
	}

	bs.events = append(bs.events, FlightEvent{
		Type:     "bounce",
		Tick:     bs.tick,
		Position: bs.pos,
		Surface:  surface,
		Speed:    impact,
	})

	if rebound < BounceStopThreshold {
		bs.vel.Y = 0
		bs.mode = ModeOnGround
		return
	}
	bs.vel.Y = rebound
}

func (bs *BallSimulator) stepRolling(dt float64) {
	here := bs.pos.Horizontal()
	dHole := here.DistanceTo(bs.hole)
	speed := bs.vel.HorizontalMagnitude()

	// Rim attraction: a slow ball near the cup gets a small pull toward the
	// center every tick, even before formal capture.
	if dHole < 2*CaptureRadius && speed < CaptureSpeed {
		dir := bs.hole.Minus(here).Normalize()
		bs.vel.X = fix(bs.vel.X + dir.X*HoleAttractAccel*dt)
		bs.vel.Z = fix(bs.vel.Z + dir.Z*HoleAttractAccel*dt)
	}

	if dHole <= CaptureRadius &&
		math.Abs(bs.pos.Y-bs.cupY) <= CupDepthTolerance &&
		bs.vel.Magnitude() < CaptureSpeed {
		bs.pos = NewVec3(bs.hole.X, bs.cupY, bs.hole.Z)
		bs.vel = Vec3{}
		bs.mode = ModeCaptured
		bs.events = append(bs.events, FlightEvent{
			Type:     "capture",
			Tick:     bs.tick,
			Position: bs.pos,
			Surface:  SurfaceGreen,
		})
		return
	}

	// Terrain-following roll: horizontal integration only, height re-sampled
	// every tick so the ball tracks slope.
	bs.pos.X = fix(bs.pos.X + bs.vel.X*dt)
	bs.pos.Z = fix(bs.pos.Z + bs.vel.Z*dt)
	bs.pos.Y = bs.terrain.HeightAt(bs.pos.X, bs.pos.Z)
	bs.vel.Y = 0

	surface := bs.terrain.SurfaceAt(bs.pos.X, bs.pos.Z)
	f := RollingFriction(surface, bs.vel.HorizontalMagnitude())
	bs.vel.X = fix(bs.vel.X * f)
	bs.vel.Z = fix(bs.vel.Z * f)

	if bs.vel.MagnitudeSquared() < RestSpeedSquared {
		bs.vel = Vec3{}
	}
}

// Simulate runs the current shot until capture, rest, or the tick cap.
// Mirrors the run-to-rest loop the client animates from the trace.
func (bs *BallSimulator) Simulate() ShotOutcome {
	trace := []TickState{{Tick: 0, Position: bs.pos, Mode: bs.mode}}

	ticks := 0
	for ticks < MaxSimTicks {
		bs.Update(TickDuration)
		ticks++
		trace = append(trace, TickState{Tick: bs.tick, Position: bs.pos, Mode: bs.mode})
		if bs.IsCaptured() || bs.AtRest() {
			break
		}
	}

	if !bs.IsCaptured() {
		bs.events = append(bs.events, FlightEvent{
			Type:     "rest",
			Tick:     bs.tick,
			Position: bs.pos,
			Surface:  bs.Surface(),
		})
	}

	return ShotOutcome{
		Events:   bs.events,
		Trace:    trace,
		Final:    bs.Snapshot(),
		Ticks:    ticks,
		Captured: bs.IsCaptured(),
	}
}

// bounceCoefficient is the vertical restitution on landing. Bunker and green
// kill the bounce, harder with impact speed; fairway and rough rebound.
func bounceCoefficient(s Surface, impactSpeed float64) float64 {
	switch s {
	case SurfaceBunker:
		return clamp(0.12-0.002*impactSpeed, 0.05, 0.12)
	case SurfaceGreen:
		return clamp(0.35-0.004*impactSpeed, 0.15, 0.35)
	case SurfaceFairway, SurfaceTee:
		return 0.5
	default:
		return 0.42
	}
}

// landingFriction is the horizontal retention applied once per bounce.
func landingFriction(s Surface) float64 {
	switch s {
	case SurfaceBunker:
		return 0.6
	case SurfaceGreen:
		return 0.85
	case SurfaceFairway, SurfaceTee:
		return 0.8
	default:
		return 0.65
	}
}

// RollingFriction is the per-tick horizontal retention while rolling. Green
// and fairway are velocity-banded: the exact low constant at or below the
// low threshold, the exact high constant at or above the high threshold, a
// linear blend between. Bunker, rough and tee are flat.
func RollingFriction(s Surface, speed float64) float64 {
	switch s {
	case SurfaceGreen:
		return bandedFriction(speed, GreenFrictionLow, GreenFrictionHigh)
	case SurfaceFairway:
		return bandedFriction(speed, FairwayFrictionLow, FairwayFrictionHigh)
	case SurfaceTee:
		return TeeFriction
	case SurfaceBunker:
		return BunkerFriction
	default:
		return RoughFriction
	}
}

func bandedFriction(speed, low, high float64) float64 {
	if speed <= RollLowSpeedThreshold {
		return low
	}
	if speed >= RollHighSpeedThreshold {
		return high
	}
	t := (speed - RollLowSpeedThreshold) / (RollHighSpeedThreshold - RollLowSpeedThreshold)
	return lerp(low, high, t)
}
