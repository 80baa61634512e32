package game

import (
	"math"
	"testing"
)

// setupSimulator builds a simulator over the shared test hole with the cup
// carved, no wind by default.
func setupSimulator(t *testing.T, wind *Wind) (*BallSimulator, *TerrainField) {
	t.Helper()
	cfg := testHoleConfig()
	tf, err := NewTerrainField(cfg)
	if err != nil {
		t.Fatalf("terrain generation failed: %v", err)
	}
	tf.CarveHole(cfg.GreenCenter.X, cfg.GreenCenter.Z)
	return NewBallSimulator(tf, wind, cfg.GreenCenter), tf
}

func TestDroppedBallConvergesToRest(t *testing.T) {
	bs, tf := setupSimulator(t, nil)

	// Drop from 8 units above the fairway with no horizontal velocity.
	bs.pos = NewVec3(0, tf.HeightAt(0, -20)+8, -20)
	bs.vel = Vec3{}
	bs.mode = ModeInAir

	for tick := 0; tick < 1800; tick++ {
		bs.Update(TickDuration)
		if bs.AtRest() {
			if bs.Mode() != ModeOnGround {
				t.Fatalf("rested in mode %s", bs.Mode())
			}
			return
		}
	}
	t.Fatalf("ball never came to rest: mode=%s speed=%.4f", bs.Mode(), bs.vel.Magnitude())
}

func TestSlowBallNearCupIsCaptured(t *testing.T) {
	bs, tf := setupSimulator(t, nil)
	cup := testHoleConfig().GreenCenter

	bs.pos = NewVec3(cup.X+0.3, tf.HeightAt(cup.X+0.3, cup.Z), cup.Z)
	bs.vel = NewVec3(0.5, 0, 0)
	bs.mode = ModeOnGround

	for tick := 0; tick < 300; tick++ {
		bs.Update(TickDuration)
		if bs.IsCaptured() {
			if !bs.vel.IsZero() {
				t.Error("captured ball still has velocity")
			}
			return
		}
	}
	t.Fatal("slow ball inside capture radius was never captured")
}

func TestSlowBallOutsideRadiusNeverCaptured(t *testing.T) {
	bs, tf := setupSimulator(t, nil)
	cup := testHoleConfig().GreenCenter

	// Slow, but three units out, beyond both the capture radius and the
	// rim-attraction zone.
	bs.pos = NewVec3(cup.X+3, tf.HeightAt(cup.X+3, cup.Z), cup.Z)
	bs.vel = NewVec3(0.3, 0, 0)
	bs.mode = ModeOnGround

	for tick := 0; tick < 1000; tick++ {
		bs.Update(TickDuration)
		if bs.IsCaptured() {
			t.Fatal("ball outside capture radius was captured")
		}
		if bs.AtRest() {
			return
		}
	}
}

func TestBunkerLandingKillsTheBall(t *testing.T) {
	bs, tf := setupSimulator(t, nil)
	b := testHoleConfig().Bunkers[0]

	// Incoming at ~25 units/s, descending steeply onto the sand.
	ground := tf.HeightAt(b.Center.X, b.Center.Z)
	bs.pos = NewVec3(b.Center.X, ground+0.05, b.Center.Z)
	bs.vel = NewVec3(18, -17.3, 0)
	bs.mode = ModeInAir
	incoming := bs.vel.Magnitude()
	incomingVX := bs.vel.X

	bs.Update(TickDuration)

	if bs.vel.X > incomingVX*0.5 {
		t.Errorf("bunker entry kept %.1f%% of horizontal speed, want <= 50%%",
			100*bs.vel.X/incomingVX)
	}
	if bs.vel.Y < 0 {
		t.Errorf("vertical velocity did not flip: vy=%.3f", bs.vel.Y)
	}
	if bs.vel.Y > 0.15*incoming {
		t.Errorf("bunker rebound %.3f exceeds 15%% of incoming speed %.3f", bs.vel.Y, incoming)
	}
}

func TestFairwayBounceReflectsVertical(t *testing.T) {
	bs, tf := setupSimulator(t, nil)

	ground := tf.HeightAt(0, -20)
	bs.pos = NewVec3(0, ground+0.05, -20)
	bs.vel = NewVec3(10, -12, 0)
	bs.mode = ModeInAir

	bs.Update(TickDuration)

	if bs.Mode() != ModeInAir {
		t.Fatalf("hard fairway landing should rebound, mode=%s", bs.Mode())
	}
	if bs.vel.Y <= 0 {
		t.Errorf("rebound vy=%.3f, want positive", bs.vel.Y)
	}

	found := false
	for _, e := range bs.events {
		if e.Type == "bounce" {
			found = true
		}
	}
	if !found {
		t.Error("no bounce event recorded")
	}
}

func TestGreenLowSpeedFrictionIsExact(t *testing.T) {
	// Below the low-speed threshold the configured constant applies
	// exactly, with no interpolation.
	if got := RollingFriction(SurfaceGreen, 3); got != GreenFrictionLow {
		t.Errorf("green friction at 3 u/s = %v, want %v exactly", got, GreenFrictionLow)
	}
	if got := RollingFriction(SurfaceGreen, RollHighSpeedThreshold+5); got != GreenFrictionHigh {
		t.Errorf("green friction above high band = %v, want %v exactly", got, GreenFrictionHigh)
	}

	mid := RollingFriction(SurfaceGreen, (RollLowSpeedThreshold+RollHighSpeedThreshold)/2)
	if mid <= GreenFrictionHigh || mid >= GreenFrictionLow {
		t.Errorf("mid-band friction %v not between %v and %v", mid, GreenFrictionHigh, GreenFrictionLow)
	}

	if got := RollingFriction(SurfaceBunker, 50); got != BunkerFriction {
		t.Errorf("bunker friction = %v, want flat %v", got, BunkerFriction)
	}
	if got := RollingFriction(SurfaceRough, 1); got != RoughFriction {
		t.Errorf("rough friction = %v, want flat %v", got, RoughFriction)
	}
}

func TestDragNeverRemovesMostOfSpeedInOneTick(t *testing.T) {
	// Even at absurd speed the drag factor is floored.
	v := NewVec3(10000, 0, 0)
	out := applyGravityAndDrag(v, TickDuration)
	if out.X < v.X*MinDragFactor {
		t.Errorf("drag removed more than 90%%: %.1f -> %.1f", v.X, out.X)
	}
}

func TestInvalidModeSelfHeals(t *testing.T) {
	bs, tf := setupSimulator(t, nil)

	bs.pos = NewVec3(0, tf.HeightAt(0, -20)+5, -20)
	bs.vel = NewVec3(5, 0, 0)
	bs.mode = BallMode("LIMBO")

	bs.Update(TickDuration)

	if bs.Mode() != ModeInAir {
		t.Errorf("moving ball in invalid mode healed to %s, want in-air", bs.Mode())
	}

	bs.mode = BallMode("LIMBO")
	bs.vel = Vec3{}
	bs.Update(TickDuration)
	if bs.Mode() != ModeOnGround {
		t.Errorf("stationary ball in invalid mode healed to %s, want on-ground", bs.Mode())
	}
}

func TestSimulationSurvivesNaNVelocity(t *testing.T) {
	bs, tf := setupSimulator(t, nil)

	bs.pos = NewVec3(0, tf.HeightAt(0, -20)+2, -20)
	bs.vel = Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	bs.mode = ModeInAir

	for tick := 0; tick < 600; tick++ {
		bs.Update(TickDuration)
	}

	p := bs.Position()
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		t.Fatalf("NaN escaped into position: %+v", p)
	}
}

func TestShotSimulationIsDeterministic(t *testing.T) {
	run := func() Vec3 {
		bs, _ := setupSimulator(t, NewWind(42))
		bs.PlaceAt(testHoleConfig().Tee)
		bs.LaunchShot(NewShotModel().InitialVelocity(0.8, 0.3, ClubDriver))
		out := bs.Simulate()
		return out.Final.Position
	}

	p1 := run()
	p2 := run()
	if p1 != p2 {
		t.Errorf("non-deterministic flight: %+v vs %+v", p1, p2)
	}
}

func TestSimulateRunsShotToRest(t *testing.T) {
	bs, _ := setupSimulator(t, nil)
	bs.PlaceAt(testHoleConfig().Tee)
	bs.LaunchShot(NewShotModel().InitialVelocity(0.7, 0, ClubMidIron))

	out := bs.Simulate()

	if !out.Captured && !bs.AtRest() {
		t.Fatalf("shot did not reach rest in %d ticks (speed %.4f)", out.Ticks, bs.vel.Magnitude())
	}
	if len(out.Trace) < 2 {
		t.Errorf("trace has %d states, want at least launch + flight", len(out.Trace))
	}
	if out.Events[0].Type != "launch" {
		t.Errorf("first event %q, want launch", out.Events[0].Type)
	}
	last := out.Events[len(out.Events)-1]
	if last.Type != "rest" && last.Type != "capture" {
		t.Errorf("last event %q, want rest or capture", last.Type)
	}
}

func TestWindOnlyPushesFastBalls(t *testing.T) {
	wind := NewWind(7)
	wind.Speed = WindMaxSpeed
	wind.Direction = 0 // pushing +x

	bs, tf := setupSimulator(t, wind)

	// Slow lob: below the wind threshold, x must not drift.
	bs.pos = NewVec3(0, tf.HeightAt(0, -20)+3, -20)
	bs.vel = NewVec3(0, 1, 0)
	bs.mode = ModeInAir
	bs.Update(TickDuration)
	if bs.vel.X != 0 {
		t.Errorf("wind pushed a slow ball: vx=%v", bs.vel.X)
	}

	// Fast flight: wind accelerates +x.
	bs.pos = NewVec3(0, tf.HeightAt(0, -20)+10, -20)
	bs.vel = NewVec3(0, 30, 0)
	bs.mode = ModeInAir
	bs.Update(TickDuration)
	if bs.vel.X <= 0 {
		t.Errorf("wind did not push a fast ball: vx=%v", bs.vel.X)
	}
}
