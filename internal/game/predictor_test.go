package game

import (
	"math"
	"testing"
)

func setupPredictor(t *testing.T) (*TrajectoryPredictor, *TerrainField, *ShotModel) {
	t.Helper()
	tf, err := NewTerrainField(testHoleConfig())
	if err != nil {
		t.Fatalf("terrain generation failed: %v", err)
	}
	sm := NewShotModel()
	return NewTrajectoryPredictor(tf, sm), tf, sm
}

func TestPredictMatchesHandIntegration(t *testing.T) {
	tp, tf, sm := setupPredictor(t)

	start := NewVec3(0, tf.HeightAt(0, -20), -20)
	points := tp.Predict(1.0, 0, ClubDriver, start)
	if len(points) < 10 {
		t.Fatalf("full drive produced only %d points", len(points))
	}

	// Integrate the same constants directly: gravity, then the
	// speed-dependent drag decay, then position.
	vel := sm.InitialVelocity(1.0, 0, ClubDriver)
	pos := start.Plus(NewVec3(0, LaunchHeightEpsilon, 0))
	apex := pos.Y
	landingX := pos.X
	for i := 0; i < 10*60; i++ {
		vel.Y = fix(vel.Y - Gravity*TickDuration)
		speed := vel.Magnitude()
		factor := clamp(1-AirDragCoefficient*speed*TickDuration, MinDragFactor, 1)
		vel = vel.Times(factor)
		pos = pos.Plus(vel.Times(TickDuration))
		if pos.Y > apex {
			apex = pos.Y
		}
		if pos.Y <= tf.HeightAt(pos.X, pos.Z) && vel.Y < 0 {
			landingX = pos.X
			break
		}
	}

	gotApex := points[0].Y
	for _, p := range points {
		if p.Y > gotApex {
			gotApex = p.Y
		}
	}
	gotLanding := points[len(points)-1].X

	if math.Abs(gotApex-apex) > 0.5 {
		t.Errorf("apex %.3f, hand integration gives %.3f", gotApex, apex)
	}
	if math.Abs(gotLanding-landingX) > 2.0 {
		t.Errorf("landing x %.3f, hand integration gives %.3f", gotLanding, landingX)
	}
}

func TestPredictTerminatesAtFirstGroundContact(t *testing.T) {
	tp, tf, _ := setupPredictor(t)

	start := NewVec3(0, tf.HeightAt(0, -20), -20)
	points := tp.Predict(0.9, 0, ClubMidIron, start)

	last := points[len(points)-1]
	ground := tf.HeightAt(last.X, last.Z)
	if math.Abs(last.Y-ground) > 1e-6 {
		t.Errorf("preview end y=%.4f not projected onto terrain height %.4f", last.Y, ground)
	}

	// No interior point may be below the terrain.
	for i, p := range points[:len(points)-1] {
		if i == 0 {
			continue
		}
		if p.Y < tf.HeightAt(p.X, p.Z)-1e-6 {
			t.Errorf("point %d below terrain: %.4f < %.4f", i, p.Y, tf.HeightAt(p.X, p.Z))
		}
	}
}

func TestPredictStopsOnRisingSlope(t *testing.T) {
	// A raised green ahead of the ball: the flight meets the slope while
	// still climbing, and the preview must stop there instead of tunneling
	// through the hillside.
	cfg := HoleConfig{
		Number: 1, Par: 3, Width: 80, Depth: 80, Resolution: 96,
		Tee: NewVec2(-30, 0), TeeElevation: 0.2,
		GreenCenter: NewVec2(20, 0), GreenRadius: 7, GreenElevation: 6,
		FairwayPath:  []Vec2{NewVec2(-30, 0), NewVec2(20, 0)},
		FairwayWidth: 12,
	}
	tf, err := NewTerrainField(cfg)
	if err != nil {
		t.Fatalf("terrain generation failed: %v", err)
	}
	tp := NewTrajectoryPredictor(tf, NewShotModel())

	// Low flat drive into the hill: apex stays below the green elevation.
	start := NewVec3(0, tf.HeightAt(0, 0), 0)
	points := tp.Predict(0.6, 0, ClubDriver, start)

	budget := int(clamp(PredictorBaseSeconds*0.6*ClubDriver.Spec().PowerMultiplier,
		PredictorFloorSeconds, PredictorMaxSeconds) / TickDuration)
	if len(points) >= budget {
		t.Fatalf("preview ran the full %d-step budget without hitting the slope", budget)
	}

	last := points[len(points)-1]
	if math.Abs(last.Y-tf.HeightAt(last.X, last.Z)) > 1e-6 {
		t.Errorf("preview end y=%.4f not on terrain height %.4f",
			last.Y, tf.HeightAt(last.X, last.Z))
	}
	for i, p := range points[1 : len(points)-1] {
		if p.Y < tf.HeightAt(p.X, p.Z)-1e-6 {
			t.Errorf("point %d tunneled below terrain: %.4f < %.4f",
				i+1, p.Y, tf.HeightAt(p.X, p.Z))
		}
	}
}

func TestPredictReturnsFreshSlice(t *testing.T) {
	tp, tf, _ := setupPredictor(t)
	start := NewVec3(0, tf.HeightAt(0, -20), -20)

	a := tp.Predict(0.5, 0, ClubWedge, start)
	b := tp.Predict(0.5, 0, ClubWedge, start)
	if len(a) == 0 || len(b) == 0 {
		t.Fatal("empty preview")
	}
	if &a[0] == &b[0] {
		t.Error("Predict reused the same backing array across calls")
	}

	a[0] = NewVec3(999, 999, 999)
	if b[0].X == 999 {
		t.Error("mutating one preview affected another")
	}
}

func TestPredictWeakPuttStillProducesPreview(t *testing.T) {
	tp, tf, _ := setupPredictor(t)
	start := NewVec3(0, tf.HeightAt(0, -20), -20)

	// The time budget is floored, so even power 0 yields a usable polyline.
	points := tp.Predict(0, 0, ClubPutter, start)
	if len(points) < 2 {
		t.Errorf("degenerate putt preview has %d points", len(points))
	}
}

func TestPredictMatchesLiveSimulatorFirstLanding(t *testing.T) {
	cfg := testHoleConfig()
	tf, err := NewTerrainField(cfg)
	if err != nil {
		t.Fatalf("terrain generation failed: %v", err)
	}
	sm := NewShotModel()
	tp := NewTrajectoryPredictor(tf, sm)

	start := NewVec3(0, tf.HeightAt(0, -20), -20)
	points := tp.Predict(0.8, 0.2, ClubFairwayWood, start)
	predicted := points[len(points)-1]

	// Live simulator with no wind must first touch down where the preview
	// says it will.
	bs := NewBallSimulator(tf, nil, cfg.GreenCenter)
	bs.pos = start
	bs.LaunchShot(sm.InitialVelocity(0.8, 0.2, ClubFairwayWood))
	out := bs.Simulate()

	var firstBounce *FlightEvent
	for i := range out.Events {
		if out.Events[i].Type == "bounce" {
			firstBounce = &out.Events[i]
			break
		}
	}
	if firstBounce == nil {
		t.Fatal("live simulation recorded no bounce")
	}

	dx := firstBounce.Position.X - predicted.X
	dz := firstBounce.Position.Z - predicted.Z
	if math.Sqrt(dx*dx+dz*dz) > 1.5 {
		t.Errorf("preview landing (%.2f, %.2f) far from live landing (%.2f, %.2f)",
			predicted.X, predicted.Z, firstBounce.Position.X, firstBounce.Position.Z)
	}
}
