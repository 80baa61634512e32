package game

// TrajectoryPredictor produces the aim-assist polyline for a candidate shot.
// It reuses the ShotModel and the same integration constants as the live
// simulator, so the preview visually matches the real flight. Wind is
// omitted: the preview must stay stable between gust refreshes.
type TrajectoryPredictor struct {
	terrain *TerrainField
	shots   *ShotModel
}

func NewTrajectoryPredictor(terrain *TerrainField, shots *ShotModel) *TrajectoryPredictor {
	return &TrajectoryPredictor{terrain: terrain, shots: shots}
}

// Predict runs a bounded forward simulation (gravity + drag) and returns the
// flight path up to the first ground contact, with the landing point
// projected onto the terrain. A fresh slice is returned on every call; it
// touches no live simulator state. Callers should gate on aim/club changes;
// this is too expensive to run unconditionally every frame.
func (tp *TrajectoryPredictor) Predict(power, aimAngle float64, club Club, start Vec3) []Vec3 {
	vel := tp.shots.InitialVelocity(power, aimAngle, club)
	pos := start.Plus(NewVec3(0, LaunchHeightEpsilon, 0))

	// Time budget scales with shot energy, floored so a weak putt still
	// gets a visible preview and capped so a full drive cannot loop forever.
	budget := clamp(
		PredictorBaseSeconds*clamp(power, 0, 1)*club.Spec().PowerMultiplier,
		PredictorFloorSeconds,
		PredictorMaxSeconds,
	)
	steps := int(budget / TickDuration)

	points := make([]Vec3, 0, steps+1)
	points = append(points, pos)

	for i := 0; i < steps; i++ {
		vel = applyGravityAndDrag(vel, TickDuration)
		next := pos.Plus(vel.Times(TickDuration))

		ground := tp.terrain.HeightAt(next.X, next.Z)
		if next.Y <= ground {
			// First ground contact, same condition as the live simulator.
			// No descent qualifier: on a rising slope the ball can meet the
			// terrain while still climbing, and the preview must stop where
			// the real flight would bounce. Landing projected onto terrain.
			points = append(points, NewVec3(next.X, ground, next.Z))
			return points
		}

		pos = next
		points = append(points, pos)
	}

	return points
}
