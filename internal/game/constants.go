package game

// Physics and tuning constants for the golf simulation.
// These MUST match the client-side preview constants exactly; the aim-assist
// polyline is only honest if both ends integrate the same numbers.

const (
	TickDuration = 1.0 / 60.0 // fixed simulation step, seconds
	Gravity      = 9.8        // downward acceleration, units/s²

	// Shot speed range. Power 0..1 maps linearly across this band before the
	// club multiplier is applied.
	MinShotSpeed = 1.0
	MaxShotSpeed = 60.0

	// Air drag: per-tick multiplicative decay derived from current speed.
	// The factor is floored so a single tick can never remove more than 90%
	// of the ball's speed.
	AirDragCoefficient = 0.008
	MinDragFactor      = 0.1

	// Wind. Raw gust speed is bounded [WindMinSpeed, WindMaxSpeed] and scaled
	// by WindForceScale before being applied as acceleration. Wind only acts
	// on a ball moving faster than WindBallSpeedThreshold, and the gust is
	// only re-rolled after WindUpdateIntervalSecs of wall-clock time.
	WindMinSpeed           = 5.0
	WindMaxSpeed           = 20.0
	WindForceScale         = 0.05
	WindUpdateIntervalSecs = 5.0
	WindBallSpeedThreshold = 8.0

	// Landing: vertical restitution below this rebound speed commits the
	// ball to rolling instead of another bounce.
	BounceStopThreshold = 1.0

	// Rolling friction speed bands for green and fairway. At or below the
	// low threshold the exact low constant applies (delicate putts); at or
	// above the high threshold the exact high constant applies (approach
	// control); between them the factor is a linear blend.
	RollLowSpeedThreshold  = 4.0
	RollHighSpeedThreshold = 10.0

	GreenFrictionLow    = 0.995
	GreenFrictionHigh   = 0.94
	FairwayFrictionLow  = 0.985
	FairwayFrictionHigh = 0.93
	TeeFriction         = 0.96
	RoughFriction       = 0.88
	BunkerFriction      = 0.75

	// Hole capture. The cup pulls a slow ball within twice the capture
	// radius; formal capture needs the ball inside the radius, near the cup
	// floor, and below the capture speed.
	CaptureRadius     = 0.6
	CaptureSpeed      = 4.0
	CupDepth          = 0.5
	CupLipRadius      = 1.2
	CupDepthTolerance = 0.6
	HoleAttractAccel  = 6.0

	// Quiescence: speed² below this is treated as at rest.
	RestSpeedSquared = 0.01

	// Launch nudges the ball up slightly so it cannot re-collide with the
	// surface it started on in the same tick.
	LaunchHeightEpsilon = 0.01

	MaxSimTicks = 3600 // 60 simulated seconds, hard cap per shot

	// Trajectory preview time budget: scales with power and club multiplier,
	// floored so weak putts still produce a visible arc.
	PredictorBaseSeconds  = 6.0
	PredictorFloorSeconds = 1.0
	PredictorMaxSeconds   = 10.0

	// Guards divide-by-zero in power-fraction math for degenerate clubs.
	DistanceEpsilon = 0.001
)
