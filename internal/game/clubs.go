package game

import (
	"fmt"
	"math"
	"sync"
)

// Club identifies one of the fixed set of clubs.
type Club string

const (
	ClubDriver      Club = "DRIVER"
	ClubFairwayWood Club = "FAIRWAY_WOOD"
	ClubMidIron     Club = "MID_IRON"
	ClubShortIron   Club = "SHORT_IRON"
	ClubWedge       Club = "WEDGE"
	ClubPutter      Club = "PUTTER"
)

// ClubSpec holds a club's static launch parameters.
type ClubSpec struct {
	LaunchAngleDeg  float64 `json:"launch_angle_deg"`
	PowerMultiplier float64 `json:"power_multiplier"`
}

// clubTable maps every club to its spec. Higher-lofted clubs carry a higher
// launch angle and a lower multiplier, and the multiplier spread is wide
// enough that carries stay strictly ordered under drag: the loft advantage
// in hang time must never let a shorter club out-fly a longer one.
var clubTable = map[Club]ClubSpec{
	ClubDriver:      {LaunchAngleDeg: 12.0, PowerMultiplier: 1.0},
	ClubFairwayWood: {LaunchAngleDeg: 15.0, PowerMultiplier: 0.85},
	ClubMidIron:     {LaunchAngleDeg: 22.0, PowerMultiplier: 0.65},
	ClubShortIron:   {LaunchAngleDeg: 32.0, PowerMultiplier: 0.50},
	ClubWedge:       {LaunchAngleDeg: 46.0, PowerMultiplier: 0.36},
	ClubPutter:      {LaunchAngleDeg: 0.0, PowerMultiplier: 0.18},
}

// AllClubs lists every club in bag order.
var AllClubs = []Club{
	ClubDriver, ClubFairwayWood, ClubMidIron, ClubShortIron, ClubWedge, ClubPutter,
}

// ParseClub validates a client-supplied club identifier.
func ParseClub(s string) (Club, error) {
	c := Club(s)
	if _, ok := clubTable[c]; !ok {
		return "", fmt.Errorf("unknown club %q", s)
	}
	return c, nil
}

// Spec returns the club's launch parameters.
func (c Club) Spec() ClubSpec {
	return clubTable[c]
}

// ShotModel maps player input (power, aim, club) to an initial velocity and
// calibrates ideal-power feedback from cached max carry distances.
type ShotModel struct {
	mu        sync.Mutex
	distances map[Club]float64
}

func NewShotModel() *ShotModel {
	return &ShotModel{distances: make(map[Club]float64)}
}

// InitialVelocity maps power in [0,1] linearly to a base speed, applies the
// club multiplier, splits the speed by the club's launch angle, and rotates
// the horizontal component by the aim angle (x = cos aim, z = −sin aim).
func (sm *ShotModel) InitialVelocity(power, aimAngle float64, club Club) Vec3 {
	spec := clubTable[club]
	power = clamp(power, 0, 1)

	base := MinShotSpeed + power*(MaxShotSpeed-MinShotSpeed)
	total := base * spec.PowerMultiplier

	launch := spec.LaunchAngleDeg * math.Pi / 180
	horizontal := total * math.Cos(launch)
	vertical := total * math.Sin(launch)

	return NewVec3(
		horizontal*math.Cos(aimAngle),
		vertical,
		-horizontal*math.Sin(aimAngle),
	)
}

// MaxDistance is the carry of a full-power shot on flat ground with gravity
// and drag only. Cached per club after the first computation.
func (sm *ShotModel) MaxDistance(club Club) float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if d, ok := sm.distances[club]; ok {
		return d
	}

	vel := sm.InitialVelocity(1.0, 0, club)
	pos := NewVec3(0, LaunchHeightEpsilon, 0)

	for tick := 0; tick < MaxSimTicks; tick++ {
		vel = applyGravityAndDrag(vel, TickDuration)
		pos = pos.Plus(vel.Times(TickDuration))
		if pos.Y <= 0 && vel.Y < 0 {
			break
		}
	}

	d := fix(pos.X)
	sm.distances[club] = d
	return d
}

// ResetDistanceCache drops the cached carries, forcing recomputation.
func (sm *ShotModel) ResetDistanceCache() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.distances = make(map[Club]float64)
}

// IdealPowerFraction returns the power that would carry the club to the
// target distance, clamped to [0,1]. The denominator is floored by epsilon
// so a degenerate club can never divide by zero.
func (sm *ShotModel) IdealPowerFraction(targetDistance float64, club Club) float64 {
	max := sm.MaxDistance(club)
	if max < DistanceEpsilon {
		max = DistanceEpsilon
	}
	return clamp(targetDistance/max, 0, 1)
}

// applyGravityAndDrag advances a velocity by one step of gravity plus the
// speed-dependent drag decay. Shared by the simulator, the predictor, and
// MaxDistance calibration so they cannot drift apart.
func applyGravityAndDrag(vel Vec3, dt float64) Vec3 {
	vel.Y = fix(vel.Y - Gravity*dt)

	speed := vel.Magnitude()
	factor := clamp(1-AirDragCoefficient*speed*dt, MinDragFactor, 1)
	return vel.Times(factor)
}
