package game

import (
	"math"
	"math/rand"
	"time"
)

// Wind is the per-round gust state. Refreshes are throttled by wall-clock
// time rather than ticks so the cadence stays stable under variable frame
// rates, and only happen while the ball is actually moving.
type Wind struct {
	Speed     float64 `json:"speed"`     // bounded [WindMinSpeed, WindMaxSpeed]
	Direction float64 `json:"direction"` // radians

	rng        *rand.Rand
	lastUpdate time.Time
}

// NewWind seeds a deterministic gust sequence for one round. The first
// refresh is only eligible a full interval after construction.
func NewWind(seed int64) *Wind {
	w := &Wind{
		rng:        rand.New(rand.NewSource(seed)),
		lastUpdate: time.Now(),
	}
	w.roll()
	return w
}

func (w *Wind) roll() {
	w.Speed = fix(WindMinSpeed + w.rng.Float64()*(WindMaxSpeed-WindMinSpeed))
	w.Direction = fix(w.rng.Float64() * 2 * math.Pi)
}

// MaybeUpdate re-rolls the gust if the refresh interval has elapsed and the
// ball is moving fast enough for the change to matter.
func (w *Wind) MaybeUpdate(now time.Time, ballSpeed float64) {
	if ballSpeed <= WindBallSpeedThreshold {
		return
	}
	if now.Sub(w.lastUpdate).Seconds() < WindUpdateIntervalSecs {
		return
	}
	w.lastUpdate = now
	w.roll()
}

// Accel returns the horizontal acceleration the current gust exerts.
func (w *Wind) Accel() Vec3 {
	a := w.Speed * WindForceScale
	return NewVec3(a*math.Cos(w.Direction), 0, -a*math.Sin(w.Direction))
}
