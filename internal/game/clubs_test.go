package game

import (
	"math"
	"testing"
)

func TestClubTableIsMonotonic(t *testing.T) {
	// Bag order goes from low loft / full power to high loft / low power.
	for i := 1; i < len(AllClubs); i++ {
		prev := AllClubs[i-1].Spec()
		cur := AllClubs[i].Spec()
		if cur.LaunchAngleDeg < prev.LaunchAngleDeg && AllClubs[i] != ClubPutter {
			t.Errorf("%s launch angle %.1f below %s's %.1f",
				AllClubs[i], cur.LaunchAngleDeg, AllClubs[i-1], prev.LaunchAngleDeg)
		}
		if cur.PowerMultiplier >= prev.PowerMultiplier {
			t.Errorf("%s multiplier %.2f not below %s's %.2f",
				AllClubs[i], cur.PowerMultiplier, AllClubs[i-1], prev.PowerMultiplier)
		}
	}
}

func TestParseClubRejectsUnknown(t *testing.T) {
	if _, err := ParseClub("SAND_WEDGE"); err == nil {
		t.Error("expected error for unknown club")
	}
	if c, err := ParseClub("DRIVER"); err != nil || c != ClubDriver {
		t.Errorf("ParseClub(DRIVER) = %v, %v", c, err)
	}
}

func TestInitialVelocityMonotonicInPower(t *testing.T) {
	sm := NewShotModel()
	for _, club := range AllClubs {
		prev := -1.0
		for power := 0.0; power <= 1.0; power += 0.05 {
			mag := sm.InitialVelocity(power, 0, club).Magnitude()
			if mag < prev {
				t.Errorf("%s: speed decreased from %.3f to %.3f at power %.2f",
					club, prev, mag, power)
			}
			prev = mag
		}
	}
}

func TestInitialVelocityAimConvention(t *testing.T) {
	sm := NewShotModel()

	// Aim 0 shoots along +x with no z component.
	v := sm.InitialVelocity(1.0, 0, ClubDriver)
	if v.X <= 0 || math.Abs(v.Z) > 1e-9 {
		t.Errorf("aim 0: got vx=%.3f vz=%.3f", v.X, v.Z)
	}
	if v.Y <= 0 {
		t.Errorf("driver launch should be upward, vy=%.3f", v.Y)
	}

	// Positive aim rotates toward −z (right-handed convention).
	v = sm.InitialVelocity(1.0, math.Pi/2, ClubDriver)
	if math.Abs(v.X) > 1e-3 || v.Z >= 0 {
		t.Errorf("aim π/2: got vx=%.3f vz=%.3f", v.X, v.Z)
	}

	// Putter stays flat.
	v = sm.InitialVelocity(0.5, 0, ClubPutter)
	if v.Y != 0 {
		t.Errorf("putter shot has vertical component %.3f", v.Y)
	}
}

func TestInitialVelocityPowerClamped(t *testing.T) {
	sm := NewShotModel()
	over := sm.InitialVelocity(1.5, 0, ClubDriver).Magnitude()
	full := sm.InitialVelocity(1.0, 0, ClubDriver).Magnitude()
	if over != full {
		t.Errorf("power above 1 not clamped: %.3f vs %.3f", over, full)
	}
}

func TestMaxDistanceCacheIdempotence(t *testing.T) {
	sm := NewShotModel()
	for _, club := range AllClubs {
		first := sm.MaxDistance(club)
		second := sm.MaxDistance(club)
		if first != second {
			t.Errorf("%s: cached distance %.4f != first computation %.4f", club, second, first)
		}
		if first <= 0 {
			t.Errorf("%s: max distance %.4f not positive", club, first)
		}
	}

	// Driver out-carries the wedge by a wide margin.
	if sm.MaxDistance(ClubDriver) < 2*sm.MaxDistance(ClubWedge) {
		t.Errorf("driver carry %.1f suspiciously close to wedge carry %.1f",
			sm.MaxDistance(ClubDriver), sm.MaxDistance(ClubWedge))
	}
}

func TestMaxDistanceOrderedByLoft(t *testing.T) {
	// Carries must decrease strictly in bag order. Loft buys hang time, and
	// under drag that can let a slower club out-fly a faster one if the
	// multiplier spread is too narrow.
	sm := NewShotModel()
	for i := 1; i < len(AllClubs); i++ {
		longer := sm.MaxDistance(AllClubs[i-1])
		shorter := sm.MaxDistance(AllClubs[i])
		if shorter >= longer {
			t.Errorf("%s carries %.1f, out-flying %s at %.1f",
				AllClubs[i], shorter, AllClubs[i-1], longer)
		}
	}
}

func TestResetDistanceCacheRecomputes(t *testing.T) {
	sm := NewShotModel()
	first := sm.MaxDistance(ClubMidIron)
	sm.ResetDistanceCache()
	second := sm.MaxDistance(ClubMidIron)
	if first != second {
		t.Errorf("recomputed distance %.4f differs from original %.4f", second, first)
	}
}

func TestIdealPowerFraction(t *testing.T) {
	sm := NewShotModel()

	max := sm.MaxDistance(ClubDriver)
	if got := sm.IdealPowerFraction(max/2, ClubDriver); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half carry should need power 0.5, got %.4f", got)
	}
	if got := sm.IdealPowerFraction(max*3, ClubDriver); got != 1 {
		t.Errorf("overshoot target should clamp to 1, got %.4f", got)
	}
	if got := sm.IdealPowerFraction(0, ClubDriver); got != 0 {
		t.Errorf("zero target should need power 0, got %.4f", got)
	}
}

func TestIdealPowerFractionDegenerateDistance(t *testing.T) {
	// A zero cached carry must not divide by zero.
	sm := NewShotModel()
	sm.distances[ClubPutter] = 0

	got := sm.IdealPowerFraction(10, ClubPutter)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("degenerate carry produced %v", got)
	}
	if got != 1 {
		t.Errorf("degenerate carry should clamp to 1, got %.4f", got)
	}
}
