package game

import (
	"sync"
	"testing"
)

func newTestRound(t *testing.T) *RoundState {
	t.Helper()
	r := NewRound("round_test", "tok_test", 1, "tester", "pt_test")
	if err := r.Start(); err != nil {
		t.Fatalf("round start failed: %v", err)
	}
	return r
}

func TestHoledShotKeepsPlayedHole(t *testing.T) {
	r := newTestRound(t)

	// Drop the ball into the cup and tap it: the putt must hole out, and the
	// result must attribute the shot to hole 1 even though the round has
	// already moved on to hole 2.
	cfg, err := HoleByNumber(1)
	if err != nil {
		t.Fatalf("hole lookup failed: %v", err)
	}
	r.sim.PlaceAt(cfg.GreenCenter)

	result, err := r.TakeShot(ShotParams{
		Club: string(ClubPutter), Power: 0, Aim: 0, Accuracy: 1,
	})
	if err != nil {
		t.Fatalf("shot failed: %v", err)
	}

	if !result.HoleComplete {
		t.Fatal("tap-in at the cup did not hole out")
	}
	if result.Hole != 1 {
		t.Errorf("result attributes shot to hole %d, want 1", result.Hole)
	}
	if result.HoleScore == nil || result.HoleScore.Hole != 1 {
		t.Errorf("hole score = %+v, want hole 1", result.HoleScore)
	}
	if result.NextHole != 2 {
		t.Errorf("next hole = %d, want 2", result.NextHole)
	}
	if r.CurrentHole != 2 {
		t.Errorf("round advanced to hole %d, want 2", r.CurrentHole)
	}
}

func TestShotOnOpenHoleKeepsCurrentHole(t *testing.T) {
	r := newTestRound(t)

	result, err := r.TakeShot(ShotParams{
		Club: string(ClubMidIron), Power: 0.5, Aim: 0, Accuracy: 1,
	})
	if err != nil {
		t.Fatalf("shot failed: %v", err)
	}
	if result.Hole != 1 {
		t.Errorf("result attributes shot to hole %d, want 1", result.Hole)
	}
	if result.HoleComplete {
		t.Error("tee shot from the tee box holed out, which the layout should not allow")
	}
}

func TestStatusFollowsRoundLifecycle(t *testing.T) {
	r := NewRound("round_test", "tok_test", 1, "tester", "pt_test")
	if got := r.Status(); got != StatusWaiting {
		t.Fatalf("fresh round status %s, want %s", got, StatusWaiting)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("round start failed: %v", err)
	}
	if got := r.Status(); got != StatusInProgress {
		t.Fatalf("started round status %s, want %s", got, StatusInProgress)
	}

	// Readers race the write the way the expiry worker races a quit.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = r.Status()
			}
		}()
	}
	r.Abandon()
	wg.Wait()

	if got := r.Status(); got != StatusAbandoned {
		t.Errorf("abandoned round status %s, want %s", got, StatusAbandoned)
	}

	// Abandon after completion or abandonment is a no-op.
	r.Abandon()
	if got := r.Status(); got != StatusAbandoned {
		t.Errorf("double abandon changed status to %s", got)
	}
}
