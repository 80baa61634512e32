package game

import "fmt"

// NineHoleCourse returns the built-in course layout. All coordinates are in
// world units on the hole's own footprint: x across, z along the hole, tee
// toward −z and green toward +z. Fixed data, no jitter: every round plays
// the same course.
func NineHoleCourse() []HoleConfig {
	return []HoleConfig{
		{
			Number: 1, Par: 4, Width: 70, Depth: 150, Resolution: 96,
			Tee: NewVec2(0, -62), TeeElevation: 0.3,
			GreenCenter: NewVec2(4, 58), GreenRadius: 7, GreenElevation: 0.5,
			FairwayPath:  []Vec2{NewVec2(0, -62), NewVec2(-3, -10), NewVec2(4, 58)},
			FairwayWidth: 14,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(-8, 44), Radius: 4},
				{Center: NewVec2(12, 52), Radius: 3.5},
			},
			Trees: []Vec2{NewVec2(-20, -20), NewVec2(22, 10), NewVec2(-18, 35)},
		},
		{
			Number: 2, Par: 3, Width: 60, Depth: 110, Resolution: 96,
			Tee: NewVec2(0, -44), TeeElevation: 0.8,
			GreenCenter: NewVec2(-2, 38), GreenRadius: 6, GreenElevation: 0.2,
			FairwayPath:  []Vec2{NewVec2(0, -44), NewVec2(-2, 38)},
			FairwayWidth: 11,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(-9, 33), Radius: 3.5},
				{Center: NewVec2(5, 41), Radius: 3},
			},
			Trees: []Vec2{NewVec2(14, -5), NewVec2(-16, 12)},
		},
		{
			Number: 3, Par: 5, Width: 80, Depth: 190, Resolution: 96,
			Tee: NewVec2(-6, -82), TeeElevation: 0.4,
			GreenCenter: NewVec2(10, 78), GreenRadius: 7.5, GreenElevation: 0.6,
			FairwayPath: []Vec2{
				NewVec2(-6, -82), NewVec2(-10, -20), NewVec2(6, 30), NewVec2(10, 78),
			},
			FairwayWidth: 15,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(-16, -15), Radius: 4.5},
				{Center: NewVec2(14, 25), Radius: 4},
				{Center: NewVec2(2, 72), Radius: 3.5},
			},
			Trees: []Vec2{NewVec2(-24, -50), NewVec2(26, 0), NewVec2(-22, 55)},
		},
		{
			Number: 4, Par: 4, Width: 70, Depth: 145, Resolution: 96,
			Tee: NewVec2(4, -60), TeeElevation: 0.2,
			GreenCenter: NewVec2(-8, 56), GreenRadius: 6.5, GreenElevation: 0.9,
			FairwayPath: []Vec2{
				NewVec2(4, -60), NewVec2(10, -5), NewVec2(-8, 56),
			},
			FairwayWidth: 13,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(2, 50), Radius: 4},
			},
			Trees: []Vec2{NewVec2(-18, -30), NewVec2(20, 20), NewVec2(18, 48)},
		},
		{
			Number: 5, Par: 3, Width: 55, Depth: 100, Resolution: 96,
			Tee: NewVec2(0, -40), TeeElevation: 1.1,
			GreenCenter: NewVec2(3, 34), GreenRadius: 5.5, GreenElevation: 0.1,
			FairwayPath:  []Vec2{NewVec2(0, -40), NewVec2(3, 34)},
			FairwayWidth: 10,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(-4, 30), Radius: 3},
				{Center: NewVec2(9, 36), Radius: 3},
			},
		},
		{
			Number: 6, Par: 4, Width: 72, Depth: 155, Resolution: 96,
			Tee: NewVec2(-2, -65), TeeElevation: 0.5,
			GreenCenter: NewVec2(6, 60), GreenRadius: 7, GreenElevation: 0.4,
			FairwayPath: []Vec2{
				NewVec2(-2, -65), NewVec2(8, 0), NewVec2(6, 60),
			},
			FairwayWidth: 14,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(16, -4), Radius: 4},
				{Center: NewVec2(-3, 55), Radius: 3.5},
			},
			Trees: []Vec2{NewVec2(-22, -10), NewVec2(24, 30)},
		},
		{
			Number: 7, Par: 5, Width: 80, Depth: 185, Resolution: 96,
			Tee: NewVec2(5, -80), TeeElevation: 0.3,
			GreenCenter: NewVec2(-12, 75), GreenRadius: 8, GreenElevation: 0.7,
			FairwayPath: []Vec2{
				NewVec2(5, -80), NewVec2(12, -25), NewVec2(-6, 25), NewVec2(-12, 75),
			},
			FairwayWidth: 15,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(20, -20), Radius: 4.5},
				{Center: NewVec2(-14, 20), Radius: 4},
				{Center: NewVec2(-4, 70), Radius: 3.5},
			},
			Trees: []Vec2{NewVec2(-26, -45), NewVec2(28, 15), NewVec2(-24, 50)},
		},
		{
			Number: 8, Par: 3, Width: 58, Depth: 105, Resolution: 96,
			Tee: NewVec2(-3, -42), TeeElevation: 0.6,
			GreenCenter: NewVec2(4, 36), GreenRadius: 6, GreenElevation: 1.0,
			FairwayPath:  []Vec2{NewVec2(-3, -42), NewVec2(4, 36)},
			FairwayWidth: 10,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(10, 31), Radius: 3.5},
			},
			Trees: []Vec2{NewVec2(-15, 0), NewVec2(16, -12)},
		},
		{
			Number: 9, Par: 4, Width: 74, Depth: 160, Resolution: 96,
			Tee: NewVec2(0, -68), TeeElevation: 0.4,
			GreenCenter: NewVec2(0, 62), GreenRadius: 7.5, GreenElevation: 0.3,
			FairwayPath: []Vec2{
				NewVec2(0, -68), NewVec2(-6, 0), NewVec2(0, 62),
			},
			FairwayWidth: 14,
			Bunkers: []BunkerConfig{
				{Center: NewVec2(-10, 56), Radius: 4},
				{Center: NewVec2(10, 56), Radius: 4},
			},
			Trees: []Vec2{NewVec2(-20, -35), NewVec2(22, -8), NewVec2(-18, 40)},
		},
	}
}

// HoleByNumber looks up a hole config from the built-in course.
func HoleByNumber(number int) (HoleConfig, error) {
	for _, h := range NineHoleCourse() {
		if h.Number == number {
			return h, nil
		}
	}
	return HoleConfig{}, fmt.Errorf("no hole %d on course", number)
}

// CoursePar sums par over the nine holes.
func CoursePar() int {
	total := 0
	for _, h := range NineHoleCourse() {
		total += h.Par
	}
	return total
}
