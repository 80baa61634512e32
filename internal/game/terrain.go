package game

import (
	"fmt"
	"math"
)

// Surface classifies a terrain cell. Every grid vertex gets exactly one.
type Surface string

const (
	SurfaceTee     Surface = "TEE"
	SurfaceFairway Surface = "FAIRWAY"
	SurfaceGreen   Surface = "GREEN"
	SurfaceBunker  Surface = "BUNKER"
	SurfaceRough   Surface = "ROUGH"
)

// Terrain generation tuning.
const (
	roughAmplitude   = 1.5
	fairwayAmplitude = 0.2
	fairwayBlendBand = 6.0 // rough-noise ramp width outside the fairway edge
	greenBlendBand   = 4.0 // height transition band outside the green radius
	greenUndulation  = 0.06
	bunkerDepth      = 0.45
	teeBoxHalfSize   = 2.5
)

// BunkerConfig is a circular sand trap.
type BunkerConfig struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

// HoleConfig is the static layout record a hole is generated from.
type HoleConfig struct {
	Number         int            `json:"number"`
	Par            int            `json:"par"`
	Width          float64        `json:"width"` // world extent along x
	Depth          float64        `json:"depth"` // world extent along z
	Resolution     int            `json:"resolution"`
	Tee            Vec2           `json:"tee"`
	TeeElevation   float64        `json:"tee_elevation"`
	GreenCenter    Vec2           `json:"green_center"`
	GreenRadius    float64        `json:"green_radius"`
	GreenElevation float64        `json:"green_elevation"`
	FairwayPath    []Vec2         `json:"fairway_path"`
	FairwayWidth   float64        `json:"fairway_width"`
	Bunkers        []BunkerConfig `json:"bunkers,omitempty"`
	Trees          []Vec2         `json:"trees,omitempty"`
}

// Validate checks the fields the generator cannot run without.
func (c HoleConfig) Validate() error {
	if c.Width <= 0 || c.Depth <= 0 {
		return fmt.Errorf("hole %d: invalid extents %gx%g", c.Number, c.Width, c.Depth)
	}
	if c.Resolution < 2 {
		return fmt.Errorf("hole %d: resolution %d too small", c.Number, c.Resolution)
	}
	if c.GreenRadius <= 0 {
		return fmt.Errorf("hole %d: missing green radius", c.Number)
	}
	if len(c.FairwayPath) < 2 {
		return fmt.Errorf("hole %d: fairway path needs at least 2 points, got %d", c.Number, len(c.FairwayPath))
	}
	if c.FairwayWidth <= 0 {
		return fmt.Errorf("hole %d: missing fairway width", c.Number)
	}
	return nil
}

// TerrainField holds the generated height and surface grids for one hole.
// It is immutable after generation except for CarveHole, which runs once at
// hole load before any physics queries.
type TerrainField struct {
	cfg      HoleConfig
	width    float64
	depth    float64
	res      int
	heights  [][]float64
	surfaces [][]Surface
}

// NewTerrainField validates the config and generates the grids.
// A malformed config is a fatal hole-load error; coordinate queries on the
// resulting field never fail.
func NewTerrainField(cfg HoleConfig) (*TerrainField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("terrain generation: %w", err)
	}

	tf := &TerrainField{
		cfg:   cfg,
		width: cfg.Width,
		depth: cfg.Depth,
		res:   cfg.Resolution,
	}
	tf.generate()
	return tf, nil
}

func (tf *TerrainField) generate() {
	n := tf.res + 1
	tf.heights = make([][]float64, n)
	tf.surfaces = make([][]Surface, n)
	for iz := 0; iz < n; iz++ {
		tf.heights[iz] = make([]float64, n)
		tf.surfaces[iz] = make([]Surface, n)
		for ix := 0; ix < n; ix++ {
			x := -tf.width/2 + float64(ix)/float64(tf.res)*tf.width
			z := -tf.depth/2 + float64(iz)/float64(tf.res)*tf.depth
			h, s := tf.classify(x, z)
			tf.heights[iz][ix] = fix(h)
			tf.surfaces[iz][ix] = s
		}
	}
}

// classify assigns one surface and a height to a world point, by priority:
// bunker > green > tee box > near-fairway-path > rough.
func (tf *TerrainField) classify(x, z float64) (float64, Surface) {
	p := NewVec2(x, z)
	cfg := tf.cfg

	for _, b := range cfg.Bunkers {
		d := p.DistanceTo(b.Center)
		if d <= b.Radius {
			// Sand sits in a smoothed depression below the surrounding lie.
			sink := bunkerDepth * smoothstep(1-d/b.Radius)
			return tf.roughHeight(x, z) - sink, SurfaceBunker
		}
	}

	dGreen := p.DistanceTo(cfg.GreenCenter)
	if dGreen <= cfg.GreenRadius {
		h := cfg.GreenElevation +
			greenUndulation*math.Sin(x*0.7)*math.Cos(z*0.6)
		return h, SurfaceGreen
	}

	if math.Abs(x-cfg.Tee.X) <= teeBoxHalfSize && math.Abs(z-cfg.Tee.Z) <= teeBoxHalfSize {
		return cfg.TeeElevation, SurfaceTee
	}

	dPath := tf.distanceToFairwayPath(p)
	if dPath <= cfg.FairwayWidth/2 {
		h := fairwayAmplitude * math.Sin(x*0.35) * math.Cos(z*0.3)
		return tf.blendTowardGreen(h, dGreen), SurfaceFairway
	}

	// Rough, with the noise amplitude ramping up over a smoothstep band past
	// the fairway edge so there is no visible seam.
	h := tf.roughHeight(x, z)
	edge := cfg.FairwayWidth / 2
	if dPath < edge+fairwayBlendBand {
		t := smoothstep((dPath - edge) / fairwayBlendBand)
		calm := fairwayAmplitude * math.Sin(x*0.35) * math.Cos(z*0.3)
		h = lerp(calm, h, t)
	}
	return tf.blendTowardGreen(h, dGreen), SurfaceRough
}

// roughHeight is a layered sine/cosine field: organic-looking undulation
// without a noise library.
func (tf *TerrainField) roughHeight(x, z float64) float64 {
	h := roughAmplitude * 0.6 * math.Sin(x*0.21) * math.Cos(z*0.17)
	h += roughAmplitude * 0.3 * math.Sin(x*0.47+1.3) * math.Sin(z*0.41+0.7)
	h += roughAmplitude * 0.1 * math.Cos(x*0.93+z*0.81)
	return h
}

// blendTowardGreen eases surrounding terrain into the green elevation over a
// band outside the green radius.
func (tf *TerrainField) blendTowardGreen(h, dGreen float64) float64 {
	r := tf.cfg.GreenRadius
	if dGreen >= r+greenBlendBand {
		return h
	}
	t := smoothstep((dGreen - r) / greenBlendBand)
	return lerp(tf.cfg.GreenElevation, h, t)
}

// distanceToFairwayPath is the minimum perpendicular distance to the fairway
// polyline, clamped to segment ends.
func (tf *TerrainField) distanceToFairwayPath(p Vec2) float64 {
	best := math.MaxFloat64
	path := tf.cfg.FairwayPath
	for i := 0; i < len(path)-1; i++ {
		if d := distanceToSegment(p, path[i], path[i+1]); d < best {
			best = d
		}
	}
	return best
}

// inBounds reports whether a world point falls inside the generated footprint.
func (tf *TerrainField) inBounds(x, z float64) bool {
	return x >= -tf.width/2 && x <= tf.width/2 && z >= -tf.depth/2 && z <= tf.depth/2
}

// HeightAt returns the bilinearly interpolated terrain height at a world
// point. Out-of-bounds queries return 0 rather than failing; the physics
// loop must never stall on a bad coordinate.
func (tf *TerrainField) HeightAt(x, z float64) float64 {
	if !tf.inBounds(x, z) {
		return 0
	}

	gx := (x + tf.width/2) / tf.width * float64(tf.res)
	gz := (z + tf.depth/2) / tf.depth * float64(tf.res)

	ix := int(math.Floor(gx))
	iz := int(math.Floor(gz))
	if ix >= tf.res {
		ix = tf.res - 1
	}
	if iz >= tf.res {
		iz = tf.res - 1
	}
	fx := gx - float64(ix)
	fz := gz - float64(iz)

	h00 := tf.heights[iz][ix]
	h10 := tf.heights[iz][ix+1]
	h01 := tf.heights[iz+1][ix]
	h11 := tf.heights[iz+1][ix+1]

	h0 := lerp(h00, h10, fx)
	h1 := lerp(h01, h11, fx)
	return fix(lerp(h0, h1, fz))
}

// SurfaceAt returns the nearest-vertex surface classification.
// Out-of-bounds queries resolve to rough.
func (tf *TerrainField) SurfaceAt(x, z float64) Surface {
	if !tf.inBounds(x, z) {
		return SurfaceRough
	}

	gx := (x + tf.width/2) / tf.width * float64(tf.res)
	gz := (z + tf.depth/2) / tf.depth * float64(tf.res)

	ix := int(math.Round(gx))
	iz := int(math.Round(gz))
	if ix > tf.res {
		ix = tf.res
	}
	if iz > tf.res {
		iz = tf.res
	}
	return tf.surfaces[iz][ix]
}

// CarveHole depresses the height grid around the cup: full CupDepth inside
// the capture radius, cosine-eased lip out to CupLipRadius. The same grid
// feeds both rendering and physics queries, so they cannot diverge.
func (tf *TerrainField) CarveHole(x, z float64) {
	cup := NewVec2(x, z)
	for iz := 0; iz <= tf.res; iz++ {
		for ix := 0; ix <= tf.res; ix++ {
			wx := -tf.width/2 + float64(ix)/float64(tf.res)*tf.width
			wz := -tf.depth/2 + float64(iz)/float64(tf.res)*tf.depth
			d := cup.DistanceTo(NewVec2(wx, wz))
			switch {
			case d <= CaptureRadius:
				tf.heights[iz][ix] = fix(tf.heights[iz][ix] - CupDepth)
			case d <= CupLipRadius:
				t := (d - CaptureRadius) / (CupLipRadius - CaptureRadius)
				ease := 0.5 * (1 + math.Cos(math.Pi*(1-t)))
				tf.heights[iz][ix] = fix(tf.heights[iz][ix] - CupDepth*(1-ease))
			}
		}
	}
}

// Config returns the layout the field was generated from.
func (tf *TerrainField) Config() HoleConfig {
	return tf.cfg
}
