package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pittman021/golf-game/internal/game"
)

// Terrain point queries are served from a shared cache: the course is fixed
// data, so each hole's field is generated once per process.
var (
	terrainMu    sync.Mutex
	terrainCache = make(map[int]*game.TerrainField)

	sharedShots = game.NewShotModel()
)

func terrainForHole(number int) (*game.TerrainField, error) {
	terrainMu.Lock()
	defer terrainMu.Unlock()

	if tf, ok := terrainCache[number]; ok {
		return tf, nil
	}

	cfg, err := game.HoleByNumber(number)
	if err != nil {
		return nil, err
	}
	tf, err := game.NewTerrainField(cfg)
	if err != nil {
		return nil, err
	}
	tf.CarveHole(cfg.GreenCenter.X, cfg.GreenCenter.Z)
	terrainCache[number] = tf
	return tf, nil
}

// GetCourse returns the course layout summary
func GetCourse() gin.HandlerFunc {
	return func(c *gin.Context) {
		holes := game.NineHoleCourse()

		summaries := make([]gin.H, 0, len(holes))
		for _, h := range holes {
			summaries = append(summaries, gin.H{
				"number":       h.Number,
				"par":          h.Par,
				"width":        h.Width,
				"depth":        h.Depth,
				"tee":          h.Tee,
				"green_center": h.GreenCenter,
				"green_radius": h.GreenRadius,
				"bunkers":      h.Bunkers,
				"trees":        h.Trees,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"holes": summaries,
			"par":   game.CoursePar(),
		})
	}
}

// GetHole returns the full layout of one hole
func GetHole() gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hole number"})
			return
		}

		cfg, err := game.HoleByNumber(number)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"hole": cfg})
	}
}

// GetHolePoint answers a terrain point query: height and surface at (x, z)
func GetHolePoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		number, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hole number"})
			return
		}
		x, errX := strconv.ParseFloat(c.Query("x"), 64)
		z, errZ := strconv.ParseFloat(c.Query("z"), 64)
		if errX != nil || errZ != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "x and z query parameters required"})
			return
		}

		tf, err := terrainForHole(number)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"x":       x,
			"z":       z,
			"height":  tf.HeightAt(x, z),
			"surface": tf.SurfaceAt(x, z),
		})
	}
}

// GetClubs returns the club specs with their calibrated max carries
func GetClubs() gin.HandlerFunc {
	return func(c *gin.Context) {
		clubs := make([]gin.H, 0, len(game.AllClubs))
		for _, club := range game.AllClubs {
			spec := club.Spec()
			clubs = append(clubs, gin.H{
				"club":             club,
				"launch_angle_deg": spec.LaunchAngleDeg,
				"power_multiplier": spec.PowerMultiplier,
				"max_distance":     sharedShots.MaxDistance(club),
			})
		}
		c.JSON(http.StatusOK, gin.H{"clubs": clubs})
	}
}
