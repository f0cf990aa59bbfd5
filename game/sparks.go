package game

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tumble/camera"
	"github.com/pthm-cable/tumble/geom"
)

// Spark components. Sparks are pure decoration emitted on hard impacts; they
// never collide with the level.
type (
	// SparkPos is a spark's world position.
	SparkPos struct{ X, Y float64 }
	// SparkVel is a spark's world velocity.
	SparkVel struct{ X, Y float64 }
	// Spark holds lifetime and size.
	Spark struct{ Life, MaxLife, Size float64 }
)

const sparkGravity = 600.0

// sparkSystem manages impact spark entities.
type sparkSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[SparkPos, SparkVel, Spark]
	filter *ecs.Filter3[SparkPos, SparkVel, Spark]
	rng    *rand.Rand

	count int
	max   int
}

func newSparkSystem(max int, rng *rand.Rand) *sparkSystem {
	if max <= 0 {
		max = 256
	}
	w := ecs.NewWorld()
	return &sparkSystem{
		world:  w,
		mapper: ecs.NewMap3[SparkPos, SparkVel, Spark](w),
		filter: ecs.NewFilter3[SparkPos, SparkVel, Spark](w),
		rng:    rng,
		max:    max,
	}
}

// emit spawns a burst of sparks at an impact point. Burst size scales with
// impact strength; the population cap truncates under sustained bouncing.
func (s *sparkSystem) emit(at geom.Vec2, impact float64) {
	n := 4 + int(impact/100)
	if n > 12 {
		n = 12
	}
	if s.count+n > s.max {
		n = s.max - s.count
	}

	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := impact * (0.2 + 0.3*s.rng.Float64())
		life := 0.3 + 0.4*s.rng.Float64()

		pos := SparkPos{X: at.X, Y: at.Y}
		vel := SparkVel{
			X: math.Cos(angle) * speed,
			Y: math.Abs(math.Sin(angle)) * speed, // bias up, away from the surface
		}
		spark := Spark{Life: life, MaxLife: life, Size: 2 + 2*s.rng.Float64()}

		s.mapper.NewEntity(&pos, &vel, &spark)
		s.count++
	}
}

// update integrates spark motion and expires dead sparks.
func (s *sparkSystem) update(dt float64) {
	var dead []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, vel, spark := query.Get()

		spark.Life -= dt
		if spark.Life <= 0 {
			dead = append(dead, query.Entity())
			continue
		}

		vel.Y -= sparkGravity * dt
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}

	// Removal must wait until iteration completes.
	for _, e := range dead {
		s.mapper.Remove(e)
		s.count--
	}
}

// draw renders sparks as fading circles.
func (s *sparkSystem) draw(cam *camera.Camera) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, spark := query.Get()

		ratio := spark.Life / spark.MaxLife
		x, y := cam.WorldToScreen(geom.Vec2{X: pos.X, Y: pos.Y})
		size := cam.ScaleLen(spark.Size * ratio)
		if size < 0.5 {
			size = 0.5
		}

		color := rl.Color{R: 255, G: 200, B: 60, A: uint8(ratio * 220)}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, size, color)
	}
}
