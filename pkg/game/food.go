package game

import (
	"golang.org/x/exp/rand"
)

// FoodSpawner places food on a free spot by rejection sampling. Callers must
// leave at least one free spot; a full board never terminates.
type FoodSpawner struct {
	rng *rand.Rand
}

// NewFoodSpawner creates a spawner drawing from a source seeded with seed.
func NewFoodSpawner(seed uint64) *FoodSpawner {
	return &FoodSpawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn draws a uniformly random cell in [0, gridSize) on both axes that no
// segment of body occupies.
func (f *FoodSpawner) Spawn(gridSize int, body *Body) Point {
	for {
		p := Point{X: f.rng.Intn(gridSize), Y: f.rng.Intn(gridSize)}
		if !body.Occupies(p) {
			return p
		}
	}
}

// SpawnSmooth draws a random position at least one cell inside the walls of a
// board centred on the origin, redrawing while it lies within one cell of any
// segment.
func (f *FoodSpawner) SpawnSmooth(gridSize, cellSize float64, body *SmoothBody) Vec {
	half := gridSize/2 - cellSize
	for {
		p := Vec{
			X: (f.rng.Float64()*2 - 1) * half,
			Y: (f.rng.Float64()*2 - 1) * half,
		}
		if !nearAny(p, body.segments, cellSize) {
			return p
		}
	}
}

func nearAny(p Vec, segments []Vec, dist float64) bool {
	for _, s := range segments {
		if p.Dist(s) < dist {
			return true
		}
	}
	return false
}
