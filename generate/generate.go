// Package generate produces stable, random-looking entity layouts (particle
// fields, node graphs, star fields) from a fixed recipe. The same count and
// recipe always yield the same entities, so a composition can be
// re-instantiated or evaluated from any frame without drift.
//
// Generated entities hold base geometry only; where an entity is drawn on a
// given frame is computed by the composer from the entity and the frame.
package generate

import (
	"math"
	"math/rand"
)

// Entity is one generated particle, node or star.
type Entity struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Phase  float64 `json:"phase"`
	Size   float64 `json:"size"`
	Layer  int     `json:"layer"`
	Value  float64 `json:"value"`
}

// A Recipe maps the indices [0, count) to entities.
type Recipe interface {
	Entities(count int) []Entity
}

// IndexRecipe derives every entity from its index alone.
type IndexRecipe func(i int) Entity

// Entities implements Recipe.
func (r IndexRecipe) Entities(count int) []Entity {
	out := make([]Entity, 0, count)
	for i := 0; i < count; i++ {
		e := r(i)
		e.Index = i
		out = append(out, e)
	}
	return out
}

// SeededRecipe draws entities from a pseudo-random source seeded once per
// call with Seed, in index order. The result is frozen for a given seed and
// count; nothing is drawn per frame.
type SeededRecipe struct {
	Seed int64
	Draw func(r *rand.Rand, i int) Entity
}

// Entities implements Recipe.
func (r SeededRecipe) Entities(count int) []Entity {
	src := rand.New(rand.NewSource(r.Seed))
	out := make([]Entity, 0, count)
	for i := 0; i < count; i++ {
		e := r.Draw(src, i)
		e.Index = i
		out = append(out, e)
	}
	return out
}

// Generate runs recipe for count entities. A negative count yields none.
func Generate(count int, recipe Recipe) []Entity {
	if count <= 0 {
		return []Entity{}
	}
	return recipe.Entities(count)
}

// Hash01 is a stateless splitmix64 hash of (seed, i, salt) mapped to [0, 1).
func Hash01(seed int64, i int, salt uint64) float64 {
	z := uint64(seed) + uint64(i)*0x9e3779b97f4a7c15 + salt*0xbf58476d1ce4e5b9
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}

// Fraction returns (i*mul mod m)/m, the modular stride the layouts use to
// scatter values without a random source.
func Fraction(i, mul, m int) float64 {
	return float64(((i*mul)%m+m)%m) / float64(m)
}

// Ring returns the evenly spaced angle of index i out of count.
func Ring(i, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(i) / float64(count) * 2 * math.Pi
}
