package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting states uniformly from a box given by
// one interval per feature. Intervals with Min == Max always produce
// the same feature value.
type UniformStarter struct {
	bounds []r1.Interval
	seed   uint64
	rand   *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter over bounds whose
// random source is seeded with seed
func NewUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	u := &UniformStarter{bounds: bounds}
	u.Seed(seed)
	return u
}

// Seed reseeds the random source of the starter
func (u *UniformStarter) Seed(seed uint64) {
	source := rand.NewSource(seed)
	u.rand = distmv.NewUniform(u.bounds, source)
	u.seed = seed
}

// Start returns a starting state vector
func (u *UniformStarter) Start() *mat.VecDense {
	return mat.NewVecDense(len(u.bounds), u.rand.Rand(nil))
}
