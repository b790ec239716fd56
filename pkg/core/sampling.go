package core

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float32
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
	pcg    *rand.PCG // Set only for samplers created by NewSeededSampler
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a PCG stream for the given seed pair
func NewSeededSampler(seed1, seed2 uint64) *RandomSampler {
	pcg := rand.NewPCG(seed1, seed2)
	return &RandomSampler{random: rand.New(pcg), pcg: pcg}
}

// Reseed restarts a seeded sampler on a new PCG stream without allocating.
// It panics for samplers not created by NewSeededSampler.
func (r *RandomSampler) Reseed(seed1, seed2 uint64) {
	if r.pcg == nil {
		panic("core: Reseed called on a sampler without a PCG source")
	}
	r.pcg.Seed(seed1, seed2)
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float32(), r.random.Float32())
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// RandomInUnitSphere returns a point strictly inside the unit ball by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Map [0,1)³ onto the [-1,1)³ cube
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a direction uniformly distributed over the unit sphere surface
func RandomUnitVector(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}

// SampleOnUnitSphere maps a uniform 2D sample to a uniform direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1 - 2*sample.X // z ∈ [-1, 1]
	r := math32.Sqrt(max(0, 1-z*z))
	phi := 2 * math32.Pi * sample.Y
	return NewVec3(r*math32.Cos(phi), r*math32.Sin(phi), z)
}
