package dataset

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

// MakeCubic generates n pairs with x drawn uniformly from [-3, 3] and
// y = x³ + ε, ε ~ N(0, noise²). The same seed yields the same data.
func MakeCubic(n int, noise float64, seed int64) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}
	if noise < 0 {
		return nil, errors.NewValidationError("noise", "must be non-negative", noise)
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = rng.Float64()*6 - 3
		y[i] = x[i]*x[i]*x[i] + rng.NormFloat64()*noise
	}
	return New(x, y)
}
