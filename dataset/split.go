package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/pkg/log"
)

const (
	// DefaultTestSize is the fraction of pairs held out for testing.
	DefaultTestSize = 0.5

	// DefaultSeed drives the split shuffle when no seed is given.
	DefaultSeed = 42
)

type splitConfig struct {
	testSize float64
	seed     int64
	shuffle  bool
	logger   log.Logger
}

// SplitOption configures TrainTestSplit.
type SplitOption func(*splitConfig)

// WithTestSize sets the held-out fraction, in (0, 1).
func WithTestSize(size float64) SplitOption {
	return func(c *splitConfig) {
		c.testSize = size
	}
}

// WithSeed sets the shuffle seed.
func WithSeed(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.seed = seed
	}
}

// WithShuffle turns the shuffle on or off. Without a shuffle the first
// pairs form the test set.
func WithShuffle(shuffle bool) SplitOption {
	return func(c *splitConfig) {
		c.shuffle = shuffle
	}
}

// WithSplitLogger replaces the default component logger.
func WithSplitLogger(logger log.Logger) SplitOption {
	return func(c *splitConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// TrainTestSplit partitions d into disjoint train and test sets that
// together cover d. The test set holds round(n*testSize) pairs, clamped so
// that neither side is empty. The same seed and dataset always produce the
// same partition.
func TrainTestSplit(d *Dataset, opts ...SplitOption) (train, test *Dataset, err error) {
	cfg := splitConfig{
		testSize: DefaultTestSize,
		seed:     DefaultSeed,
		shuffle:  true,
		logger:   log.GetLoggerWithName("dataset"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if d == nil || d.Len() == 0 {
		return nil, nil, errors.NewModelError("dataset.TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if !(cfg.testSize > 0 && cfg.testSize < 1) {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", cfg.testSize)
	}
	n := d.Len()
	if n < 2 {
		return nil, nil, errors.NewValueError("dataset.TrainTestSplit", "need at least 2 samples to split")
	}

	nTest := int(math.Round(float64(n) * cfg.testSize))
	nTest = max(1, min(nTest, n-1))

	indices := permutation(n, cfg.shuffle, cfg.seed)
	test, err = d.Subset(indices[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err = d.Subset(indices[nTest:])
	if err != nil {
		return nil, nil, err
	}

	cfg.logger.Debug("Dataset split",
		log.OperationKey, log.OperationSplit,
		log.SamplesKey, n,
		log.TrainSamplesKey, train.Len(),
		log.TestSamplesKey, test.Len(),
		log.RandomSeedKey, cfg.seed,
	)
	return train, test, nil
}

// permutation returns 0..n-1, shuffled with a PCG source when shuffle is set.
func permutation(n int, shuffle bool, seed int64) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if shuffle {
		r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}
	return indices
}
