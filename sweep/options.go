package sweep

import "github.com/YuminosukeSato/polysweep/pkg/log"

// DefaultMaxDegree is the highest degree in the default candidate set.
const DefaultMaxDegree = 6

type config struct {
	degrees []int
	logger  log.Logger
}

// Option is a function that configures a sweep
type Option func(*config)

// WithDegrees sets the ordered candidate degree list.
// Records are reported in the same order.
func WithDegrees(degrees ...int) Option {
	return func(c *config) {
		c.degrees = append([]int(nil), degrees...)
	}
}

// WithLogger replaces the default sweep logger
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// DefaultDegrees returns 0, 1, ..., DefaultMaxDegree.
func DefaultDegrees() []int {
	degrees := make([]int, DefaultMaxDegree+1)
	for i := range degrees {
		degrees[i] = i
	}
	return degrees
}

func newConfig(opts []Option) *config {
	c := &config{
		degrees: DefaultDegrees(),
		logger:  log.GetLoggerWithName("sweep"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
