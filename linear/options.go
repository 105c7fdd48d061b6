package linear

import "github.com/YuminosukeSato/polysweep/pkg/log"

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept.
// Disable it when X already carries a constant column, as polynomial
// features with a bias term do.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithLogger replaces the default component logger
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		if logger != nil {
			lr.logger = logger
		}
	}
}
