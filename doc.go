// Package polysweep fits polynomial regressions of increasing degree to a
// single scalar feature and picks the degree with the lowest held-out RMSE,
// making the bias–variance tradeoff visible on small datasets.
//
// The API follows scikit-learn naming (Fit, Transform, Predict) on top of
// gonum matrices.
//
// # Quick Start
//
// Sweep degrees 0 through 6 over a noisy cubic:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/polysweep/dataset"
//	    "github.com/YuminosukeSato/polysweep/sweep"
//	)
//
//	func main() {
//	    d, err := dataset.MakeCubic(40, 1.0, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // standardise, split 50/50 with a fixed seed, evaluate every degree
//	    res, err := sweep.Run(d, []dataset.SplitOption{dataset.WithSeed(42)})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    best, _ := res.Best()
//	    fmt.Print(res)
//	    fmt.Println("best degree:", best.Degree)
//	}
//
// # Packages
//
//   - dataset: (x, y) pairs, standardisation, seeded train/test split, k-fold, CSV loader
//   - preprocessing: StandardScaler and PolynomialFeatures
//   - linear: least-squares LinearRegression solved by QR factorisation
//   - metrics: MSE, RMSE, MAE, R²
//   - sweep: the degree sweep, best-degree selection and k-fold averaging
//   - core/model: shared interfaces and fitted-state tracking
//   - core/parallel: row-range parallelisation
//   - pkg/errors: structured errors and warnings
//   - pkg/log: zerolog-backed structured logging
//
// # Errors
//
// A sweep fails before fitting anything when a candidate degree has more
// coefficients than there are training rows or distinct feature values:
//
//	_, err := sweep.Evaluate(train, test, sweep.WithDegrees(0, 1, 2, 3))
//	if errors.Is(err, errors.ErrInsufficientSamples) {
//	    // shrink the degree list or collect more data
//	}
//
// An exactly singular design matrix returns errors.ErrSingularMatrix. A
// solvable but ill-conditioned one is fitted and reported through
// errors.Warn as an IllConditionedWarning.
//
// # Performance
//
// Row-wise transforms and predictions run in parallel above 1000 rows and
// sequentially below, so typical sweeps stay on one goroutine.
package polysweep
