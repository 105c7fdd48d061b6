// Package sweep fits polynomial regressions of increasing degree and
// ranks them by held-out RMSE.
//
// Each candidate degree d maps the scalar feature x to [x^0, ..., x^d],
// fits ordinary least squares on the training rows and scores the fit on
// the test rows. Comparing the scores shows where extra degrees stop
// reducing bias and start fitting noise.
package sweep

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polysweep/dataset"
	"github.com/YuminosukeSato/polysweep/linear"
	"github.com/YuminosukeSato/polysweep/metrics"
	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/pkg/log"
	"github.com/YuminosukeSato/polysweep/preprocessing"
)

// Evaluate fits one model per candidate degree on train and returns the
// held-out RMSE of each on test. Candidates are validated, and checked
// against the training size, before any model is fitted.
func Evaluate(train, test *dataset.Dataset, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	return evaluate(train, test, cfg.degrees, cfg.logger, log.PhaseTesting)
}

// Run standardises the features of d, splits it and evaluates every
// candidate degree. The scaling statistics come from the whole of d.
func Run(d *dataset.Dataset, splitOpts []dataset.SplitOption, opts ...Option) (*Result, error) {
	if d == nil {
		return nil, errors.NewModelError("sweep.Run", "empty data", errors.ErrEmptyData)
	}
	cfg := newConfig(opts)

	std, _, err := d.Standardize()
	if err != nil {
		return nil, err
	}
	splitOpts = append([]dataset.SplitOption{dataset.WithSplitLogger(cfg.logger)}, splitOpts...)
	train, test, err := dataset.TrainTestSplit(std, splitOpts...)
	if err != nil {
		return nil, err
	}

	cfg.logger.Info("Starting degree sweep",
		log.OperationKey, log.OperationSweep,
		log.FingerprintKey, d.Fingerprint(),
		log.TrainSamplesKey, train.Len(),
		log.TestSamplesKey, test.Len(),
		log.DegreesKey, cfg.degrees,
	)
	return evaluate(train, test, cfg.degrees, cfg.logger, log.PhaseTesting)
}

// evaluate scores held-out rows labelled with phase (testing or validation).
func evaluate(train, test *dataset.Dataset, degrees []int, logger log.Logger, phase string) (*Result, error) {
	if train == nil || test == nil {
		return nil, errors.NewModelError("sweep.Evaluate", "empty data", errors.ErrEmptyData)
	}
	if err := validateDegrees(degrees, train); err != nil {
		fields := []any{
			log.ErrorCodeKey, errorCode(err),
			log.DegreesKey, degrees,
			log.TrainSamplesKey, train.Len(),
		}
		if errors.Is(err, errors.ErrInsufficientSamples) {
			fields = append(fields, log.SuggestionKey, "lower the maximum degree or add training rows with new x values")
		}
		logger.Error("Invalid degree sweep", append([]any{err}, fields...)...)
		return nil, err
	}

	start := time.Now()
	result := &Result{Records: make([]Record, 0, len(degrees))}
	for _, degree := range degrees {
		rec, err := evaluateDegree(train, test, degree, logger, phase)
		if err != nil {
			logger.Error("Degree evaluation failed", err,
				log.DegreeKey, degree,
				log.ErrorCodeKey, errorCode(err),
			)
			return nil, err
		}
		result.Records = append(result.Records, rec)
	}

	best, _ := result.Best()
	logger.Info("Degree sweep completed",
		log.OperationKey, log.OperationSweep,
		log.DegreeKey, best.Degree,
		log.RMSEKey, best.RMSE,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// validateDegrees rejects an empty list, negative or repeated degrees and
// any degree with more coefficients than training rows or distinct
// training feature values. Repeated x values give identical Vandermonde
// rows, so d+1 distinct values are needed for a full-rank design.
func validateDegrees(degrees []int, train *dataset.Dataset) error {
	if len(degrees) == 0 {
		return errors.NewValidationError("degrees", "must not be empty", degrees)
	}
	seen := make(map[int]struct{}, len(degrees))
	for _, d := range degrees {
		if d < 0 {
			return errors.NewValidationError("degrees", "must be non-negative", d)
		}
		if _, dup := seen[d]; dup {
			return errors.NewValidationError("degrees", "duplicate degree", d)
		}
		seen[d] = struct{}{}
	}

	nTrain, distinct := train.Len(), train.DistinctX()
	for _, d := range degrees {
		if nTrain < d+1 {
			return errors.NewInsufficientSamplesError("sweep.Evaluate", d, d+1, nTrain)
		}
		if distinct < d+1 {
			return errors.NewInsufficientDistinctError("sweep.Evaluate", d, d+1, distinct)
		}
	}
	return nil
}

// errorCode maps a sweep failure to a log.Error* code.
func errorCode(err error) string {
	var (
		dimErr *errors.DimensionError
		numErr *errors.NumericalInstabilityError
	)
	switch {
	case errors.Is(err, errors.ErrInsufficientSamples):
		return log.ErrorInsufficientSamples
	case errors.Is(err, errors.ErrSingularMatrix):
		return log.ErrorSingularMatrix
	case errors.Is(err, errors.ErrEmptyData):
		return log.ErrorEmptyData
	case errors.As(err, &dimErr):
		return log.ErrorDimensionMismatch
	case errors.As(err, &numErr):
		return log.ErrorNumericalInstability
	default:
		return ""
	}
}

// evaluateDegree fits and scores a single degree. Panics from the
// numerical routines come back as a PanicError.
func evaluateDegree(train, test *dataset.Dataset, degree int, logger log.Logger, phase string) (rec Record, err error) {
	err = errors.SafeExecute("sweep.evaluateDegree", func() error {
		poly, err := preprocessing.NewPolynomialFeatures(degree, true)
		if err != nil {
			return err
		}
		XTrain, err := poly.FitTransform(train.XMatrix())
		if err != nil {
			return err
		}

		// x^0 is already a column, so no separate intercept
		lr := linear.NewLinearRegression(
			linear.WithFitIntercept(false),
			linear.WithLogger(logger.With(log.DegreeKey, degree)),
		)
		yTrain := train.YMatrix()
		if err := lr.Fit(XTrain, yTrain); err != nil {
			return err
		}

		trainPred, err := lr.Predict(XTrain)
		if err != nil {
			return err
		}
		trainRMSE, err := metrics.RMSEMatrix(yTrain, trainPred)
		if err != nil {
			return err
		}
		// the bias column makes every degree nest the intercept-only fit,
		// so a larger training error means the solve broke down
		if _, baseline := stat.PopMeanStdDev(train.Y(), nil); trainRMSE > baseline*(1+1e-6)+1e-12 {
			return errors.NewNumericalInstabilityError("sweep.trainRMSE", []float64{trainRMSE, baseline}, degree)
		}

		XTest, err := poly.Transform(test.XMatrix())
		if err != nil {
			return err
		}
		testPred, err := lr.Predict(XTest)
		if err != nil {
			return err
		}
		rmse, err := metrics.RMSEMatrix(test.YMatrix(), testPred)
		if err != nil {
			return err
		}
		if err := errors.CheckScalar("sweep.rmse", rmse, degree); err != nil {
			return err
		}

		rec = Record{Degree: degree, RMSE: rmse, TrainRMSE: trainRMSE}
		logger.Debug("Degree evaluated",
			log.PhaseKey, phase,
			log.DegreeKey, degree,
			log.RMSEKey, rmse,
			log.TrainRMSEKey, trainRMSE,
			log.ConditionKey, lr.Condition(),
		)
		return nil
	})
	if err != nil {
		return Record{}, errors.Wrapf(err, "degree %d", degree)
	}
	return rec, nil
}
