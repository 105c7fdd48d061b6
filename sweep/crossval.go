package sweep

import (
	"github.com/YuminosukeSato/polysweep/dataset"
	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/pkg/log"
)

// CrossValidate runs the sweep once per fold of kf and averages each
// degree's test and training RMSE across folds. Features are used as
// given, so standardise d first.
func CrossValidate(d *dataset.Dataset, kf *dataset.KFold, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	if kf == nil {
		return nil, errors.NewValidationError("kfold", "must not be nil", kf)
	}

	folds, err := kf.Split(d)
	if err != nil {
		return nil, err
	}

	sum := &Result{Records: make([]Record, len(cfg.degrees))}
	for i, degree := range cfg.degrees {
		sum.Records[i].Degree = degree
	}

	for k, fold := range folds {
		train, err := d.Subset(fold.TrainIndices)
		if err != nil {
			return nil, err
		}
		test, err := d.Subset(fold.TestIndices)
		if err != nil {
			return nil, err
		}

		res, err := evaluate(train, test, cfg.degrees, cfg.logger.With(log.FoldKey, k), log.PhaseValidation)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", k)
		}
		for i, rec := range res.Records {
			sum.Records[i].RMSE += rec.RMSE
			sum.Records[i].TrainRMSE += rec.TrainRMSE
		}
	}

	n := float64(len(folds))
	for i := range sum.Records {
		sum.Records[i].RMSE /= n
		sum.Records[i].TrainRMSE /= n
	}
	return sum, nil
}
