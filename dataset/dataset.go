// Package dataset holds the (feature, target) pairs a degree sweep runs on,
// together with standardisation, seeded splitting and loaders.
package dataset

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/preprocessing"
)

// Dataset is an ordered sequence of scalar (feature, target) pairs.
// A Dataset is immutable once created.
type Dataset struct {
	x []float64
	y []float64
}

// New creates a Dataset from parallel feature and target slices.
// The slices are copied.
func New(x, y []float64) (*Dataset, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, errors.NewModelError("dataset.New", "empty data", errors.ErrEmptyData)
	}
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("dataset.New", len(x), len(y), 0)
	}
	if err := errors.CheckNumericalStability("dataset.New.x", x, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("dataset.New.y", y, 0); err != nil {
		return nil, err
	}

	return &Dataset{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
	}, nil
}

// Len returns the number of pairs.
func (d *Dataset) Len() int {
	return len(d.x)
}

// X returns a copy of the features.
func (d *Dataset) X() []float64 {
	return append([]float64(nil), d.x...)
}

// Y returns a copy of the targets.
func (d *Dataset) Y() []float64 {
	return append([]float64(nil), d.y...)
}

// XMatrix returns the features as an n×1 matrix.
func (d *Dataset) XMatrix() *mat.Dense {
	return mat.NewDense(len(d.x), 1, d.X())
}

// YMatrix returns the targets as an n×1 column vector.
func (d *Dataset) YMatrix() *mat.Dense {
	return mat.NewDense(len(d.y), 1, d.Y())
}

// DistinctX returns the number of distinct feature values.
func (d *Dataset) DistinctX() int {
	seen := make(map[float64]struct{}, len(d.x))
	for _, v := range d.x {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Subset returns the pairs at the given indices, in index order.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	if len(indices) == 0 {
		return nil, errors.NewModelError("Dataset.Subset", "empty index set", errors.ErrEmptyData)
	}
	x := make([]float64, len(indices))
	y := make([]float64, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(d.x) {
			return nil, errors.NewValidationError("indices", "index out of range", idx)
		}
		x[i] = d.x[idx]
		y[i] = d.y[idx]
	}
	return &Dataset{x: x, y: y}, nil
}

// Standardize rescales the features to zero mean and unit population
// standard deviation. Targets are left untouched. The fitted scaler is
// returned so new features can be mapped the same way.
func (d *Dataset) Standardize() (*Dataset, *preprocessing.StandardScaler, error) {
	scaler := preprocessing.NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(d.XMatrix())
	if err != nil {
		return nil, nil, errors.Wrap(err, "Dataset.Standardize")
	}
	return &Dataset{x: mat.Col(nil, 0, scaled), y: d.Y()}, scaler, nil
}

// Fingerprint returns an xxhash digest of the pairs in order.
// Equal datasets share a fingerprint, so it identifies a dataset in logs
// and lets callers check that two splits saw the same data.
func (d *Dataset) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [16]byte
	for i := range d.x {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(d.x[i]))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(d.y[i]))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
