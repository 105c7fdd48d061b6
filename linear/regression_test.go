package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/pkg/log"
)

func TestLinearRegression_ExactFit(t *testing.T) {
	// y = 1 + 2*x1 + 3*x2
	X := mat.NewDense(5, 2, []float64{
		1, 2,
		2, 1,
		3, 5,
		4, 3,
		5, 8,
	})
	y := mat.NewDense(5, 1, nil)
	for i := 0; i < 5; i++ {
		y.Set(i, 0, 1+2*X.At(i, 0)+3*X.At(i, 1))
	}

	lr := NewLinearRegression()
	require.NoError(t, lr.Fit(X, y))
	assert.True(t, lr.IsFitted())

	assert.InDelta(t, 1.0, lr.Intercept(), 1e-9)
	assert.InDeltaSlice(t, []float64{2, 3}, lr.Coefficients(), 1e-9)

	pred, err := lr.Predict(mat.NewDense(1, 2, []float64{10, -1}))
	require.NoError(t, err)
	assert.InDelta(t, 18.0, pred.At(0, 0), 1e-9)

	score, err := lr.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestLinearRegression_PolynomialDesignWithoutIntercept(t *testing.T) {
	xs := []float64{-2, -1, -0.5, 0, 0.5, 1, 2, 3}
	X := mat.NewDense(len(xs), 4, nil)
	y := mat.NewDense(len(xs), 1, nil)
	for i, x := range xs {
		X.SetRow(i, []float64{1, x, x * x, x * x * x})
		y.Set(i, 0, x*x*x)
	}

	lr := NewLinearRegression(WithFitIntercept(false))
	require.NoError(t, lr.Fit(X, y))

	assert.Equal(t, 0.0, lr.Intercept())
	assert.InDeltaSlice(t, []float64{0, 0, 0, 1}, lr.Coefficients(), 1e-9)
	assert.Greater(t, lr.Condition(), 1.0)
}

func TestLinearRegression_ConstantColumnPredictsMean(t *testing.T) {
	yData := []float64{3, -1, 4, 1, 5}
	X := mat.NewDense(5, 1, []float64{1, 1, 1, 1, 1})
	y := mat.NewDense(5, 1, yData)

	lr := NewLinearRegression(WithFitIntercept(false))
	require.NoError(t, lr.Fit(X, y))

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{1, 1}))
	require.NoError(t, err)
	mean := stat.Mean(yData, nil)
	assert.InDelta(t, mean, pred.At(0, 0), 1e-12)
	assert.InDelta(t, mean, pred.At(1, 0), 1e-12)
}

func TestLinearRegression_Errors(t *testing.T) {
	tests := []struct {
		name   string
		X      mat.Matrix
		y      mat.Matrix
		opts   []Option
		target error
		check  func(t *testing.T, err error)
	}{
		{
			name:   "empty data",
			X:      &mat.Dense{},
			y:      &mat.Dense{},
			target: errors.ErrEmptyData,
		},
		{
			name: "row mismatch",
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewDense(2, 1, []float64{1, 2}),
			check: func(t *testing.T, err error) {
				var dimErr *errors.DimensionError
				require.True(t, errors.As(err, &dimErr))
				assert.Equal(t, 0, dimErr.Axis)
			},
		},
		{
			name: "y not a column",
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			check: func(t *testing.T, err error) {
				var valErr *errors.ValueError
				assert.True(t, errors.As(err, &valErr))
			},
		},
		{
			name:   "fewer rows than coefficients",
			X:      mat.NewDense(2, 3, []float64{1, 1, 1, 1, 2, 4}),
			y:      mat.NewDense(2, 1, []float64{1, 2}),
			opts:   []Option{WithFitIntercept(false)},
			target: errors.ErrInsufficientSamples,
		},
		{
			name:   "intercept counts as a coefficient",
			X:      mat.NewDense(2, 2, []float64{1, 2, 3, 5}),
			y:      mat.NewDense(2, 1, []float64{1, 2}),
			target: errors.ErrInsufficientSamples,
		},
		{
			name:   "zero column is singular",
			X:      mat.NewDense(3, 2, []float64{1, 0, 2, 0, 3, 0}),
			y:      mat.NewDense(3, 1, []float64{1, 2, 3}),
			opts:   []Option{WithFitIntercept(false)},
			target: errors.ErrSingularMatrix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression(tt.opts...)
			err := lr.Fit(tt.X, tt.y)
			require.Error(t, err)
			assert.False(t, lr.IsFitted())
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestLinearRegression_PredictErrors(t *testing.T) {
	lr := NewLinearRegression()

	_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
	var notFitted *errors.NotFittedError
	require.True(t, errors.As(err, &notFitted))
	assert.Equal(t, "LinearRegression", notFitted.ModelName)

	_, err = lr.Score(mat.NewDense(1, 1, []float64{1}), mat.NewDense(1, 1, []float64{1}))
	assert.True(t, errors.As(err, &notFitted))

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})
	require.NoError(t, lr.Fit(X, y))

	_, err = lr.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)
}

func TestLinearRegression_IllConditionedWarning(t *testing.T) {
	var warnings []error
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(w error) {
		warnings = append(warnings, w)
	})
	t.Cleanup(func() {
		errors.SetWarningHandler(func(error) {})
	})

	// 2列目のスケールが極端に小さく、条件数は許容値を大きく超える
	X := mat.NewDense(4, 2, []float64{
		1, 1e-20,
		2, -1e-20,
		3, 2e-20,
		4, 0,
	})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	logger, _ := log.NewTestLogger(log.LevelWarn)
	lr := NewLinearRegression(WithFitIntercept(false), WithLogger(logger.With(log.DegreeKey, 1)))
	require.NoError(t, lr.Fit(X, y))
	assert.Greater(t, lr.Condition(), mat.ConditionTolerance)

	// 注入されたロガーにも次数付きで出力される
	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "Design matrix is ill-conditioned", entries[0]["message"])
	assert.Equal(t, 1.0, entries[0][log.DegreeKey])
	assert.Contains(t, entries[0], log.ConditionKey)
	assert.Contains(t, entries[0][log.WarningAttrKey], "ill-conditioned")

	require.Len(t, warnings, 1)
	var w *errors.IllConditionedWarning
	require.True(t, errors.As(warnings[0], &w))
	assert.Equal(t, "LinearRegression.Fit", w.Op)
	assert.Contains(t, w.Error(), "ill-conditioned")
}

func TestLinearRegression_LogsFit(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	lr := NewLinearRegression(WithLogger(logger))

	require.NoError(t, lr.Fit(
		mat.NewDense(3, 1, []float64{1, 2, 3}),
		mat.NewDense(3, 1, []float64{1, 2, 3}),
	))

	assert.True(t, logger.ContainsMessage("Model fitted"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))

	_, err := lr.Predict(mat.NewDense(2, 1, []float64{4, 5}))
	require.NoError(t, err)
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationPredict))
	assert.True(t, logger.ContainsField(log.PredsKey, 2.0))
}

func TestLinearRegression_String(t *testing.T) {
	lr := NewLinearRegression(WithFitIntercept(false))
	assert.Equal(t, "LinearRegression(fit_intercept=false)", lr.String())
	assert.Equal(t, map[string]interface{}{"fit_intercept": false}, lr.GetParams())
	assert.Nil(t, lr.Coefficients())

	require.NoError(t, lr.Fit(
		mat.NewDense(3, 2, []float64{1, 0, 1, 1, 1, 2}),
		mat.NewDense(3, 1, []float64{1, 3, 5}),
	))
	assert.Equal(t, "LinearRegression(fit_intercept=false, n_coef=2)", lr.String())
}
