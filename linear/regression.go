// Package linear は正則化なしの最小二乗線形回帰を提供する
package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polysweep/core/model"
	"github.com/YuminosukeSato/polysweep/core/parallel"
	"github.com/YuminosukeSato/polysweep/metrics"
	"github.com/YuminosukeSato/polysweep/pkg/errors"
	"github.com/YuminosukeSato/polysweep/pkg/log"
)

// LinearRegression は線形回帰モデル
//
// 係数はQR分解による最小二乗解として求める。
// 正規方程式 (X^T X)^(-1) X^T y を陽に計算しないため、
// 高次の多項式特徴量でも条件数の悪化が緩やか。
type LinearRegression struct {
	state *model.StateManager

	fitIntercept bool
	logger       log.Logger

	coef      []float64 // 係数（切片を除く）
	intercept float64   // 切片
	condition float64   // 計画行列の条件数
}

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// デフォルトでは切片を学習する。
//
// 使用例:
//
//	lr := linear.NewLinearRegression(linear.WithFitIntercept(false))
//	err := lr.Fit(Xpoly, y)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
		logger: log.GetLoggerWithName("linear").With(
			log.ModelNameKey, "LinearRegression",
		),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
//
// 行数が係数の数に満たない場合は ErrInsufficientSamples を、
// 計画行列が厳密に特異な場合は ErrSingularMatrix を返す。
// 条件数が mat.ConditionTolerance を超える場合は解を採用した上で
// IllConditionedWarning を発行する。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	design := lr.designMatrix(X)
	_, p := design.Dims()
	if r < p {
		// mat.QR は行数 < 列数でpanicするため事前に弾く
		return errors.NewModelError("LinearRegression.Fit",
			fmt.Sprintf("need at least %d rows for %d coefficients, got %d", p, p, r),
			errors.ErrInsufficientSamples)
	}

	var qr mat.QR
	qr.Factorize(design)

	beta := mat.NewDense(p, 1, nil)
	if err := qr.SolveTo(beta, false, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return errors.Wrap(err, "LinearRegression.Fit: least squares solve failed")
		}
		if math.IsInf(float64(cond), 1) {
			lr.logger.Debug("Design matrix is singular",
				log.ErrorCodeKey, log.ErrorSingularMatrix,
				log.SamplesKey, r,
				log.FeaturesKey, c,
			)
			return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
		}
		w := errors.NewIllConditionedWarning("LinearRegression.Fit", float64(cond), -1)
		lr.logger.Warn("Design matrix is ill-conditioned",
			log.ConditionKey, float64(cond),
			log.SamplesKey, r,
			log.FeaturesKey, c,
			log.WarningAttrKey, w,
		)
		errors.Warn(w)
	}

	solution := mat.Col(nil, 0, beta)
	if err := errors.CheckNumericalStability("LinearRegression.Fit", solution, 0); err != nil {
		return err
	}

	lr.intercept = 0
	if lr.fitIntercept {
		lr.intercept = solution[0]
		solution = solution[1:]
	}
	lr.coef = solution
	lr.condition = qr.Cond()
	lr.state.SetFitted(c, r)

	lr.logger.Debug("Model fitted",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ConditionKey, lr.condition,
	)
	return nil
}

// designMatrix は切片を学習する場合に先頭へ1の列を追加する
func (lr *LinearRegression) designMatrix(X mat.Matrix) *mat.Dense {
	if !lr.fitIntercept {
		return mat.DenseCopyOf(X)
	}

	r, c := X.Dims()
	design := mat.NewDense(r, c+1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design.Set(i, 0, 1.0) // 切片項
			for j := 0; j < c; j++ {
				design.Set(i, j+1, X.At(i, j))
			}
		}
	})
	return design
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")

	if err := lr.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if err := lr.state.RequireFeatures("LinearRegression.Predict", c); err != nil {
		return nil, err
	}

	// y = X * coef + intercept
	predictions := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := lr.intercept
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * lr.coef[j]
			}
			predictions.Set(i, 0, pred)
		}
	})

	if err := errors.CheckMatrix("LinearRegression.Predict", predictions, r, 1, 0); err != nil {
		return nil, err
	}

	lr.logger.Debug("Predictions made",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, r,
	)
	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// Coefficients は学習された係数のコピーを返す（切片を除く）
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.coef == nil {
		return nil
	}
	out := make([]float64, len(lr.coef))
	copy(out, lr.coef)
	return out
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Condition は学習時の計画行列の条件数を返す
func (lr *LinearRegression) Condition() float64 {
	return lr.condition
}

// IsFitted はモデルが学習済みかどうかを返す
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams はモデルのパラメータを取得する
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
	}
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_coef=%d)", lr.fitIntercept, len(lr.coef))
}

var _ model.Regressor = (*LinearRegression)(nil)
