package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polysweep/core/model"
	"github.com/YuminosukeSato/polysweep/core/parallel"
	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

// PolynomialFeatures は1次元の入力xを [x^0, x^1, ..., x^d] に展開する
//
// IncludeBiasがfalseの場合は x^0 の列を省き [x^1, ..., x^d] を返す。
// 単一のスカラー特徴量のみを対象とする。
type PolynomialFeatures struct {
	state *model.StateManager

	// Degree は展開する最大次数
	Degree int

	// IncludeBias は定数列 x^0 を含めるかどうか (デフォルト: true)
	IncludeBias bool
}

// NewPolynomialFeatures は指定次数のPolynomialFeaturesを作成する
//
// 使用例:
//
//	poly, err := preprocessing.NewPolynomialFeatures(3, true)
//	Xpoly, err := poly.FitTransform(X) // n×1 → n×4
func NewPolynomialFeatures(degree int, includeBias bool) (*PolynomialFeatures, error) {
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if degree == 0 && !includeBias {
		return nil, errors.NewValidationError("include_bias", "degree 0 without bias produces no features", includeBias)
	}
	return &PolynomialFeatures{
		state:       model.NewStateManager(),
		Degree:      degree,
		IncludeBias: includeBias,
	}, nil
}

// NOutputFeatures は変換後の列数を返す
func (p *PolynomialFeatures) NOutputFeatures() int {
	if p.IncludeBias {
		return p.Degree + 1
	}
	return p.Degree
}

// Fit は入力が単一列であることを検証し、変換器を学習済みにする
func (p *PolynomialFeatures) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "PolynomialFeatures.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PolynomialFeatures.Fit", "empty data", errors.ErrEmptyData)
	}
	if c != 1 {
		return errors.NewDimensionError("PolynomialFeatures.Fit", 1, c, 1)
	}

	p.state.SetFitted(c, r)
	return nil
}

// Transform は各行のxをべき乗の列に展開する
func (p *PolynomialFeatures) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "PolynomialFeatures.Transform")

	if err := p.state.RequireFitted("PolynomialFeatures", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if err := p.state.RequireFeatures("PolynomialFeatures.Transform", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewModelError("PolynomialFeatures.Transform", "empty data", errors.ErrEmptyData)
	}

	first := 1
	if p.IncludeBias {
		first = 0
	}
	out := mat.NewDense(r, p.NOutputFeatures(), nil)

	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			x := X.At(i, 0)
			pow := 1.0
			for k := 0; k <= p.Degree; k++ {
				if k >= first {
					out.Set(i, k-first, pow)
				}
				pow *= x
			}
		}
	})

	return out, nil
}

// FitTransform はFitとTransformを同時に実行する
func (p *PolynomialFeatures) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// IsFitted は変換器が学習済みかどうかを返す
func (p *PolynomialFeatures) IsFitted() bool {
	return p.state.IsFitted()
}

// String は変換器の文字列表現を返す
func (p *PolynomialFeatures) String() string {
	return fmt.Sprintf("PolynomialFeatures(degree=%d, include_bias=%t)", p.Degree, p.IncludeBias)
}

var _ model.Transformer = (*PolynomialFeatures)(nil)
