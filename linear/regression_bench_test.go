package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createPolynomialData は x ∈ [-3, 3] の多項式計画行列と目的変数を生成する
func createPolynomialData(rows, degree int) (*mat.Dense, *mat.Dense) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, degree+1, nil)
	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		x := rng.Float64()*6.0 - 3.0
		pow := 1.0
		for j := 0; j <= degree; j++ {
			X.Set(i, j, pow)
			pow *= x
		}
		y.Set(i, 0, x*x*x+rng.NormFloat64()*0.5)
	}
	return X, y
}

// BenchmarkLinearRegressionFit はFitメソッドのベンチマークを実行する
func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name   string
		rows   int
		degree int
	}{
		{"Small_20xDeg3", 20, 3},
		{"Small_20xDeg6", 20, 6},
		{"Medium_1000xDeg6", 1000, 6}, // 並列処理の閾値
		{"Large_10000xDeg6", 10000, 6},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createPolynomialData(size.rows, size.degree)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr := NewLinearRegression(WithFitIntercept(false))
				if err := lr.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLinearRegressionPredict は閾値の前後での予測速度を比較する
func BenchmarkLinearRegressionPredict(b *testing.B) {
	sizes := []struct {
		name string
		rows int
	}{
		{"Sequential_500", 500},
		{"Parallel_5000", 5000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createPolynomialData(size.rows, 6)
			lr := NewLinearRegression(WithFitIntercept(false))
			if err := lr.Fit(X, y); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := lr.Predict(X); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
