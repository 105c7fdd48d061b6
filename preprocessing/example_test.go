package preprocessing_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polysweep/preprocessing"
)

func ExamplePolynomialFeatures() {
	poly, err := preprocessing.NewPolynomialFeatures(3, true)
	if err != nil {
		panic(err)
	}

	out, err := poly.FitTransform(mat.NewDense(2, 1, []float64{2, -1}))
	if err != nil {
		panic(err)
	}
	fmt.Println(mat.Formatted(out))
	// Output:
	// ⎡ 1   2   4   8⎤
	// ⎣ 1  -1   1  -1⎦
}

func ExampleStandardScaler() {
	scaler := preprocessing.NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(mat.NewDense(3, 1, []float64{1, 2, 3}))
	if err != nil {
		panic(err)
	}
	fmt.Printf("mean=%.1f scaled=[%.4f %.4f %.4f]\n",
		scaler.Mean[0], scaled.At(0, 0), scaled.At(1, 0), scaled.At(2, 0))
	// Output: mean=2.0 scaled=[-1.2247 0.0000 1.2247]
}
