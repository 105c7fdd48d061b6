package sweep

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

// Record is the outcome of one candidate degree.
type Record struct {
	Degree    int
	RMSE      float64 // held-out RMSE, the selection criterion
	TrainRMSE float64
}

// Result holds one Record per candidate degree, in candidate order.
type Result struct {
	Records []Record
}

// Best returns the record with the lowest held-out RMSE.
// On ties the earlier record wins.
func (r *Result) Best() (Record, error) {
	if r == nil || len(r.Records) == 0 {
		return Record{}, errors.NewModelError("Result.Best", "no records", errors.ErrEmptyData)
	}
	best := r.Records[0]
	for _, rec := range r.Records[1:] {
		if rec.RMSE < best.RMSE {
			best = rec
		}
	}
	return best, nil
}

// Parsimonious returns the lowest-degree record whose RMSE is within
// (1+tol) times the best RMSE.
func (r *Result) Parsimonious(tol float64) (Record, error) {
	if !(tol >= 0) {
		return Record{}, errors.NewValidationError("tol", "must be non-negative", tol)
	}
	best, err := r.Best()
	if err != nil {
		return Record{}, err
	}

	limit := (1 + tol) * best.RMSE
	chosen := best
	for _, rec := range r.Records {
		if rec.RMSE <= limit && rec.Degree < chosen.Degree {
			chosen = rec
		}
	}
	return chosen, nil
}

// RMSE returns the held-out RMSE recorded for degree.
func (r *Result) RMSE(degree int) (float64, bool) {
	for _, rec := range r.Records {
		if rec.Degree == degree {
			return rec.RMSE, true
		}
	}
	return 0, false
}

// Degrees returns the evaluated degrees in candidate order.
func (r *Result) Degrees() []int {
	degrees := make([]int, len(r.Records))
	for i, rec := range r.Records {
		degrees[i] = rec.Degree
	}
	return degrees
}

// String renders the records as an aligned table.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s  %12s  %12s\n", "degree", "test_rmse", "train_rmse")
	for _, rec := range r.Records {
		fmt.Fprintf(&b, "%-6d  %12.6f  %12.6f\n", rec.Degree, rec.RMSE, rec.TrainRMSE)
	}
	return b.String()
}
