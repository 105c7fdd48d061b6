package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

// ReadCSV reads a header-named numeric table and returns the pairs formed
// by featureCol and targetCol. Other columns are ignored. A row whose
// selected cells do not parse as numbers is an error.
func ReadCSV(r io.Reader, featureCol, targetCol string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("dataset.ReadCSV", "missing header", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadCSV: read header")
	}

	fi, ti := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case featureCol:
			fi = i
		case targetCol:
			ti = i
		}
	}
	if fi < 0 {
		return nil, errors.NewValidationError("feature_col", "column not found in header", featureCol)
	}
	if ti < 0 {
		return nil, errors.NewValidationError("target_col", "column not found in header", targetCol)
	}

	var x, y []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadCSV: line %d", line)
		}

		xv, err := strconv.ParseFloat(strings.TrimSpace(record[fi]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadCSV: line %d column %q", line, featureCol)
		}
		yv, err := strconv.ParseFloat(strings.TrimSpace(record[ti]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset.ReadCSV: line %d column %q", line, targetCol)
		}
		x = append(x, xv)
		y = append(y, yv)
	}

	return New(x, y)
}
