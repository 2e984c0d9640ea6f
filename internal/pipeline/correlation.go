package pipeline

import (
	"math"

	"adoption-eda/internal/model"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Pearson returns the Pearson correlation of x and y. It fails with ErrInsufficientData
// on fewer than two pairs or when either side has zero variance.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN(), ErrInsufficientData
	}
	if !hasVariance(x) || !hasVariance(y) {
		return math.NaN(), ErrInsufficientData
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return r, ErrInsufficientData
	}
	return math.Max(-1, math.Min(1, r)), nil
}

func hasVariance(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return true
		}
	}
	return false
}

// CorrelationMatrix computes pairwise Pearson coefficients between numeric columns, each
// pair over the records where both values are present. Cells that cannot be computed are
// NaN and flagged undefined; only an unknown column is an error.
func CorrelationMatrix(view model.FilteredView, columns []string) (model.CorrelationMatrix, error) {
	n := len(columns)
	for _, col := range columns {
		if !isNumeric(col) {
			return model.CorrelationMatrix{}, unknownColumn(col)
		}
	}

	result := model.CorrelationMatrix{
		Columns: append([]string(nil), columns...),
		Values:  make([][]float64, n),
		Defined: make([][]bool, n),
	}
	if n == 0 {
		return result, nil
	}

	sym := mat.NewSymDense(n, nil)
	defined := make([][]bool, n)
	for i := range defined {
		defined[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			x, y := completePairs(view, columns[i], columns[j])
			var r float64
			var err error
			if i == j {
				r, err = selfCorrelation(x)
			} else {
				r, err = Pearson(x, y)
			}
			sym.SetSym(i, j, r)
			defined[i][j] = err == nil
			defined[j][i] = err == nil
		}
	}

	for i := 0; i < n; i++ {
		result.Values[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			result.Values[i][j] = sym.At(i, j)
		}
		result.Defined[i] = defined[i]
	}
	return result, nil
}

// completePairs returns the values of two columns over the records where both are present.
func completePairs(view model.FilteredView, a, b string) ([]float64, []float64) {
	x := make([]float64, 0, len(view.Records))
	y := make([]float64, 0, len(view.Records))
	for _, rec := range view.Records {
		va, _ := numericValue(rec, a)
		vb, _ := numericValue(rec, b)
		if model.Missing(va) || model.Missing(vb) {
			continue
		}
		x = append(x, va)
		y = append(y, vb)
	}
	return x, y
}

func selfCorrelation(x []float64) (float64, error) {
	if len(x) < 2 || !hasVariance(x) {
		return math.NaN(), ErrInsufficientData
	}
	return 1, nil
}
