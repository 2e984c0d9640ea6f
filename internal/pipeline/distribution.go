package pipeline

import (
	"math"
	"sort"

	"adoption-eda/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultHistogramBins matches the bin count of the dashboard histograms.
const DefaultHistogramBins = 30

// MaxHistogramBins bounds the bin count a caller may request.
const MaxHistogramBins = 500

// NumericColumn extracts the present values of a numeric column, in view order.
// Missing cells are skipped.
func NumericColumn(view model.FilteredView, column string) ([]float64, error) {
	if !isNumeric(column) {
		return nil, unknownColumn(column)
	}
	values := make([]float64, 0, len(view.Records))
	for _, rec := range view.Records {
		if v, _ := numericValue(rec, column); !model.Missing(v) {
			values = append(values, v)
		}
	}
	return values, nil
}

// BuildHistogram splits values into equal-width bins spanning [min, max]. A sample with a
// single distinct value gets one bin. Missing values are ignored and bins is clamped to
// MaxHistogramBins. The marginal box of the same values is attached.
func BuildHistogram(column string, values []float64, bins int) model.Histogram {
	h := model.Histogram{Column: column, Bins: []model.HistogramBin{}}
	sorted := sortedCopy(values)
	if len(sorted) == 0 {
		return h
	}
	if bins < 1 {
		bins = DefaultHistogramBins
	}
	bins = min(bins, MaxHistogramBins)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		bins = 1
	}

	dividers := make([]float64, bins+1)
	if bins == 1 {
		dividers[0] = lo
	} else {
		floats.Span(dividers, lo, hi)
	}
	// stat.Histogram bins are half-open, so the top edge is nudged past the maximum.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	for i, c := range counts {
		upper := dividers[i+1]
		if i == len(counts)-1 {
			upper = hi
		}
		h.Bins = append(h.Bins, model.HistogramBin{Lower: dividers[i], Upper: upper, Count: int(c)})
	}
	h.Box = Box(column, sorted)
	return h
}

// Box computes box plot statistics over the present values. Quartiles interpolate
// linearly between order statistics; whiskers reach the most extreme values within
// 1.5 IQR of the box. It returns nil when no value is present.
func Box(group string, values []float64) *model.BoxStats {
	sorted := sortedCopy(values)
	if len(sorted) == 0 {
		return nil
	}

	b := &model.BoxStats{
		Group:  group,
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}

	iqr := b.Q3 - b.Q1
	lowLimit, highLimit := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerFence, b.UpperFence = b.Max, b.Min
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.LowerFence = math.Min(b.LowerFence, v)
		b.UpperFence = math.Max(b.UpperFence, v)
	}
	return b
}

// BoxByCategory computes one box per value of a categorical column, sorted by value.
// Categories whose numeric values are all missing get no box.
func BoxByCategory(view model.FilteredView, category, numeric string) ([]model.BoxStats, error) {
	if !isCategorical(category) {
		return nil, unknownColumn(category)
	}
	if !isNumeric(numeric) {
		return nil, unknownColumn(numeric)
	}

	groups := make(map[string][]float64)
	for _, rec := range view.Records {
		key, _ := categoryValue(rec, category)
		v, _ := numericValue(rec, numeric)
		if model.Missing(v) {
			continue
		}
		groups[key] = append(groups[key], v)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	boxes := make([]model.BoxStats, 0, len(keys))
	for _, k := range keys {
		boxes = append(boxes, *Box(k, groups[k]))
	}
	return boxes, nil
}

// quantile interpolates linearly between the closest ranks of sorted data, the
// definition pandas and numpy use by default.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// sortedCopy returns the present values in ascending order.
func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !model.Missing(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	return sorted
}
