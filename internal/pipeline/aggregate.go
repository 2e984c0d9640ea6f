package pipeline

import (
	"math"
	"sort"

	"adoption-eda/internal/model"
)

// CountByCategory tallies the values of a categorical column over the view.
func CountByCategory(view model.FilteredView, column string) (map[string]int, error) {
	if !isCategorical(column) {
		return nil, unknownColumn(column)
	}
	counts := make(map[string]int)
	for _, rec := range view.Records {
		v, _ := categoryValue(rec, column)
		counts[v]++
	}
	return counts, nil
}

// SortedCounts orders a tally by count descending, then value ascending.
func SortedCounts(counts map[string]int) []model.CategoryCount {
	out := make([]model.CategoryCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, model.CategoryCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

type trendKey struct {
	year int
	tool string
}

type trendAccumulator struct {
	sum     float64
	present int
	count   int
}

// GroupMeanByYearAndTool averages adoption_rate per (year, ai_tool) pair present in the
// view, ordered by year then tool. Pairs without records are absent. Missing rates are
// left out of the mean but still counted in RecordCount.
func GroupMeanByYearAndTool(view model.FilteredView) []model.TrendPoint {
	groups := make(map[trendKey]*trendAccumulator)
	for _, rec := range view.Records {
		key := trendKey{year: rec.Year, tool: rec.AITool}
		acc, ok := groups[key]
		if !ok {
			acc = &trendAccumulator{}
			groups[key] = acc
		}
		acc.count++
		if !model.Missing(rec.AdoptionRate) {
			acc.sum += rec.AdoptionRate
			acc.present++
		}
	}

	points := make([]model.TrendPoint, 0, len(groups))
	for key, acc := range groups {
		mean := math.NaN()
		if acc.present > 0 {
			mean = acc.sum / float64(acc.present)
		}
		points = append(points, model.TrendPoint{
			Year:             key.year,
			Tool:             key.tool,
			MeanAdoptionRate: mean,
			RecordCount:      acc.count,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Tool < points[j].Tool
	})
	return points
}
