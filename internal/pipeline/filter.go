package pipeline

import (
	"sort"
	"strconv"

	"adoption-eda/internal/model"

	mapset "github.com/deckarep/golang-set/v2"
)

// ------------------- Filter Options -------------------

// DistinctYears returns every year in the dataset, ascending.
func DistinctYears(ds model.Dataset) []int {
	set := mapset.NewThreadUnsafeSet[int]()
	for _, rec := range ds.Records {
		set.Add(rec.Year)
	}
	years := set.ToSlice()
	sort.Ints(years)
	return years
}

// DistinctValues returns the sorted distinct values of a column: numeric order for
// year, lexicographic for categorical columns.
func DistinctValues(ds model.Dataset, column string) ([]string, error) {
	if column == model.ColumnYear {
		years := DistinctYears(ds)
		out := make([]string, len(years))
		for i, y := range years {
			out[i] = strconv.Itoa(y)
		}
		return out, nil
	}
	if !isCategorical(column) {
		return nil, unknownColumn(column)
	}

	set := mapset.NewThreadUnsafeSet[string]()
	for _, rec := range ds.Records {
		v, _ := categoryValue(rec, column)
		set.Add(v)
	}
	values := set.ToSlice()
	sort.Strings(values)
	return values, nil
}

// Options returns the values offered by the year, country and age group filters.
func Options(ds model.Dataset) model.FilterOptions {
	countries, _ := DistinctValues(ds, model.ColumnCountry)
	ageGroups, _ := DistinctValues(ds, model.ColumnAgeGroup)
	return model.FilterOptions{
		Years:     DistinctYears(ds),
		Countries: countries,
		AgeGroups: ageGroups,
	}
}

// DefaultSelection selects every observed value of each filter column.
func DefaultSelection(ds model.Dataset) model.Selection {
	opts := Options(ds)
	return model.Selection{
		Years:     opts.Years,
		Countries: opts.Countries,
		AgeGroups: opts.AgeGroups,
	}
}

// ResolveSelection fills each filter the request leaves unset with its default.
func ResolveSelection(ds model.Dataset, req model.SelectionRequest) model.Selection {
	sel := DefaultSelection(ds)
	if req.Years != nil {
		sel.Years = *req.Years
	}
	if req.Countries != nil {
		sel.Countries = *req.Countries
	}
	if req.AgeGroups != nil {
		sel.AgeGroups = *req.AgeGroups
	}
	return sel
}

// ------------------- Filtering -------------------

// ApplyFilters returns the records whose year, country and age group are all selected,
// in dataset order. An empty set in any filter yields an empty view. ds is not modified.
func ApplyFilters(ds model.Dataset, sel model.Selection) model.FilteredView {
	view := model.FilteredView{Records: []model.Record{}}
	if len(sel.Years) == 0 || len(sel.Countries) == 0 || len(sel.AgeGroups) == 0 {
		return view
	}

	years := mapset.NewThreadUnsafeSet(sel.Years...)
	countries := mapset.NewThreadUnsafeSet(sel.Countries...)
	ageGroups := mapset.NewThreadUnsafeSet(sel.AgeGroups...)

	for _, rec := range ds.Records {
		if years.Contains(rec.Year) && countries.Contains(rec.Country) && ageGroups.Contains(rec.AgeGroup) {
			view.Records = append(view.Records, rec)
		}
	}
	return view
}
