package pipeline

import (
	"testing"

	"adoption-eda/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctValues(t *testing.T) {
	ds := exampleDataset()

	assert.Equal(t, []int{2021, 2022}, DistinctYears(ds))

	tests := []struct {
		column string
		want   []string
	}{
		{model.ColumnYear, []string{"2021", "2022"}},
		{model.ColumnCountry, []string{"FR", "US"}},
		{model.ColumnAgeGroup, []string{"18-24", "25-34"}},
		{model.ColumnAITool, []string{"ChatGPT", "Copilot"}},
		{model.ColumnIndustry, []string{"Finance", "Tech"}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := DistinctValues(ds, tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DistinctValues(ds, "revenue")
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestDistinctYearsNumericOrder(t *testing.T) {
	ds := model.Dataset{Records: []model.Record{{Year: 2100}, {Year: 999}, {Year: 2023}, {Year: 999}}}
	assert.Equal(t, []int{999, 2023, 2100}, DistinctYears(ds))

	values, err := DistinctValues(ds, model.ColumnYear)
	require.NoError(t, err)
	assert.Equal(t, []string{"999", "2023", "2100"}, values)
}

func TestApplyFiltersExample(t *testing.T) {
	ds := exampleDataset()
	view := ApplyFilters(ds, model.Selection{
		Years:     []int{2021},
		Countries: []string{"US"},
		AgeGroups: []string{"18-24"},
	})

	require.Equal(t, 2, view.Len())
	assert.Equal(t, ds.Records[:2], view.Records)

	trend := GroupMeanByYearAndTool(view)
	require.Len(t, trend, 1)
	assert.Equal(t, 2021, trend[0].Year)
	assert.Equal(t, "Copilot", trend[0].Tool)
	assert.InDelta(t, 0.5, trend[0].MeanAdoptionRate, 1e-12)
	assert.Equal(t, 2, trend[0].RecordCount)
}

func TestApplyFiltersAbsentValue(t *testing.T) {
	ds := exampleDataset()
	sel := DefaultSelection(ds)
	sel.Countries = []string{"DE"}

	view := ApplyFilters(ds, sel)
	assert.True(t, view.IsEmpty())
	assert.NotNil(t, view.Records)

	counts, err := CountByCategory(view, model.ColumnAITool)
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.Empty(t, GroupMeanByYearAndTool(view))

	matrix, err := CorrelationMatrix(view, model.NumericColumns)
	require.NoError(t, err)
	for i := range matrix.Columns {
		for j := range matrix.Columns {
			assert.False(t, matrix.Defined[i][j])
		}
	}
}

func TestApplyFiltersFullSelectionReturnsDataset(t *testing.T) {
	for _, ds := range []model.Dataset{exampleDataset(), wideDataset()} {
		view := ApplyFilters(ds, DefaultSelection(ds))
		assert.Equal(t, ds.Records, view.Records, ds.Source)
	}
}

func TestApplyFiltersEmptySet(t *testing.T) {
	ds := wideDataset()
	full := DefaultSelection(ds)

	tests := []struct {
		name string
		edit func(*model.Selection)
	}{
		{"no years", func(s *model.Selection) { s.Years = []int{} }},
		{"no countries", func(s *model.Selection) { s.Countries = nil }},
		{"no age groups", func(s *model.Selection) { s.AgeGroups = []string{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := full
			tt.edit(&sel)
			assert.True(t, ApplyFilters(ds, sel).IsEmpty())
		})
	}
}

func TestApplyFiltersSoundAndComplete(t *testing.T) {
	ds := wideDataset()
	before := append([]model.Record(nil), ds.Records...)

	selections := []model.Selection{
		{Years: []int{2022}, Countries: []string{"US", "IN"}, AgeGroups: []string{"18-24"}},
		{Years: []int{2023, 2024, 1999}, Countries: []string{"DE"}, AgeGroups: []string{"25-34", "35-44"}},
		{Years: []int{2024}, Countries: []string{"XX"}, AgeGroups: []string{"18-24"}},
	}
	for _, sel := range selections {
		view := ApplyFilters(ds, sel)

		var want []model.Record
		for _, rec := range ds.Records {
			if containsInt(sel.Years, rec.Year) && containsString(sel.Countries, rec.Country) && containsString(sel.AgeGroups, rec.AgeGroup) {
				want = append(want, rec)
			}
		}
		if want == nil {
			want = []model.Record{}
		}
		assert.Equal(t, want, view.Records)
	}
	assert.Equal(t, before, ds.Records, "dataset must not be modified")
}

func TestResolveSelection(t *testing.T) {
	ds := exampleDataset()

	sel := ResolveSelection(ds, model.SelectionRequest{})
	assert.Equal(t, DefaultSelection(ds), sel)

	sel = ResolveSelection(ds, model.SelectionRequest{
		Years:     intsPtr(2022),
		Countries: stringsPtr(),
	})
	assert.Equal(t, []int{2022}, sel.Years)
	assert.Empty(t, sel.Countries)
	assert.Equal(t, []string{"18-24", "25-34"}, sel.AgeGroups)
	assert.True(t, ApplyFilters(ds, sel).IsEmpty())
}

func TestOptions(t *testing.T) {
	opts := Options(wideDataset())
	assert.Equal(t, []int{2022, 2023, 2024}, opts.Years)
	assert.Equal(t, []string{"DE", "IN", "US"}, opts.Countries)
	assert.Equal(t, []string{"18-24", "25-34", "35-44"}, opts.AgeGroups)
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
