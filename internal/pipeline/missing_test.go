package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"adoption-eda/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithMissing(t *testing.T) model.Dataset {
	t.Helper()
	records, err := ParseCSV(context.Background(), strings.NewReader(csvWithMissing))
	require.NoError(t, err)
	return model.Dataset{Source: "missing", Records: records}
}

func TestParseCSVMissingNumericCells(t *testing.T) {
	ds := loadWithMissing(t)
	require.Equal(t, 6, ds.Len())

	tests := []struct {
		row      int
		adoption bool
		users    bool
	}{
		{0, true, true},
		{1, false, true},
		{2, true, false},
		{3, false, true},
		{4, true, false},
		{5, false, true},
	}
	for _, tt := range tests {
		rec := ds.Records[tt.row]
		assert.Equal(t, tt.adoption, !math.IsNaN(rec.AdoptionRate), "row %d adoption_rate", tt.row)
		assert.Equal(t, tt.users, !math.IsNaN(rec.DailyActiveUsers), "row %d daily_active_users", tt.row)
	}

	_, err := ParseCSV(context.Background(), strings.NewReader(strings.Replace(csvWithMissing, "NaN", "lots", 1)))
	assert.Error(t, err)
}

func TestNumericColumnSkipsMissing(t *testing.T) {
	view := model.FilteredView{Records: loadWithMissing(t).Records}

	rates, err := NumericColumn(view, model.ColumnAdoptionRate)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.8, 0.5}, rates)

	users, err := NumericColumn(view, model.ColumnDailyActiveUsers)
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 80, 200, 150}, users)
}

func TestBuildHistogramIgnoresNonFinite(t *testing.T) {
	h := BuildHistogram("x", []float64{math.NaN(), 1, math.Inf(1), 2, math.Inf(-1), 3}, 4)
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 1.0, h.Bins[0].Lower)
	assert.Equal(t, 3.0, h.Bins[len(h.Bins)-1].Upper)
	require.NotNil(t, h.Box)
	assert.Equal(t, 3, h.Box.Count)

	only := BuildHistogram("x", []float64{math.NaN()}, 4)
	assert.Empty(t, only.Bins)
	assert.Nil(t, Box("g", []float64{math.NaN()}))
}

func TestBuildHistogramClampsBins(t *testing.T) {
	h := BuildHistogram("x", []float64{0, 1}, 2000000000)
	assert.Len(t, h.Bins, MaxHistogramBins)
}

func TestBoxByCategorySkipsMissing(t *testing.T) {
	view := model.FilteredView{Records: loadWithMissing(t).Records}

	boxes, err := BoxByCategory(view, model.ColumnIndustry, model.ColumnAdoptionRate)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "Tech", boxes[0].Group)
	assert.Equal(t, 3, boxes[0].Count)
}

func TestCorrelationUsesCompletePairs(t *testing.T) {
	records := []model.Record{
		{AdoptionRate: 1, DailyActiveUsers: 10},
		{AdoptionRate: 2, DailyActiveUsers: 20},
		{AdoptionRate: math.NaN(), DailyActiveUsers: 5},
		{AdoptionRate: 3, DailyActiveUsers: math.NaN()},
		{AdoptionRate: 4, DailyActiveUsers: 40},
	}
	m, err := CorrelationMatrix(model.FilteredView{Records: records}, model.NumericColumns)
	require.NoError(t, err)
	require.True(t, m.Defined[0][1])
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
	assert.Equal(t, 1.0, m.Values[0][0])
}

func TestGroupMeanSkipsMissing(t *testing.T) {
	records := []model.Record{
		{Year: 2021, AITool: "Copilot", AdoptionRate: 0.4},
		{Year: 2021, AITool: "Copilot", AdoptionRate: math.NaN()},
		{Year: 2022, AITool: "Copilot", AdoptionRate: math.NaN()},
	}
	points := GroupMeanByYearAndTool(model.FilteredView{Records: records})
	require.Len(t, points, 2)
	assert.Equal(t, 0.4, points[0].MeanAdoptionRate)
	assert.Equal(t, 2, points[0].RecordCount)
	assert.True(t, math.IsNaN(points[1].MeanAdoptionRate))
	assert.Equal(t, 1, points[1].RecordCount)

	raw, err := json.Marshal(points[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2022,"ai_tool":"Copilot","mean_adoption_rate":null,"record_count":1}`, string(raw))

	chart := TrendChart(model.FilteredView{Records: records})
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []model.ChartPoint{{Label: "2021", Value: 0.4}}, chart.Series[0].Data)
}

func TestBuildDashboardWithMissingValues(t *testing.T) {
	ds := loadWithMissing(t)

	var dash model.Dashboard
	require.NotPanics(t, func() {
		dash = BuildDashboard(ds, DefaultSelection(ds), DashboardOptions{HeadRows: 10, HistogramBins: 30})
	})
	assert.Equal(t, 6, dash.Stats.FilteredRecords)

	hist, ok := dash.Chart(ChartAdoptionHistogram)
	require.True(t, ok)
	require.False(t, hist.Empty)
	assert.Equal(t, 3, hist.Histogram.Box.Count)

	raw, err := json.Marshal(dash)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"adoption_rate":null`)
}

func TestHistogramChartAllMissing(t *testing.T) {
	view := model.FilteredView{Records: []model.Record{{AdoptionRate: math.NaN()}}}
	chart := HistogramChart(ChartAdoptionHistogram, view, model.ColumnAdoptionRate, 30)
	assert.True(t, chart.Empty)
	assert.NotEmpty(t, chart.Description)
}
