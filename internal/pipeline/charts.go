package pipeline

import (
	"math"
	"sort"
	"strconv"

	"adoption-eda/internal/model"
)

// Chart names, stable across requests so clients can address them.
const (
	ChartAdoptionHistogram  = "adoption_rate_histogram"
	ChartUsersHistogram     = "daily_active_users_histogram"
	ChartCorrelation        = "correlation_heatmap"
	ChartToolShare          = "ai_tool_share"
	ChartIndustryCounts     = "industry_counts"
	ChartAdoptionByIndustry = "adoption_by_industry"
	ChartAdoptionTrend      = "adoption_trend"
	ChartUsersByCompany     = "users_by_company_size"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// chartDescriptions explain how to read each chart.
var chartDescriptions = map[string]string{
	ChartAdoptionHistogram:  "Distribution of adoption rates in the filtered records. Look at where values cluster, how far they spread, whether the shape is skewed or has several peaks, and for isolated outliers.",
	ChartUsersHistogram:     "Distribution of daily active users in the filtered records. Skew and long tails show whether a few deployments account for most of the usage.",
	ChartCorrelation:        "Pearson correlation between the numeric columns, from -1 (opposite movement) through 0 (no linear relation) to +1 (joint movement). Strong values point at related or redundant features.",
	ChartToolShare:          "Share of records per AI tool. Larger slices are the more widely adopted tools.",
	ChartIndustryCounts:     "Number of records per industry. Industries with few records weigh less in every other chart, so read their figures with care.",
	ChartAdoptionByIndustry: "Adoption rate per industry as box plots of median, quartiles and outliers. Wide boxes or long whiskers mean adoption varies a lot inside that industry.",
	ChartAdoptionTrend:      "Mean adoption rate per year, one line per AI tool. Rising, falling or flat lines show how each tool's adoption evolved.",
	ChartUsersByCompany:     "Daily active users per company size as box plots. Compare medians to see whether larger or smaller companies engage more, and spreads to see how uneven usage is.",
}

// histogramColor is the single-series color of the distribution charts.
const histogramColor = "#4682B4"

// DashboardOptions tunes the dashboard builders.
type DashboardOptions struct {
	HeadRows      int
	HistogramBins int
}

// DefaultDashboardOptions mirrors the dashboard's fixed layout.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{HeadRows: 5, HistogramBins: DefaultHistogramBins}
}

// BuildDashboard filters ds with sel and builds every tab. It never fails: an empty
// view produces charts marked Empty.
func BuildDashboard(ds model.Dataset, sel model.Selection, opts DashboardOptions) model.Dashboard {
	view := ApplyFilters(ds, sel)
	return model.Dashboard{
		Selection: sel,
		Overview:  BuildOverview(view, opts.HeadRows),
		Numeric: []model.ChartData{
			HistogramChart(ChartAdoptionHistogram, view, model.ColumnAdoptionRate, opts.HistogramBins),
			HistogramChart(ChartUsersHistogram, view, model.ColumnDailyActiveUsers, opts.HistogramBins),
			CorrelationChart(view),
		},
		Categoricals: []model.ChartData{
			ToolShareChart(view),
			IndustryCountsChart(view),
		},
		Trends: []model.ChartData{
			BoxChart(ChartAdoptionByIndustry, "Adoption Rate by Industry", view, model.ColumnIndustry, model.ColumnAdoptionRate),
			TrendChart(view),
			BoxChart(ChartUsersByCompany, "Daily Active Users by Company Size", view, model.ColumnCompanySize, model.ColumnDailyActiveUsers),
		},
		Stats: model.RunStats{
			Source:          ds.Source,
			SourceRecords:   ds.Len(),
			FilteredRecords: view.Len(),
		},
	}
}

// BuildOverview returns the first head records and the shape of the view.
func BuildOverview(view model.FilteredView, head int) model.Overview {
	if head < 0 {
		head = 0
	}
	if head > view.Len() {
		head = view.Len()
	}
	return model.Overview{
		Head:    append([]model.Record{}, view.Records[:head]...),
		Rows:    view.Len(),
		Columns: len(model.Columns),
	}
}

func emptyChart(name, kind, title string) model.ChartData {
	return model.ChartData{
		Name:        name,
		Kind:        kind,
		Title:       title,
		Description: chartDescriptions[name],
		Series:      []model.ChartSeries{},
		Empty:       true,
	}
}

// HistogramChart is the distribution of a numeric column.
func HistogramChart(name string, view model.FilteredView, column string, bins int) model.ChartData {
	chart := emptyChart(name, model.ChartHistogram, "Distribution of "+column)
	chart.XLabel, chart.YLabel = column, "count"
	if view.IsEmpty() {
		return chart
	}

	values, err := NumericColumn(view, column)
	if err != nil || len(values) == 0 {
		return chart
	}
	hist := BuildHistogram(column, values, bins)
	points := make([]model.ChartPoint, len(hist.Bins))
	for i, b := range hist.Bins {
		points[i] = model.ChartPoint{Label: formatEdge(b.Lower), Value: float64(b.Count)}
	}
	chart.Histogram = &hist
	chart.Series = []model.ChartSeries{{Name: column, Color: histogramColor, Data: points}}
	chart.Empty = false
	return chart
}

// CorrelationChart is the heatmap of the numeric columns.
func CorrelationChart(view model.FilteredView) model.ChartData {
	chart := emptyChart(ChartCorrelation, model.ChartHeatmap, "Correlation Heatmap")
	if view.IsEmpty() {
		return chart
	}
	matrix, err := CorrelationMatrix(view, model.NumericColumns)
	if err != nil {
		return chart
	}
	chart.Correlation = &matrix
	for i, col := range matrix.Columns {
		points := make([]model.ChartPoint, 0, len(matrix.Columns))
		for j, other := range matrix.Columns {
			if matrix.Defined[i][j] {
				points = append(points, model.ChartPoint{Label: other, Value: RoundTo2(matrix.Values[i][j])})
			}
		}
		chart.Series = append(chart.Series, model.ChartSeries{Name: col, Data: points})
	}
	chart.Empty = false
	return chart
}

// CountChart tallies a categorical column, largest first.
func CountChart(name, kind, title string, view model.FilteredView, column string) model.ChartData {
	chart := emptyChart(name, kind, title)
	chart.XLabel, chart.YLabel = column, "count"
	counts, err := CountByCategory(view, column)
	if err != nil || len(counts) == 0 {
		return chart
	}

	sorted := SortedCounts(counts)
	if kind == model.ChartPie {
		points := make([]model.ChartPoint, len(sorted))
		for i, c := range sorted {
			points[i] = model.ChartPoint{Label: c.Value, Value: float64(c.Count)}
		}
		chart.Series = []model.ChartSeries{{Name: column, Data: points}}
	} else {
		// one series per category, as a color-per-bar chart
		for i, c := range sorted {
			chart.Series = append(chart.Series, model.ChartSeries{
				Name:  c.Value,
				Color: defaultColors[i%len(defaultColors)],
				Data:  []model.ChartPoint{{Label: c.Value, Value: float64(c.Count)}},
			})
		}
	}
	chart.Empty = false
	return chart
}

// ToolShareChart is the pie of AI tool usage.
func ToolShareChart(view model.FilteredView) model.ChartData {
	return CountChart(ChartToolShare, model.ChartPie, "AI Tool Distribution", view, model.ColumnAITool)
}

// IndustryCountsChart is the bar chart of records per industry.
func IndustryCountsChart(view model.FilteredView) model.ChartData {
	return CountChart(ChartIndustryCounts, model.ChartBar, "Industry Representation", view, model.ColumnIndustry)
}

// BoxChart compares a numeric column across the values of a categorical column.
func BoxChart(name, title string, view model.FilteredView, category, numeric string) model.ChartData {
	chart := emptyChart(name, model.ChartBox, title)
	chart.XLabel, chart.YLabel = category, numeric
	boxes, err := BoxByCategory(view, category, numeric)
	if err != nil || len(boxes) == 0 {
		return chart
	}
	chart.Boxes = boxes
	for i, b := range boxes {
		chart.Series = append(chart.Series, model.ChartSeries{
			Name:  b.Group,
			Color: defaultColors[i%len(defaultColors)],
			Data:  []model.ChartPoint{{Label: "median", Value: b.Median}},
		})
	}
	chart.Empty = false
	return chart
}

// TrendChart is the line chart of mean adoption per year, one series per tool.
func TrendChart(view model.FilteredView) model.ChartData {
	chart := emptyChart(ChartAdoptionTrend, model.ChartLine, "Average Adoption Over Time by Tool")
	chart.XLabel, chart.YLabel = model.ColumnYear, model.ColumnAdoptionRate
	points := GroupMeanByYearAndTool(view)
	if len(points) == 0 {
		return chart
	}

	index := make(map[string]int)
	for _, p := range points {
		if model.Missing(p.MeanAdoptionRate) {
			continue
		}
		i, ok := index[p.Tool]
		if !ok {
			i = len(chart.Series)
			index[p.Tool] = i
			chart.Series = append(chart.Series, model.ChartSeries{Name: p.Tool})
		}
		chart.Series[i].Data = append(chart.Series[i].Data, model.ChartPoint{
			Label: strconv.Itoa(p.Year),
			Value: p.MeanAdoptionRate,
		})
	}
	if len(chart.Series) == 0 {
		return chart
	}
	sortSeriesByName(chart.Series)
	for i := range chart.Series {
		chart.Series[i].Color = defaultColors[i%len(defaultColors)]
	}
	chart.Empty = false
	return chart
}

// RoundTo2 rounds to two decimals for display.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func sortSeriesByName(series []model.ChartSeries) {
	sort.SliceStable(series, func(i, j int) bool { return series[i].Name < series[j].Name })
}
