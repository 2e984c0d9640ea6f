package model

// Chart kinds produced by the dashboard builders.
const (
	ChartBar       = "bar"
	ChartPie       = "pie"
	ChartLine      = "line"
	ChartHistogram = "histogram"
	ChartBox       = "box"
	ChartHeatmap   = "heatmap"
)

// ChartPoint is a single (x, y) pair of a series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one colored series of a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Color string       `json:"color,omitempty"`
	Data  []ChartPoint `json:"data"`
}

// ChartData is the data handed to a chart. Empty marks a "no data" chart.
// Description is the reading guide shown under the chart.
type ChartData struct {
	Name        string             `json:"name"`
	Kind        string             `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	XLabel      string             `json:"x_label,omitempty"`
	YLabel      string             `json:"y_label,omitempty"`
	Series      []ChartSeries      `json:"series"`
	Histogram   *Histogram         `json:"histogram,omitempty"`
	Boxes       []BoxStats         `json:"boxes,omitempty"`
	Correlation *CorrelationMatrix `json:"correlation,omitempty"`
	Empty       bool               `json:"empty"`
}

// Overview is the dataset snapshot tab.
type Overview struct {
	Head    []Record `json:"head"`
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
}

// Dashboard groups the chart payloads of the four tabs.
type Dashboard struct {
	Selection    Selection   `json:"selection"`
	Overview     Overview    `json:"overview"`
	Numeric      []ChartData `json:"numeric"`
	Categoricals []ChartData `json:"categoricals"`
	Trends       []ChartData `json:"trends"`
	Stats        RunStats    `json:"stats"`
}

// Charts returns every chart of the dashboard in tab order.
func (d Dashboard) Charts() []ChartData {
	charts := make([]ChartData, 0, len(d.Numeric)+len(d.Categoricals)+len(d.Trends))
	charts = append(charts, d.Numeric...)
	charts = append(charts, d.Categoricals...)
	charts = append(charts, d.Trends...)
	return charts
}

// Chart looks a chart up by name.
func (d Dashboard) Chart(name string) (ChartData, bool) {
	for _, c := range d.Charts() {
		if c.Name == name {
			return c, true
		}
	}
	return ChartData{}, false
}

// FilterOptions are the values offered by the three filters.
type FilterOptions struct {
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
	AgeGroups []string `json:"age_groups"`
}
