package model

import (
	"encoding/json"
	"time"
)

// TrendPoint is one row of the grouped aggregate: mean adoption rate per (year, tool).
// RecordCount counts every record of the group; the mean skips missing rates and is NaN
// when the group has none.
type TrendPoint struct {
	Year             int     `json:"year"`
	Tool             string  `json:"ai_tool"`
	MeanAdoptionRate float64 `json:"mean_adoption_rate"`
	RecordCount      int     `json:"record_count"`
}

func (p TrendPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year             int      `json:"year"`
		Tool             string   `json:"ai_tool"`
		MeanAdoptionRate *float64 `json:"mean_adoption_rate"`
		RecordCount      int      `json:"record_count"`
	}{p.Year, p.Tool, Nullable(p.MeanAdoptionRate), p.RecordCount})
}

// CategoryCount is a tally of one categorical value.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CorrelationMatrix holds Pearson coefficients between numeric columns.
// Values[i][j] is NaN when Defined[i][j] is false.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"-"`
	Defined [][]bool    `json:"defined"`
}

// HistogramBin is a half-open bucket [Lower, Upper); the last bin is closed.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the distribution of one numeric column with its marginal box.
type Histogram struct {
	Column string         `json:"column"`
	Bins   []HistogramBin `json:"bins"`
	Box    *BoxStats      `json:"box,omitempty"`
}

// BoxStats summarises a numeric sample for a box plot.
type BoxStats struct {
	Group      string    `json:"group"`
	Count      int       `json:"count"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers,omitempty"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "csv", "json", "xlsx", "sqlite"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MarshalJSON encodes undefined coefficients as null, since JSON has no NaN.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if i < len(m.Defined) && j < len(m.Defined[i]) && m.Defined[i][j] {
				v := row[j]
				values[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
		Defined [][]bool     `json:"defined"`
	}{m.Columns, values, m.Defined})
}
