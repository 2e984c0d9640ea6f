package model

import (
	"encoding/json"
	"math"
)

// Column names of the adoption dataset, as they appear in the CSV header.
const (
	ColumnYear             = "year"
	ColumnCountry          = "country"
	ColumnAgeGroup         = "age_group"
	ColumnAITool           = "ai_tool"
	ColumnIndustry         = "industry"
	ColumnCompanySize      = "company_size"
	ColumnAdoptionRate     = "adoption_rate"
	ColumnDailyActiveUsers = "daily_active_users"
)

// Columns lists every column in dataset order.
var Columns = []string{
	ColumnYear,
	ColumnCountry,
	ColumnAgeGroup,
	ColumnAITool,
	ColumnIndustry,
	ColumnCompanySize,
	ColumnAdoptionRate,
	ColumnDailyActiveUsers,
}

// NumericColumns are the columns summarised by histograms and the correlation heatmap.
var NumericColumns = []string{ColumnAdoptionRate, ColumnDailyActiveUsers}

// Record represents a single row of the adoption dataset. A missing numeric cell is NaN
// and encodes as JSON null.
type Record struct {
	Year             int     `json:"year"`
	Country          string  `json:"country"`
	AgeGroup         string  `json:"age_group"`
	AITool           string  `json:"ai_tool"`
	Industry         string  `json:"industry"`
	CompanySize      string  `json:"company_size"`
	AdoptionRate     float64 `json:"adoption_rate"` // opaque: fraction or percentage depending on the source
	DailyActiveUsers float64 `json:"daily_active_users"`
}

type recordJSON struct {
	Year             int      `json:"year"`
	Country          string   `json:"country"`
	AgeGroup         string   `json:"age_group"`
	AITool           string   `json:"ai_tool"`
	Industry         string   `json:"industry"`
	CompanySize      string   `json:"company_size"`
	AdoptionRate     *float64 `json:"adoption_rate"`
	DailyActiveUsers *float64 `json:"daily_active_users"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Year:             r.Year,
		Country:          r.Country,
		AgeGroup:         r.AgeGroup,
		AITool:           r.AITool,
		Industry:         r.Industry,
		CompanySize:      r.CompanySize,
		AdoptionRate:     Nullable(r.AdoptionRate),
		DailyActiveUsers: Nullable(r.DailyActiveUsers),
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var aux recordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record{
		Year:             aux.Year,
		Country:          aux.Country,
		AgeGroup:         aux.AgeGroup,
		AITool:           aux.AITool,
		Industry:         aux.Industry,
		CompanySize:      aux.CompanySize,
		AdoptionRate:     fromNullable(aux.AdoptionRate),
		DailyActiveUsers: fromNullable(aux.DailyActiveUsers),
	}
	return nil
}

// Missing reports whether v stands for an absent numeric cell.
func Missing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Nullable returns nil for a missing value.
func Nullable(v float64) *float64 {
	if Missing(v) {
		return nil
	}
	return &v
}

func fromNullable(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Dataset is the loaded table. It is not modified after load.
type Dataset struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// FilteredView is the ordered subsequence of a Dataset passing the active Selection.
type FilteredView struct {
	Records []Record `json:"records"`
}

// Len returns the number of records in the view.
func (v FilteredView) Len() int { return len(v.Records) }

// IsEmpty reports whether no record passed the filters.
func (v FilteredView) IsEmpty() bool { return len(v.Records) == 0 }

// Selection holds the user's three independent inclusion filters.
// A nil or empty slice selects nothing.
type Selection struct {
	Years     []int    `json:"years"`
	Countries []string `json:"countries"`
	AgeGroups []string `json:"age_groups"`
}

// SelectionRequest carries the filters a caller set explicitly. A nil field means
// "all observed values"; a non-nil empty slice selects nothing.
type SelectionRequest struct {
	Years     *[]int
	Countries *[]string
	AgeGroups *[]string
}
