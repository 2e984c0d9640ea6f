package pipeline

import (
	"math"
	"strings"

	"adoption-eda/internal/model"
	"adoption-eda/pkg/utils"

	"github.com/pkg/errors"
)

// columnIndex maps each schema column to its position in a CSV row.
type columnIndex map[string]int

func newColumnIndex(headers []string) (columnIndex, error) {
	index := make(columnIndex, len(model.Columns))
	for i, h := range headers {
		name := utils.CleanHeader(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range model.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func (ci columnIndex) cell(row []string, column string) (string, error) {
	i := ci[column]
	if i >= len(row) {
		return "", errors.Errorf("row has %d fields, column %s is at %d", len(row), column, i+1)
	}
	return strings.TrimSpace(row[i]), nil
}

// decode converts one CSV row into a Record.
func (ci columnIndex) decode(row []string) (model.Record, error) {
	var rec model.Record
	var err error

	str := func(column string, dst *string) {
		if err != nil {
			return
		}
		*dst, err = ci.cell(row, column)
	}
	str(model.ColumnCountry, &rec.Country)
	str(model.ColumnAgeGroup, &rec.AgeGroup)
	str(model.ColumnAITool, &rec.AITool)
	str(model.ColumnIndustry, &rec.Industry)
	str(model.ColumnCompanySize, &rec.CompanySize)
	if err != nil {
		return rec, err
	}

	year, err := ci.cell(row, model.ColumnYear)
	if err != nil {
		return rec, err
	}
	if rec.Year, err = utils.ParseInt(year); err != nil {
		return rec, errors.Wrapf(err, "field %s must be an integer, got %q", model.ColumnYear, year)
	}

	if rec.AdoptionRate, err = ci.float(row, model.ColumnAdoptionRate); err != nil {
		return rec, err
	}
	if rec.DailyActiveUsers, err = ci.float(row, model.ColumnDailyActiveUsers); err != nil {
		return rec, err
	}
	return rec, nil
}

// missingTokens are the cell spellings read as a missing value, as pandas read_csv does.
var missingTokens = map[string]bool{
	"": true, "na": true, "n/a": true, "#n/a": true, "nan": true, "-nan": true,
	"null": true, "none": true, "inf": true, "-inf": true, "+inf": true,
}

// float decodes a numeric cell. Missing and non-finite values become NaN.
func (ci columnIndex) float(row []string, column string) (float64, error) {
	raw, err := ci.cell(row, column)
	if err != nil {
		return 0, err
	}
	if missingTokens[strings.ToLower(raw)] {
		return math.NaN(), nil
	}
	f, err := utils.ParseFloat(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "field %s must be numeric, got %q", column, raw)
	}
	if model.Missing(f) {
		return math.NaN(), nil
	}
	return f, nil
}

// categoryValue returns the string value of a categorical column.
func categoryValue(rec model.Record, column string) (string, bool) {
	switch column {
	case model.ColumnCountry:
		return rec.Country, true
	case model.ColumnAgeGroup:
		return rec.AgeGroup, true
	case model.ColumnAITool:
		return rec.AITool, true
	case model.ColumnIndustry:
		return rec.Industry, true
	case model.ColumnCompanySize:
		return rec.CompanySize, true
	}
	return "", false
}

// numericValue returns the value of a numeric column.
func numericValue(rec model.Record, column string) (float64, bool) {
	switch column {
	case model.ColumnAdoptionRate:
		return rec.AdoptionRate, true
	case model.ColumnDailyActiveUsers:
		return rec.DailyActiveUsers, true
	case model.ColumnYear:
		return float64(rec.Year), true
	}
	return 0, false
}

func isCategorical(column string) bool {
	_, ok := categoryValue(model.Record{}, column)
	return ok
}

func isNumeric(column string) bool {
	_, ok := numericValue(model.Record{}, column)
	return ok
}
