package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adoption-eda/internal/model"
	"adoption-eda/internal/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() (model.Selection, model.FilteredView) {
	ds := exampleDataset()
	sel := DefaultSelection(ds)
	return sel, ApplyFilters(ds, sel)
}

func TestExportCSV(t *testing.T) {
	em := NewExportManager(t.TempDir())
	sel, view := exportFixture()

	result, err := em.Export(context.Background(), FormatCSV, sel, view)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, FormatCSV, result.Type)
	assert.Equal(t, 3, result.RecordCount)
	assert.Equal(t, "adoption_records.csv", filepath.Base(result.Path))

	f, err := os.Open(result.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, model.Columns, rows[0])
	assert.Equal(t, []string{"2021", "US", "18-24", "Copilot", "Tech", "Large", "0.4", "120"}, rows[1])

	// the CSV round-trips through the loader
	ds, err := NewLoader(0).Load(context.Background(), result.Path)
	require.NoError(t, err)
	assert.Equal(t, view.Records, ds.Records)
}

func TestExportJSON(t *testing.T) {
	em := NewExportManager(t.TempDir())
	sel, view := exportFixture()

	result, err := em.Export(context.Background(), FormatJSON, sel, view)
	require.NoError(t, err)

	raw, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	var payload struct {
		ExportInfo struct {
			ExportID    string `json:"export_id"`
			RecordCount int    `json:"record_count"`
		} `json:"export_info"`
		Records []model.Record     `json:"records"`
		Trend   []model.TrendPoint `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, result.ID, payload.ExportInfo.ExportID)
	assert.Equal(t, 3, payload.ExportInfo.RecordCount)
	assert.Equal(t, view.Records, payload.Records)
	assert.Len(t, payload.Trend, 2)
}

func TestExportXLSX(t *testing.T) {
	em := NewExportManager(t.TempDir())
	sel, view := exportFixture()

	result, err := em.Export(context.Background(), FormatXLSX, sel, view)
	require.NoError(t, err)

	f, err := excelize.OpenFile(result.Path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"records", "trend", "correlation"}, f.GetSheetList())

	rows, err := f.GetRows("records")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, model.Columns, rows[0])

	cell, err := f.GetCellValue("trend", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Copilot", cell)
}

func TestExportSQLite(t *testing.T) {
	em := NewExportManager(t.TempDir())
	sel, view := exportFixture()

	result, err := em.Export(context.Background(), FormatSQLite, sel, view)
	require.NoError(t, err)

	db, err := store.Open(result.Path)
	require.NoError(t, err)
	defer db.Close()

	n, err := db.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	trend, err := db.ListTrend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GroupMeanByYearAndTool(view), trend)
}

func TestExportUnknownFormat(t *testing.T) {
	em := NewExportManager(t.TempDir())
	sel, view := exportFixture()

	_, err := em.Export(context.Background(), "parquet", sel, view)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportEmptyView(t *testing.T) {
	em := NewExportManager(t.TempDir())
	result, err := em.Export(context.Background(), FormatCSV, model.Selection{}, model.FilteredView{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordCount)
}

func TestExportMissingValues(t *testing.T) {
	records, err := ParseCSV(context.Background(), strings.NewReader(csvWithMissing))
	require.NoError(t, err)
	view := model.FilteredView{Records: records}
	em := NewExportManager(t.TempDir())

	csvResult, err := em.Export(context.Background(), FormatCSV, model.Selection{}, view)
	require.NoError(t, err)
	raw, err := os.ReadFile(csvResult.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2021,US,18-24,Copilot,Finance,Small,,80\n")
	assert.NotContains(t, string(raw), "NaN")

	ds, err := NewLoader(0).Load(context.Background(), csvResult.Path)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(ds.Records[1].AdoptionRate))

	for _, format := range []string{FormatJSON, FormatXLSX} {
		_, err := em.Export(context.Background(), format, model.Selection{}, view)
		assert.NoError(t, err, format)
	}

	sqliteResult, err := em.Export(context.Background(), FormatSQLite, model.Selection{}, view)
	require.NoError(t, err)
	db, err := store.Open(sqliteResult.Path)
	require.NoError(t, err)
	defer db.Close()
	n, err := db.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
