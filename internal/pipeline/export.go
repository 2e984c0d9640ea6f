package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"adoption-eda/internal/model"
	"adoption-eda/internal/store"
	"adoption-eda/pkg/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Export formats.
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// ErrUnknownFormat is returned for an export format that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

var exportFileNames = map[string]string{
	FormatCSV:    "adoption_records.csv",
	FormatJSON:   "adoption_export.json",
	FormatXLSX:   "adoption_export.xlsx",
	FormatSQLite: "adoption_export.db",
}

// ExportManager writes filtered views to per-export directories.
type ExportManager struct {
	Output *utils.OutputManager
}

// NewExportManager creates an export manager rooted at baseDir.
func NewExportManager(baseDir string) *ExportManager {
	return &ExportManager{Output: utils.NewOutputManager(baseDir)}
}

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatCSV, FormatJSON, FormatXLSX, FormatSQLite}
}

// Export writes view in the given format and reports where it went.
func (em *ExportManager) Export(ctx context.Context, format string, sel model.Selection, view model.FilteredView) (model.ExportResult, error) {
	format = strings.ToLower(format)
	fileName, ok := exportFileNames[format]
	if !ok {
		return model.ExportResult{}, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	id := em.Output.NewExportID()
	path, err := em.Output.GetOutputFilePath(id, fileName)
	if err != nil {
		return model.ExportResult{}, err
	}

	switch format {
	case FormatCSV:
		err = exportToCSV(path, view)
	case FormatJSON:
		err = exportToJSON(path, id, sel, view)
	case FormatXLSX:
		err = exportToXLSX(path, view)
	case FormatSQLite:
		err = exportToSQLite(ctx, path, view)
	}
	trackExport(format, err)

	result := model.ExportResult{
		ID:          id,
		Type:        format,
		Path:        path,
		RecordCount: view.Len(),
		Success:     err == nil,
		Timestamp:   time.Now().UTC(),
	}
	if err != nil {
		result.RecordCount = 0
		result.Error = err.Error()
		log.WithError(err).WithField("format", format).Error("❌ Export failed")
		return result, err
	}

	log.WithFields(log.Fields{"format": format, "records": result.RecordCount, "path": path}).Info("✅ Export successful")
	return result, nil
}

// recordRow renders a record in dataset column order.
func recordRow(r model.Record) []string {
	return []string{
		strconv.Itoa(r.Year),
		r.Country,
		r.AgeGroup,
		r.AITool,
		r.Industry,
		r.CompanySize,
		formatNumber(r.AdoptionRate),
		formatNumber(r.DailyActiveUsers),
	}
}

// formatNumber renders a missing value as an empty cell.
func formatNumber(v float64) string {
	if model.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cellNumber leaves a missing value's cell blank.
func cellNumber(v float64) interface{} {
	if model.Missing(v) {
		return nil
	}
	return v
}

// exportToCSV writes the view with the original header.
func exportToCSV(path string, view model.FilteredView) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(model.Columns); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i, rec := range view.Records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush CSV")
}

// exportToJSON writes the view, its trend aggregate and export metadata.
func exportToJSON(path, exportID string, sel model.Selection, view model.FilteredView) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"export_id":    exportID,
			"exported_at":  time.Now().UTC(),
			"record_count": view.Len(),
		},
		"selection": sel,
		"records":   view.Records,
		"trend":     GroupMeanByYearAndTool(view),
	}
	return errors.Wrap(encoder.Encode(exportData), "failed to encode JSON")
}

// exportToSQLite stores the view and its trend aggregate in a fresh SQLite file.
func exportToSQLite(ctx context.Context, path string, view model.FilteredView) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRecords(ctx, view.Records); err != nil {
		return err
	}
	return db.SaveTrend(ctx, GroupMeanByYearAndTool(view))
}

func cellName(col int, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}

// exportToXLSX writes a workbook with records, trend and correlation sheets.
func exportToXLSX(path string, view model.FilteredView) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	writeSheet := func(sheet string, header []string, rows [][]interface{}) error {
		for i, h := range header {
			if err := f.SetCellValue(sheet, cellName(i+1, 1), h); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, cellName(1, 1), cellName(len(header), 1), headerStyle); err != nil {
			return err
		}
		for r, row := range rows {
			if err := f.SetSheetRow(sheet, cellName(1, r+2), &row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := f.SetSheetName("Sheet1", "records"); err != nil {
		return errors.Wrap(err, "failed to name records sheet")
	}
	recordRows := make([][]interface{}, len(view.Records))
	for i, r := range view.Records {
		recordRows[i] = []interface{}{r.Year, r.Country, r.AgeGroup, r.AITool, r.Industry, r.CompanySize, cellNumber(r.AdoptionRate), cellNumber(r.DailyActiveUsers)}
	}
	if err := writeSheet("records", model.Columns, recordRows); err != nil {
		return errors.Wrap(err, "failed to write records sheet")
	}

	if _, err := f.NewSheet("trend"); err != nil {
		return errors.Wrap(err, "failed to add trend sheet")
	}
	trend := GroupMeanByYearAndTool(view)
	trendRows := make([][]interface{}, len(trend))
	for i, p := range trend {
		trendRows[i] = []interface{}{p.Year, p.Tool, cellNumber(p.MeanAdoptionRate), p.RecordCount}
	}
	if err := writeSheet("trend", []string{"year", "ai_tool", "mean_adoption_rate", "record_count"}, trendRows); err != nil {
		return errors.Wrap(err, "failed to write trend sheet")
	}

	if _, err := f.NewSheet("correlation"); err != nil {
		return errors.Wrap(err, "failed to add correlation sheet")
	}
	matrix, err := CorrelationMatrix(view, model.NumericColumns)
	if err != nil {
		return err
	}
	corrRows := make([][]interface{}, len(matrix.Columns))
	for i, col := range matrix.Columns {
		row := []interface{}{col}
		for j := range matrix.Columns {
			if matrix.Defined[i][j] {
				row = append(row, matrix.Values[i][j])
			} else {
				row = append(row, "")
			}
		}
		corrRows[i] = row
	}
	if err := writeSheet("correlation", append([]string{""}, matrix.Columns...), corrRows); err != nil {
		return errors.Wrap(err, "failed to write correlation sheet")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to save %s", path))
	}
	return nil
}
