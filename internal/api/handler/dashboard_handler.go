package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"adoption-eda/internal/model"
	"adoption-eda/internal/pipeline"
	"adoption-eda/internal/render"
	"adoption-eda/pkg/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const apiPrefix = "/api/v1/"

// Bounds of the tuning parameters a request may set.
const (
	maxHeadRows  = 1000
	maxChartSide = 4096
)

// Handler serves the dashboard API. Every request loads the dataset again.
type Handler struct {
	Runner      *pipeline.Runner
	Exports     *pipeline.ExportManager
	ChartWidth  int
	ChartHeight int
}

// New creates a handler.
func New(runner *pipeline.Runner, exports *pipeline.ExportManager, chartWidth, chartHeight int) *Handler {
	return &Handler{Runner: runner, Exports: exports, ChartWidth: chartWidth, ChartHeight: chartHeight}
}

// Health reports liveness
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"source": h.Runner.Source,
	})
}

// GetFilters returns the filter options
// @Summary Filter options
// @Description Distinct years, countries and age groups of the dataset; each filter defaults to all of them
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.FilterOptions
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /filters [get]
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Runner.FilterOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// GetDashboard builds every chart of the four tabs
// @Summary Dashboard
// @Description Loads the dataset, applies the filters and returns all chart payloads. A missing filter selects every value; an empty one selects nothing.
// @Tags dashboard
// @Produce json
// @Param year query []int false "Selected years" collectionFormat(multi)
// @Param country query []string false "Selected countries" collectionFormat(multi)
// @Param age_group query []string false "Selected age groups" collectionFormat(multi)
// @Param head query int false "Snapshot rows (0-1000)"
// @Param bins query int false "Histogram bins (1-500)"
// @Success 200 {object} model.Dashboard
// @Failure 400 {object} map[string]interface{} "Invalid parameter"
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dash, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// GetTrend returns the mean adoption rate per year and tool
// @Summary Adoption trend
// @Tags dashboard
// @Produce json
// @Param year query []int false "Selected years" collectionFormat(multi)
// @Param country query []string false "Selected countries" collectionFormat(multi)
// @Param age_group query []string false "Selected age groups" collectionFormat(multi)
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /trend [get]
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	_, sel, view, ok := h.view(w, r)
	if !ok {
		return
	}
	trend := pipeline.GroupMeanByYearAndTool(view)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"selection": sel,
		"trend":     trend,
		"count":     len(trend),
	})
}

// GetCounts tallies a categorical column
// @Summary Category counts
// @Tags dashboard
// @Produce json
// @Param column path string true "Categorical column (country, age_group, ai_tool, industry, company_size)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Unknown column"
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /counts/{column} [get]
func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	column := strings.TrimPrefix(r.URL.Path, apiPrefix+"counts/")
	if column == "" || strings.Contains(column, "/") {
		writeError(w, badRequest("column is required"))
		return
	}

	_, _, view, ok := h.view(w, r)
	if !ok {
		return
	}
	counts, err := pipeline.CountByCategory(view, column)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"column": column,
		"counts": pipeline.SortedCounts(counts),
		"total":  view.Len(),
	})
}

// GetCorrelation returns the Pearson correlation matrix
// @Summary Correlation matrix
// @Description Undefined coefficients (fewer than two records or zero variance) are null
// @Tags dashboard
// @Produce json
// @Param column query []string false "Numeric columns (default adoption_rate, daily_active_users)" collectionFormat(multi)
// @Success 200 {object} model.CorrelationMatrix
// @Failure 400 {object} map[string]interface{} "Unknown column"
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /correlation [get]
func (h *Handler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	columns := queryList(r, "column")
	if len(columns) == 0 {
		columns = model.NumericColumns
	}

	_, _, view, ok := h.view(w, r)
	if !ok {
		return
	}
	matrix, err := pipeline.CorrelationMatrix(view, columns)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matrix)
}

// GetChartPNG renders one dashboard chart
// @Summary Chart image
// @Description Renders bar, pie, line and histogram charts. Box plots and the heatmap are data-only.
// @Tags charts
// @Produce png
// @Param name path string true "Chart name, e.g. adoption_trend"
// @Success 200 {file} file "PNG image"
// @Param width query int false "Image width (1-4096)"
// @Param height query int false "Image height (1-4096)"
// @Success 204 "No data for the current filters"
// @Failure 400 {object} map[string]interface{} "Invalid parameter"
// @Failure 404 {object} map[string]interface{} "Unknown chart"
// @Failure 415 {object} map[string]interface{} "Chart cannot be rendered"
// @Router /charts/{name}.png [get]
func (h *Handler) GetChartPNG(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, apiPrefix+"charts/"), ".png")
	width, err := queryInt(r, "width", h.ChartWidth, 1, maxChartSide)
	if err != nil {
		writeError(w, err)
		return
	}
	height, err := queryInt(r, "height", h.ChartHeight, 1, maxChartSide)
	if err != nil {
		writeError(w, err)
		return
	}

	dash, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	chart, found := dash.Chart(name)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "unknown chart: " + name})
		return
	}
	if !render.Renderable(chart.Kind) {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]interface{}{"error": errors.Wrap(render.ErrUnsupportedChart, name).Error()})
		return
	}
	if chart.Empty {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := render.RenderPNG(w, chart, width, height); err != nil {
		log.WithError(err).WithField("chart", name).Error("❌ Chart render failed")
	}
}

// CreateExport writes the filtered view to a file
// @Summary Export filtered view
// @Tags exports
// @Produce json
// @Param format query string true "csv, json, xlsx or sqlite"
// @Param year query []int false "Selected years" collectionFormat(multi)
// @Param country query []string false "Selected countries" collectionFormat(multi)
// @Param age_group query []string false "Selected age groups" collectionFormat(multi)
// @Success 201 {object} model.ExportResult
// @Failure 400 {object} map[string]interface{} "Invalid format or parameter"
// @Failure 502 {object} map[string]interface{} "Dataset unavailable"
// @Router /exports [post]
func (h *Handler) CreateExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatCSV
	}
	if !isFormat(format) {
		writeError(w, errors.Wrapf(pipeline.ErrUnknownFormat, "%q", format))
		return
	}

	_, sel, view, ok := h.view(w, r)
	if !ok {
		return
	}
	result, err := h.Exports.Export(r.Context(), format, sel, view)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"export":       result,
		"download_url": h.Exports.Output.GetDownloadURL(result.ID, filepath.Base(result.Path)),
	})
}

// DownloadExport serves an export file for download
// @Summary Download export
// @Tags exports
// @Produce application/octet-stream
// @Param id path string true "Export ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /exports/{id}/{filename} [get]
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/exports/{id}/{filename}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, apiPrefix+"exports/"), "/")
	if len(parts) != 2 {
		writeError(w, badRequest("expected /exports/{id}/{filename}"))
		return
	}

	path, err := h.Exports.Output.ResolveFile(parts[0], parts[1])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "file not found"})
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+parts[1]+"\"")
	w.Header().Set("Content-Type", downloadContentTypes[h.Exports.Output.GetFileType(path)])
	http.ServeFile(w, r, path)
}

// ------------------- helpers -------------------

var downloadContentTypes = map[string]string{
	"csv":     "text/csv",
	"json":    "application/json",
	"xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"sqlite":  "application/vnd.sqlite3",
	"unknown": "application/octet-stream",
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) (model.Dashboard, bool) {
	req, err := parseSelection(r)
	if err != nil {
		writeError(w, err)
		return model.Dashboard{}, false
	}
	runner := *h.Runner
	if runner.Options.HeadRows, err = queryInt(r, "head", runner.Options.HeadRows, 0, maxHeadRows); err != nil {
		writeError(w, err)
		return model.Dashboard{}, false
	}
	if runner.Options.HistogramBins, err = queryInt(r, "bins", runner.Options.HistogramBins, 1, pipeline.MaxHistogramBins); err != nil {
		writeError(w, err)
		return model.Dashboard{}, false
	}

	dash, err := runner.Dashboard(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return model.Dashboard{}, false
	}
	return dash, true
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) (model.Dataset, model.Selection, model.FilteredView, bool) {
	req, err := parseSelection(r)
	if err != nil {
		writeError(w, err)
		return model.Dataset{}, model.Selection{}, model.FilteredView{}, false
	}
	ds, sel, view, err := h.Runner.View(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return model.Dataset{}, model.Selection{}, model.FilteredView{}, false
	}
	return ds, sel, view, true
}

type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return badRequestError{msg: msg} }

// parseSelection reads the year, country and age_group filters. A parameter that is
// absent selects everything; one that is present but empty selects nothing.
func parseSelection(r *http.Request) (model.SelectionRequest, error) {
	var req model.SelectionRequest
	q := r.URL.Query()

	if _, ok := q["year"]; ok {
		years, err := utils.ParseIntList(queryList(r, "year"))
		if err != nil {
			return req, badRequest("invalid year: " + err.Error())
		}
		req.Years = &years
	}
	if _, ok := q["country"]; ok {
		countries := queryList(r, "country")
		req.Countries = &countries
	}
	if _, ok := q["age_group"]; ok {
		ageGroups := queryList(r, "age_group")
		req.AgeGroups = &ageGroups
	}
	return req, nil
}

// queryList collects repeated and comma-separated values, dropping blanks.
func queryList(r *http.Request, key string) []string {
	out := make([]string, 0)
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// queryInt reads an optional integer parameter that must lie in [lo, hi].
func queryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, badRequest(fmt.Sprintf("%s must be an integer in [%d, %d], got %q", key, lo, hi, raw))
	}
	return v, nil
}

func isFormat(format string) bool {
	for _, f := range pipeline.Formats() {
		if f == format {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var bad badRequestError
	switch {
	case errors.As(err, &bad),
		errors.Is(err, pipeline.ErrUnknownColumn),
		errors.Is(err, pipeline.ErrUnknownFormat):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrSourceUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, map[string]interface{}{"error": err.Error()})
}
