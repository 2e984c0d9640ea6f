package pipeline

import (
	"context"
	"time"

	"adoption-eda/internal/model"

	log "github.com/sirupsen/logrus"
)

// Runner executes the load → filter → build sequence for one interaction.
// The dataset is fetched again on every call.
type Runner struct {
	Loader  *Loader
	Source  string
	Options DashboardOptions
}

// NewRunner creates a runner for source.
func NewRunner(loader *Loader, source string, opts DashboardOptions) *Runner {
	return &Runner{Loader: loader, Source: source, Options: opts}
}

// Load fetches the dataset and records load metrics.
func (r *Runner) Load(ctx context.Context) (model.Dataset, time.Duration, error) {
	start := time.Now()
	ds, err := r.Loader.Load(ctx, r.Source)
	trackLoad(start, err)
	elapsed := time.Since(start)
	if err != nil {
		log.WithError(err).WithField("source", r.Source).Error("❌ Dataset load failed")
		return model.Dataset{}, elapsed, err
	}
	return ds, elapsed, nil
}

// FilterOptions loads the dataset and returns the filter options.
func (r *Runner) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	ds, _, err := r.Load(ctx)
	if err != nil {
		return model.FilterOptions{}, err
	}
	return Options(ds), nil
}

// View loads the dataset and applies the requested filters.
func (r *Runner) View(ctx context.Context, req model.SelectionRequest) (model.Dataset, model.Selection, model.FilteredView, error) {
	ds, _, err := r.Load(ctx)
	if err != nil {
		return model.Dataset{}, model.Selection{}, model.FilteredView{}, err
	}
	sel := ResolveSelection(ds, req)
	view := ApplyFilters(ds, sel)
	trackFiltered(view.Len())
	return ds, sel, view, nil
}

// Dashboard runs the full sequence and returns every tab.
func (r *Runner) Dashboard(ctx context.Context, req model.SelectionRequest) (model.Dashboard, error) {
	ds, loadTime, err := r.Load(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	start := time.Now()
	dash := BuildDashboard(ds, ResolveSelection(ds, req), r.Options)
	dash.Stats.LoadDuration = loadTime
	dash.Stats.BuildDuration = time.Since(start)
	trackFiltered(dash.Stats.FilteredRecords)

	log.WithFields(log.Fields{
		"records":        dash.Stats.SourceRecords,
		"filtered":       dash.Stats.FilteredRecords,
		"records_per_s":  int(dash.Stats.ThroughputRPS()),
		"build_duration": dash.Stats.BuildDuration,
	}).Info("📊 Dashboard built")
	return dash, nil
}
