package main

import (
	"io"
	"strconv"
	"strings"

	"adoption-eda/internal/model"
	"adoption-eda/internal/pipeline"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print counts, trend and correlation of the filtered dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := selectionFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			dash, err := a.cfg.Runner().Dashboard(cmd.Context(), req)
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), dash)
			return nil
		},
	}
	addSelectionFlags(cmd.Flags())
	return cmd
}

// writeSummary prints the dashboard as a plain-text report.
func writeSummary(w io.Writer, dash model.Dashboard) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Source:   %s\n", dash.Stats.Source)
	p.Fprintf(w, "Records:  %d of %d\n", dash.Stats.FilteredRecords, dash.Stats.SourceRecords)
	p.Fprintf(w, "Shape:    %d rows x %d columns\n", dash.Overview.Rows, dash.Overview.Columns)
	p.Fprintf(w, "Years:    %s\n", joinInts(dash.Selection.Years))
	p.Fprintf(w, "Countries: %s\n", strings.Join(dash.Selection.Countries, ", "))
	p.Fprintf(w, "Age groups: %s\n", strings.Join(dash.Selection.AgeGroups, ", "))

	if dash.Stats.FilteredRecords == 0 {
		p.Fprintf(w, "\nNo data for the current filters.\n")
		return
	}

	for _, name := range []string{pipeline.ChartToolShare, pipeline.ChartIndustryCounts} {
		chart, _ := dash.Chart(name)
		p.Fprintf(w, "\n%s\n", chart.Title)
		for _, s := range chart.Series {
			for _, pt := range s.Data {
				p.Fprintf(w, "  %-24s %12.0f\n", pt.Label, pt.Value)
			}
		}
	}

	p.Fprintf(w, "\nMean adoption rate by year and tool\n")
	trend, _ := dash.Chart(pipeline.ChartAdoptionTrend)
	for _, tp := range trend.Series {
		for _, pt := range tp.Data {
			p.Fprintf(w, "  %s  %-20s %10.2f\n", pt.Label, tp.Name, pt.Value)
		}
	}

	heatmap, _ := dash.Chart(pipeline.ChartCorrelation)
	if corr := heatmap.Correlation; corr != nil {
		p.Fprintf(w, "\nCorrelation\n")
		for i, col := range corr.Columns {
			for j := i + 1; j < len(corr.Columns); j++ {
				if corr.Defined[i][j] {
					p.Fprintf(w, "  %s ~ %s: %.3f\n", col, corr.Columns[j], corr.Values[i][j])
				} else {
					p.Fprintf(w, "  %s ~ %s: undefined\n", col, corr.Columns[j])
				}
			}
		}
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
