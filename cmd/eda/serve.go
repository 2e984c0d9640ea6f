package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"adoption-eda/internal/api"
	"adoption-eda/internal/api/handler"
	"adoption-eda/internal/pipeline"
	"adoption-eda/pkg/router"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to listen on")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	exports := pipeline.NewExportManager(a.cfg.ExportDir)
	if err := exports.Output.EnsureOutputDirExists(); err != nil {
		return errors.Wrap(err, "failed to prepare export directory")
	}

	var gatherer prometheus.Gatherer
	if a.cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		pipeline.RegisterMetrics(reg)
		gatherer = reg
	}

	h := handler.New(a.cfg.Runner(), exports, a.cfg.ChartWidth, a.cfg.ChartHeight)
	r := router.New()
	api.RegisterRoutes(r, h, gatherer)

	log.WithFields(log.Fields{
		"source":     a.cfg.Source,
		"export_dir": a.cfg.ExportDir,
		"metrics":    a.cfg.Metrics,
	}).Info("📦 Dashboard API configured")

	if err := r.Start(ctx, a.cfg.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
