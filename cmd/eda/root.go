package main

import (
	"os"

	"adoption-eda/internal/config"
	"adoption-eda/internal/model"
	"adoption-eda/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app carries the resolved configuration to the subcommands.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "eda",
		Short:         "Exploratory analysis of the AI tool adoption dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.String("source", "", "dataset URL or local CSV path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("timeout", "", "dataset fetch timeout, e.g. 30s")

	cmd.AddCommand(newServeCmd(a), newSummaryCmd(a), newExportCmd(a))
	return cmd
}

// init loads the config file, then applies the flags that were set explicitly.
func (a *app) init(flags *pflag.FlagSet) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	overrides := map[string]*string{
		"source":    &cfg.Source,
		"log-level": &cfg.LogLevel,
		"timeout":   &cfg.Timeout,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SetupLogging(cfg.LogLevel, os.Stderr); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// addSelectionFlags registers the filter flags shared by summary and export.
func addSelectionFlags(flags *pflag.FlagSet) {
	flags.StringSlice("year", nil, "years to include (default all)")
	flags.StringSlice("country", nil, "countries to include (default all)")
	flags.StringSlice("age-group", nil, "age groups to include (default all)")
}

// selectionFromFlags maps unset filter flags to "all values" and set ones,
// even when empty, to exactly the given values.
func selectionFromFlags(flags *pflag.FlagSet) (model.SelectionRequest, error) {
	var req model.SelectionRequest
	if flags.Changed("year") {
		raw, _ := flags.GetStringSlice("year")
		years, err := utils.ParseIntList(raw)
		if err != nil {
			return req, err
		}
		req.Years = &years
	}
	if flags.Changed("country") {
		countries, _ := flags.GetStringSlice("country")
		countries = nonBlank(countries)
		req.Countries = &countries
	}
	if flags.Changed("age-group") {
		ageGroups, _ := flags.GetStringSlice("age-group")
		ageGroups = nonBlank(ageGroups)
		req.AgeGroups = &ageGroups
	}
	return req, nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
