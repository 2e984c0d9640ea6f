package main

import (
	"fmt"
	"strings"

	"adoption-eda/internal/pipeline"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered dataset to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("out") {
				a.cfg.ExportDir = out
			}
			req, err := selectionFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			_, sel, view, err := a.cfg.Runner().View(cmd.Context(), req)
			if err != nil {
				return err
			}
			result, err := pipeline.NewExportManager(a.cfg.ExportDir).Export(cmd.Context(), format, sel, view)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s export with %d records written to %s\n", result.Type, result.RecordCount, result.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", pipeline.FormatCSV, "export format ("+strings.Join(pipeline.Formats(), ", ")+")")
	cmd.Flags().StringVar(&out, "out", "exports", "export directory")
	addSelectionFlags(cmd.Flags())
	return cmd
}
