package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/export"
	"github.com/jengzang/ev-dashboard-go/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	var (
		flags  filterFlags
		format string
		output string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV, Excel or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			svc := service.NewDashboardService(dataset.NewSource(cfg.DataPath))
			payload, err := svc.Export(flags.query(cmd), format)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = payload.FileName
			}
			if err := os.WriteFile(path, payload.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Printf("Exported %d bytes to %s", len(payload.Data), path)
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	flags.register(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "csv, xlsx or json")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default ev_data_export.<format>)")
	return exportCmd
}
