package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jengzang/ev-dashboard-go/internal/charts"
	"github.com/jengzang/ev-dashboard-go/internal/dataset"
	"github.com/jengzang/ev-dashboard-go/internal/metrics"
	"github.com/jengzang/ev-dashboard-go/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSummaryCmd(v *viper.Viper) *cobra.Command {
	var flags filterFlags

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard metrics for a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			svc := service.NewDashboardService(dataset.NewSource(cfg.DataPath))
			snap, err := svc.Evaluate(flags.query(cmd))
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), snap)
		},
	}
	flags.register(summary)
	return summary
}

func printSummary(w io.Writer, snap *service.Snapshot) error {
	sel := snap.Options.Selected
	s := metrics.Summarize(snap.View)

	color.New(color.FgCyan, color.Bold).Fprintln(w, "\n=== Electric Vehicle Market Intelligence ===")
	fmt.Fprintf(w, "Manufacturers: %s\n", joinOrAny(sel.Makes))
	fmt.Fprintf(w, "Models: %s\n", joinOrAny(sel.Models))
	fmt.Fprintf(w, "Model years %d-%d, range %d-%d mi, price $%s-$%s\n",
		sel.Years.Min, sel.Years.Max, sel.Range.Min, sel.Range.Max,
		humanize.Comma(int64(sel.Price.Min)), humanize.Comma(int64(sel.Price.Max)))

	kpis := tablewriter.NewWriter(w)
	kpis.SetHeader([]string{"Total Vehicles", "Unique Manufacturers", "Avg Electric Range", "Avg Base Price"})
	kpis.Append([]string{s.TotalLabel, strconv.Itoa(s.UniqueMakes), s.AvgRangeLabel + " mi", "$" + s.AvgPriceLabel})
	kpis.Render()

	if snap.View.Len() == 0 {
		color.New(color.FgYellow).Fprintln(w, charts.NoticeNoData)
		return nil
	}

	top := charts.TopManufacturers(snap.View)
	color.New(color.FgYellow).Fprintf(w, "\n%s\n", top.Title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Manufacturer", "Vehicles"})
	for _, c := range top.Categories {
		table.Append([]string{c.Label, humanize.Comma(int64(c.Count))})
	}
	table.Render()
	return nil
}

func joinOrAny(values []string) string {
	if len(values) == 0 {
		return "(any)"
	}
	return strings.Join(values, ", ")
}
