package cmd

import (
	"log"
	"os"

	"github.com/jengzang/ev-dashboard-go/internal/config"
	"github.com/jengzang/ev-dashboard-go/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	rootCmdName  = "evdash"
	rootCmdShort = "Electric vehicle market intelligence dashboard"
	rootCmdLong  = `evdash explores an electric vehicle registration dataset.

It serves an interactive dashboard with market trend, geography and
performance charts, prints summaries in the terminal and exports the
filtered rows as CSV, Excel or JSON.`
)

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around a fresh configuration
func NewRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           rootCmdName,
		Short:         rootCmdShort,
		Long:          rootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String(config.KeyConfigFile, "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("data", "", "path of the EV population CSV")
	_ = v.BindPFlag(config.KeyConfigFile, root.PersistentFlags().Lookup(config.KeyConfigFile))
	_ = v.BindPFlag(config.KeyDataPath, root.PersistentFlags().Lookup("data"))

	root.AddCommand(newServeCmd(v), newSummaryCmd(v), newExportCmd(v))
	return root
}

// filterFlags holds the widget state given on the command line
type filterFlags struct {
	makes, models, types, counties, cities []string
	yearMin, yearMax                       int
	rangeMin, rangeMax                     int
	priceMin, priceMax                     int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.makes, "make", nil, "manufacturers (default TESLA,FORD,CHEVROLET,NISSAN,BMW)")
	fs.StringSliceVar(&f.models, "model", nil, "models")
	fs.StringSliceVar(&f.types, "type", nil, "electric vehicle types (default all)")
	fs.StringSliceVar(&f.counties, "county", nil, "counties")
	fs.StringSliceVar(&f.cities, "city", nil, "cities")
	fs.IntVar(&f.yearMin, "year-min", 0, "lowest model year")
	fs.IntVar(&f.yearMax, "year-max", 0, "highest model year")
	fs.IntVar(&f.rangeMin, "range-min", 0, "lowest electric range")
	fs.IntVar(&f.rangeMax, "range-max", 0, "highest electric range")
	fs.IntVar(&f.priceMin, "price-min", 0, "lowest base MSRP")
	fs.IntVar(&f.priceMax, "price-max", 0, "highest base MSRP")
}

// query converts the flags into a dashboard query; flags not given keep the dashboard defaults
func (f *filterFlags) query(cmd *cobra.Command) models.DashboardQuery {
	fs := cmd.Flags()
	bound := func(name string, value int) *int {
		if !fs.Changed(name) {
			return nil
		}
		return &value
	}
	list := func(name string, values []string) []string {
		if !fs.Changed(name) {
			return nil
		}
		return append([]string{}, values...)
	}

	return models.DashboardQuery{
		Makes:    list("make", f.makes),
		Models:   list("model", f.models),
		EVTypes:  list("type", f.types),
		Counties: list("county", f.counties),
		Cities:   list("city", f.cities),
		YearMin:  bound("year-min", f.yearMin),
		YearMax:  bound("year-max", f.yearMax),
		RangeMin: bound("range-min", f.rangeMin),
		RangeMax: bound("range-max", f.rangeMax),
		PriceMin: bound("price-min", f.priceMin),
		PriceMax: bound("price-max", f.priceMax),
	}
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	return config.Load(v)
}
