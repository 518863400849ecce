package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"saas-forecast/config"
	"saas-forecast/domain"
	"saas-forecast/export"
)

var (
	forecastOutDir   string
	forecastParallel int
	forecastOffline  bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast QUERY [QUERY...]",
	Short: "Run one or more forecast queries and print the projections",
	Example: `  saas-forecast forecast "Create 12-month revenue forecast with 2 sales people, marketing spend $200k/month"
  saas-forecast forecast --offline --out ./exports "6-month forecast with 3 sales people"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), false, cfg.LogLevel, cfg.ServiceName)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		a, err := buildApp(ctx, cfg, logger, !forecastOffline)
		if err != nil {
			return err
		}
		defer a.Close()

		if forecastOutDir != "" {
			if err := os.MkdirAll(forecastOutDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}

		results := make([]domain.QueryResponse, len(args))
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(max(forecastParallel, 1))
		for i, query := range args {
			g.Go(func() error {
				res, err := a.finance.ProcessQuery(gCtx, query)
				if err != nil {
					return fmt.Errorf("query %d: %w", i+1, err)
				}
				results[i] = res
				if forecastOutDir == "" {
					return nil
				}
				record, err := a.finance.GetModel(res.ModelID)
				if err != nil {
					return err
				}
				data, err := a.exporter.Export(record)
				if err != nil {
					return err
				}
				path := filepath.Join(forecastOutDir, export.FileName(res.ModelID))
				return os.WriteFile(path, data, 0o644)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, res := range results {
			printForecast(out, args[i], res)
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().StringVarP(&forecastOutDir, "out", "o", "", "directory to write xlsx exports into")
	forecastCmd.Flags().IntVarP(&forecastParallel, "parallel", "p", 4, "maximum queries processed at once")
	forecastCmd.Flags().BoolVar(&forecastOffline, "offline", false, "skip the LLM oracle and use the local interpreter")
}

func printForecast(w io.Writer, query string, res domain.QueryResponse) {
	p := message.NewPrinter(language.English)
	a := res.Assumptions

	p.Fprintf(w, "Query: %s\n", query)
	p.Fprintf(w, "Model: %s (%d months)\n", res.ModelID, len(res.Projections))
	p.Fprintf(w, "Assumptions: %v sales people (+%v/month), %s conversion, %d inquiries/month, $%.0f marketing/month\n",
		a.InitialSalesPeople, a.SalesPeopleGrowthRate, export.FormatPercent(a.ConversionRate),
		int(a.SalesInquiriesPerMonth), a.MarketingSpendMonthly)
	p.Fprintf(w, "%-6s %12s %12s %12s %18s\n", "Month", "Sales ppl", "Large cust.", "Small cust.", "Total revenue")
	for _, m := range res.Projections {
		p.Fprintf(w, "M%-5d %12v %12d %12d %18.2f\n",
			m.Month, m.SalesPeople, m.LargeCustomersCumulative, m.SmallCustomersCumulative, m.TotalRevenue)
	}
	fmt.Fprintln(w)
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List the available revenue drivers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), false, cfg.LogLevel, cfg.ServiceName)
		if err != nil {
			return err
		}
		a, err := buildApp(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer a.Close()

		drivers := a.finance.RevenueDrivers()
		names := make([]string, 0, len(drivers))
		for name := range drivers {
			names = append(names, name)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintf(out, "%-24s %-8s %s\n", name, drivers[name].Type, drivers[name].Unit)
		}
		return nil
	},
}
