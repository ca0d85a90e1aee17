package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/b3-extractor/internal/catalog"
	"github.com/rxtech-lab/b3-extractor/internal/pipeline"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// fetchAction runs one request headless and prints the saved path.
func fetchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(cmd, false)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	req := buildRequest(cmd, a.catalog, a.cfg.DefaultInterval(), a.cfg.DefaultFormat(), time.Now())

	runner := a.pipeline
	if !cmd.Bool("quiet") {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(pipeline.StatusFetching),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()

		runner = runner.WithProgress(func(stage string) {
			bar.Describe(stage)
			_ = bar.Add(1)
		})
	}

	result, err := runner.Execute(ctx, req)
	if err != nil {
		report := pipeline.Report(result, err)
		return fmt.Errorf("%s: %s", report.Title, report.Text)
	}

	fmt.Fprintln(cmd.Root().Writer, result.Path)

	return nil
}

// buildRequest turns the fetch flags into a pipeline request. Unset dates
// follow the form defaults: end is today, start is the day before end.
func buildRequest(cmd *cli.Command, tickers *catalog.Catalog, interval marketdata.Interval, format marketdata.Format, now time.Time) pipeline.Request {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if cmd.IsSet("end") {
		end = cmd.Timestamp("end")
	}

	start := end.AddDate(0, 0, -1)
	if cmd.IsSet("start") {
		start = cmd.Timestamp("start")
	}

	if value := cmd.String("interval"); value != "" {
		interval = marketdata.Interval(strings.ToLower(strings.TrimSpace(value)))
	}

	if value := cmd.String("format"); value != "" {
		format = marketdata.Format(strings.ToUpper(strings.TrimSpace(value)))
	}

	return pipeline.Request{
		Company:   resolveCompany(tickers, cmd.String("ticker")),
		StartDate: optional.Some(start),
		EndDate:   optional.Some(end),
		Interval:  interval,
		Format:    format,
	}
}

// resolveCompany maps a ticker code or catalog name to its catalog display
// name. Unknown input is returned unchanged so the pipeline reports it.
func resolveCompany(tickers *catalog.Catalog, ticker string) string {
	ticker = strings.TrimSpace(ticker)
	if _, ok := tickers.Symbol(ticker); ok {
		return ticker
	}

	symbol := strings.ToUpper(ticker)
	if !strings.HasSuffix(symbol, catalog.SymbolSuffix) {
		symbol += catalog.SymbolSuffix
	}

	for _, entry := range tickers.Entries() {
		if entry.Symbol == symbol {
			return entry.DisplayName
		}
	}

	return ticker
}
