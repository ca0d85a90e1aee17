package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/b3-extractor/internal/catalog"
	"github.com/rxtech-lab/b3-extractor/internal/opener"
	"github.com/rxtech-lab/b3-extractor/internal/version"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider"
)

// tuiAction runs the interactive form.
func tuiAction(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	m := NewModel(ModelOptions{
		Catalog:    a.catalog,
		Pipeline:   a.pipeline,
		OutputDir:  a.cfg.OutputDir,
		Interval:   a.cfg.DefaultInterval(),
		Format:     a.cfg.DefaultFormat(),
		Now:        time.Now,
		OpenFolder: opener.Open,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}

// tickersAction lists the catalog, filtered by an optional query.
func tickersAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	tickers, err := catalog.Load(cfg.CatalogCandidates(catalog.ExecutableDir()), log)
	if err != nil {
		return err
	}

	names := tickers.Names()
	if query := strings.Join(cmd.Args().Slice(), " "); query != "" {
		names = tickers.Search(query)
	}

	for _, name := range names {
		fmt.Fprintln(cmd.Root().Writer, name)
	}

	return nil
}

// openAction reveals the output folder.
func openAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	return opener.Open(cfg.OutputDir)
}

// versionAction prints the build version.
func versionAction(_ context.Context, cmd *cli.Command) error {
	fmt.Fprintf(cmd.Root().Writer, "b3-extractor %s\n", version.GetVersion())
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "b3-extractor",
		Usage:   "Extract historical B3 stock prices to CSV or XLSX",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file (defaults to the user config directory)",
			},
		},
		Action: tuiAction,
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Fetch one ticker without the interactive form",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Ticker code (PETR4, PETR4.SA) or catalog name (\"Petrobras - PETR4.SA\")",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Start date in `YYYY-MM-DD` format. Defaults to the day before the end date.",
						Config: cli.TimestampConfig{
							Layouts:  []string{marketdata.DateLayout},
							Timezone: time.Local,
						},
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
						Config: cli.TimestampConfig{
							Layouts:  []string{marketdata.DateLayout},
							Timezone: time.Local,
						},
					},
					&cli.StringFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Bar interval: 1d, 5d, 1wk, 1mo or 3mo (defaults to the configured interval)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: CSV or XLSX (defaults to the configured format)",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Hide the progress spinner",
					},
				},
				Action: fetchAction,
			},
			{
				Name:      "tickers",
				Usage:     "List the ticker catalog",
				ArgsUsage: "[query]",
				Action:    tickersAction,
			},
			{
				Name:   "open",
				Usage:  "Open the output folder",
				Action: openAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "write",
						Usage: "Write the schema and a sample config into `DIR` instead of printing",
					},
				},
				Action: schemaAction,
			},
			{
				Name:   "version",
				Usage:  "Print the version",
				Action: versionAction,
			},
			{
				Name:  "providers",
				Usage: "List the supported market data providers",
				Action: func(_ context.Context, cmd *cli.Command) error {
					for _, name := range provider.GetSupportedProviders() {
						info, _ := provider.GetProviderInfo(name)
						fmt.Fprintf(cmd.Root().Writer, "%-8s %s\n", info.Name, info.Description)
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
