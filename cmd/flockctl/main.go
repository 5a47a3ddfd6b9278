package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ayamprima/flockcore/internal/cache"
	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/export"
	"github.com/ayamprima/flockcore/internal/repository/postgres"
	"github.com/ayamprima/flockcore/internal/service"
	"github.com/ayamprima/flockcore/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openServices(c *cli.Context) (*service.FlockService, *service.ExecutiveService, func(), error) {
	raw, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := raw.Ping(); err != nil {
		raw.Close()
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := postgres.NewDBFromSqlx(sqlx.NewDb(raw, "pgx"))
	cfg := config.Load()

	flockService := service.NewFlockService(
		postgres.NewFlockRepository(db),
		postgres.NewLogRepository(db),
		postgres.NewHatchabilityRepository(db),
		postgres.NewStandardRepository(db),
		cache.NewNoopChartCache(),
		cache.NewNoopDashboardCache(),
		cfg.Engine,
	)
	executiveService := service.NewExecutiveService(flockService, cache.NewNoopDashboardCache(), cfg.Engine)

	return flockService, executiveService, func() { raw.Close() }, nil
}

func runEnrich(c *cli.Context) error {
	flockService, _, closeDB, err := openServices(c)
	if err != nil {
		return err
	}
	defer closeDB()

	series, err := flockService.GetSeries(c.Context, c.String("flock"))
	if err != nil {
		return err
	}

	fmt.Printf("flock %s: %d days, %d weeks, lay offset %d\n",
		series.Flock.ID, len(series.Days), len(series.Weekly), series.LayOffset)
	if series.Baseline != nil {
		fmt.Printf("baseline diff: male %+d, female %+d\n",
			series.Baseline.DiffMale, series.Baseline.DiffFemale)
	}
	for _, w := range series.Warnings {
		fmt.Printf("warning [%s] %s: %s\n", w.Code, w.Date.Format("2006-01-02"), w.Message)
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(series)
	}
	return nil
}

func runExport(c *cli.Context) error {
	flockService, _, closeDB, err := openServices(c)
	if err != nil {
		return err
	}
	defer closeDB()

	cfg := config.Load()
	var archive export.ObjectStorage
	if cfg.Archive.Enabled {
		a, err := export.NewMinioArchive(cfg.Archive)
		if err != nil {
			return err
		}
		archive = a
	}
	exporter := export.NewExporter(c.String("out-dir"), archive)

	flocks, seriesByFlock, err := flockService.EnrichAll(c.Context, "")
	if err != nil {
		return err
	}

	for i := range flocks {
		series := seriesByFlock[flocks[i].ID]
		paths, err := exporter.ExportFlock(c.Context, series)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Println(path)
		}
	}
	return nil
}

func runExecutive(c *cli.Context) error {
	_, executiveService, closeDB, err := openServices(c)
	if err != nil {
		return err
	}
	defer closeDB()

	var yearFilter *int
	if year := c.Int("year"); year > 0 {
		yearFilter = &year
	}

	report, err := executiveService.GetDashboard(c.Context, yearFilter)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "flockctl",
		Usage: "Operational tooling for the flock metrics engine",
		Commands: []*cli.Command{
			{
				Name:  "enrich",
				Usage: "Run the engine for one flock and print a summary",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "flock",
						Usage:    "Flock identifier",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Dump the full enriched series as JSON",
					},
				},
				Action: runEnrich,
			},
			{
				Name:  "export",
				Usage: "Write daily and weekly CSV reports for every flock",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "out-dir",
						Usage:   "Directory for the CSV files",
						Value:   "./data/exports",
						EnvVars: []string{"APP_EXPORT_DIR"},
					},
				},
				Action: runExport,
			},
			{
				Name:  "executive",
				Usage: "Print the executive ISO aggregation as JSON",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "year",
						Usage: "Restrict to one calendar year",
					},
				},
				Action: runExecutive,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("flockctl failed")
	}
}
