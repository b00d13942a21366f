package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"title-lens/chart"
	"title-lens/config"
	"title-lens/dataset"
	"title-lens/report"
	"title-lens/storage"
	"title-lens/summary"
)

func main() {
	// Initialize logger with timestamp
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	app := &cli.App{
		Name:  "title-lens",
		Usage: "Summarize a Netflix titles CSV into charts, terminal tables and an HTML report.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
		},
		DefaultCommand: "analyze",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Load the dataset and render every aggregate",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "data", Usage: "path to the titles CSV"},
					&cli.StringFlag{Name: "out", Usage: "directory for charts and the HTML report"},
					&cli.IntFlag{Name: "top-countries", Usage: "how many countries to keep in the ranking"},
					&cli.IntFlag{Name: "top-genres", Usage: "how many genres to keep in the ranking"},
				},
				Action: runAnalyze,
			},
			{
				Name:  "import",
				Usage: "Load the dataset and persist it to the local SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "data", Usage: "path to the titles CSV"},
					&cli.StringFlag{Name: "db", Usage: "directory holding the SQLite database"},
				},
				Action: runImport,
			},
			{
				Name:  "stats",
				Usage: "Print headline statistics from the SQLite database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "directory holding the SQLite database"},
				},
				Action: runStats,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveConfig layers CLI flags over the YAML/env configuration.
func resolveConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if v := c.String("data"); v != "" {
		cfg.Data.Path = v
	}
	if v := c.String("out"); v != "" {
		cfg.Output.Dir = v
	}
	if v := c.String("db"); v != "" {
		cfg.Database.Dir = v
	}
	if v := c.Int("top-countries"); v > 0 {
		cfg.Analysis.TopCountries = v
	}
	if v := c.Int("top-genres"); v > 0 {
		cfg.Analysis.TopGenres = v
	}

	return cfg, nil
}

func runAnalyze(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	dataPath := cfg.Data.Path
	if _, err := os.Stat(dataPath); os.IsNotExist(err) && c.String("data") == "" {
		// No flag and the default file is absent: ask before failing.
		huh.NewInput().
			Title("Path to the titles CSV").
			Value(&dataPath).
			Run()
	}

	var sum report.Summary
	analyze := func(ctx context.Context) error {
		result, err := dataset.Load(dataPath)
		if err != nil {
			return err
		}

		sum = summarize(dataPath, result, cfg)
		return renderCharts(sum, cfg.Output.Dir)
	}

	ctx := context.Background()
	if err := spinner.New().Title("Analyzing...").Context(ctx).ActionWithErr(analyze).Run(); err != nil {
		return err
	}

	report.PrintTables(os.Stdout, sum)

	writer, err := report.NewWriter()
	if err != nil {
		return err
	}
	reportPath := filepath.Join(cfg.Output.Dir, "summary.html")
	if err := writer.WriteHTML(sum, reportPath); err != nil {
		return err
	}

	log.Printf("Rows read: %d", sum.Rows)
	if skipped := sum.Skipped.Total(); skipped > 0 {
		log.Printf("Rows with defects: %d (missing type: %d, bad year: %d, empty genre: %d, bad date added: %d)",
			skipped, sum.Skipped.MissingType, sum.Skipped.BadYear,
			sum.Skipped.EmptyGenre, sum.Skipped.BadDateAdded)
	}
	log.Printf("Charts and report written to: %s", cfg.Output.Dir)

	return nil
}

// summarize computes every aggregate over the loaded dataset.
func summarize(dataPath string, result *dataset.LoadResult, cfg *config.Config) report.Summary {
	return report.Summary{
		DatasetPath: dataPath,
		Rows:        result.Rows,
		Skipped:     result.Skipped,
		Types:       summary.TypeDistribution(result.Titles),
		Countries:   summary.CountryDistribution(result.Titles, cfg.Analysis.TopCountries),
		Genres:      summary.GenreDistribution(result.Titles, cfg.Analysis.TopGenres),
		Years:       summary.YearTrend(result.Titles),
		Added:       summary.AddedTrend(result.Titles),
		ByCountry:   summary.TypeByCountry(result.Titles, cfg.Analysis.TopCountries),
	}
}

// renderCharts writes one chart artifact per aggregate.
func renderCharts(sum report.Summary, outDir string) error {
	if err := chart.Bar("Movies vs TV Shows", "Type", sum.Types,
		filepath.Join(outDir, "movies_vs_tv.html")); err != nil {
		return err
	}
	if err := chart.Bar(fmt.Sprintf("Top %d Countries Producing Netflix Content", len(sum.Countries)), "Country",
		sum.Countries, filepath.Join(outDir, "top_countries.html")); err != nil {
		return err
	}
	if err := chart.GroupedBar(fmt.Sprintf("Movies vs TV Shows by Country (Top %d)", len(sum.ByCountry.Labels)), "Country",
		sum.ByCountry, filepath.Join(outDir, "movies_vs_tv_by_country.html")); err != nil {
		return err
	}
	if err := chart.Line("Number of Netflix Titles Released Each Year", sum.Years,
		filepath.Join(outDir, "release_years.html")); err != nil {
		return err
	}
	if err := chart.Bar(fmt.Sprintf("Top %d Genres on Netflix", len(sum.Genres)), "Genre",
		sum.Genres, filepath.Join(outDir, "top_genres.html")); err != nil {
		return err
	}
	if len(sum.Added) > 0 {
		if err := chart.Line("Titles Added to the Catalog per Year", sum.Added,
			filepath.Join(outDir, "titles_added_per_year.html")); err != nil {
			return err
		}
	}
	return nil
}

func runImport(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	result, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		return err
	}

	sqliteStorage := storage.NewSQLiteStorage(cfg.Database.Dir)
	if err := sqliteStorage.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer sqliteStorage.Close()

	titles := make([]storage.Title, 0, len(result.Titles))
	for _, t := range result.Titles {
		titles = append(titles, storage.FromRecord(t))
	}

	count, err := sqliteStorage.ImportTitles(titles)
	if err != nil {
		return err
	}

	log.Printf("Imported %d titles from %s", count, cfg.Data.Path)
	if skipped := result.Skipped.Total(); skipped > 0 {
		log.Printf("Rows with defects: %d", skipped)
	}
	displayDatabaseStats(sqliteStorage)

	return nil
}

func runStats(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	sqliteStorage := storage.NewSQLiteStorage(cfg.Database.Dir)
	if err := sqliteStorage.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer sqliteStorage.Close()

	displayDatabaseStats(sqliteStorage)
	return nil
}

// displayDatabaseStats shows database statistics
func displayDatabaseStats(db *storage.SQLiteStorage) {
	log.Println("Database Statistics")

	stats, err := db.GetStats()
	if err != nil {
		log.Printf("Error getting database stats: %v", err)
		return
	}

	log.Printf("Total titles: %d", stats["total"])
	log.Printf("Movies: %d", stats["movies"])
	log.Printf("TV Shows: %d", stats["tv_shows"])

	// Show recent titles
	allTitles, err := db.GetAllTitles()
	if err != nil {
		log.Printf("Error getting titles: %v", err)
		return
	}

	limit := 5
	if len(allTitles) < limit {
		limit = len(allTitles)
	}

	log.Printf("Recent Titles (last %d):", limit)
	for i := 0; i < limit; i++ {
		title := allTitles[i]
		year := ""
		if title.ReleaseYear != nil {
			year = fmt.Sprintf(" (%d)", *title.ReleaseYear)
		}
		log.Printf("- %s%s [%s] - %s", title.Name, year, title.Type, title.Genres)
	}
}
