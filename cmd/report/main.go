// Package main provides a terminal listening report.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/olekukonko/tablewriter"
	zlog "github.com/rs/zerolog/log"

	"github.com/sonify-dev/sonify/internal/analysis/catalog"
	"github.com/sonify-dev/sonify/internal/analysis/features"
	"github.com/sonify-dev/sonify/internal/analysis/insight"
	"github.com/sonify-dev/sonify/internal/analysis/temporal"
	"github.com/sonify-dev/sonify/internal/domain/listening"
	"github.com/sonify-dev/sonify/internal/infra/config"
	"github.com/sonify-dev/sonify/internal/infra/export"
	"github.com/sonify-dev/sonify/internal/infra/logger"
	"github.com/sonify-dev/sonify/internal/infra/spotify"
)

var (
	app        = kingpin.New("sonify-report", "Print a listening report to the terminal")
	configPath = app.Flag("config", "Path to config file").Default("~/.sonify/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	doExport   = app.Flag("export", "Also write CSV exports").Bool()
)

func main() {
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Level: "warn", Output: "stderr"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	path, err := homedir.Expand(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to expand config path: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Report error: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	client, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to create Spotify client: %w", err)
	}

	timeRange := spotify.TimeRange(cfg.Analysis.TimeRange)

	tracks, err := client.TopTracks(ctx, cfg.Analysis.TopItemsLimit, timeRange)
	if err != nil {
		return fmt.Errorf("failed to fetch top tracks: %w", err)
	}

	artists, err := client.TopArtists(ctx, cfg.Analysis.TopItemsLimit, timeRange)
	if err != nil {
		return fmt.Errorf("failed to fetch top artists: %w", err)
	}

	history, err := client.RecentlyPlayed(ctx, cfg.Analysis.RecentLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch listening history: %w", err)
	}

	batch, err := client.AudioFeatures(ctx, tracks)
	if err != nil {
		return fmt.Errorf("failed to fetch audio features: %w", err)
	}

	events := listening.NormalizeHistory(history)
	_, _, patterns := temporal.Aggregate(events)

	summary := features.Summarize(features.AlignWithTracks(tracks, batch))
	moods := features.MoodProfile(summary)
	observations := insight.Generate(summary, &patterns)

	if err := printTracks(tracks); err != nil {
		return err
	}
	if err := printArtists(artists); err != nil {
		return err
	}
	if err := printGenres(catalog.TopGenres(artists, cfg.Analysis.GenreChartLimit)); err != nil {
		return err
	}
	printPatterns(patterns)
	printMoods(moods)
	printObservations(observations)

	if *doExport {
		writer, err := export.NewWriter(cfg.Export.Dir)
		if err != nil {
			return fmt.Errorf("failed to prepare export directory: %w", err)
		}
		files, err := writer.Export(tracks, artists)
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}
		fmt.Println("\nExported:")
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
	}

	return nil
}

func printTracks(tracks []listening.TrackSummary) error {
	fmt.Println("\nTop Tracks")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "Track", "Artist", "Popularity", "Duration"})
	for i, t := range tracks {
		err := table.Append([]string{
			strconv.Itoa(i + 1),
			t.Name,
			t.PrimaryArtist,
			strconv.Itoa(t.Popularity),
			export.FormatDuration(t.Duration),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func printArtists(artists []listening.ArtistSummary) error {
	fmt.Println("\nTop Artists")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "Artist", "Popularity", "Followers"})
	for i, a := range artists {
		err := table.Append([]string{
			strconv.Itoa(i + 1),
			a.Name,
			strconv.Itoa(a.Popularity),
			strconv.FormatUint(uint64(a.Followers), 10),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func printGenres(genres []catalog.GenreCount) error {
	if len(genres) == 0 {
		return nil
	}
	fmt.Println("\nTop Genres")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Genre", "Count"})
	for _, g := range genres {
		if err := table.Append([]string{g.Genre, strconv.Itoa(g.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func printPatterns(patterns temporal.PatternReport) {
	fmt.Println("\nListening Patterns")
	fmt.Printf("  Most active hour:     %d:00\n", patterns.MostActiveHour)
	fmt.Printf("  Most active day:      %s\n", patterns.MostActiveDay)
	fmt.Printf("  Sessions analyzed:    %d\n", patterns.TotalSessions)
	fmt.Printf("  Avg sessions per day: %.1f\n", patterns.AvgSessionsPerDay)
}

func printMoods(moods map[features.MoodAspect]string) {
	if len(moods) == 0 {
		return
	}
	fmt.Println("\nMood Profile")
	for _, aspect := range []features.MoodAspect{features.AspectEnergy, features.AspectMood, features.AspectDance, features.AspectAcoustic} {
		if label, ok := moods[aspect]; ok {
			fmt.Printf("  %s\n", label)
		}
	}
}

func printObservations(observations []string) {
	if len(observations) == 0 {
		return
	}
	fmt.Println("\nInsights")
	for _, o := range observations {
		fmt.Printf("  - %s\n", o)
	}
}
