package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/scipunch/feedlib/config"
	"github.com/scipunch/feedlib/document"
	"github.com/scipunch/feedlib/feed"
	"github.com/scipunch/feedlib/fetcher"
	"github.com/scipunch/feedlib/filter"
	"github.com/scipunch/feedlib/logging"
)

func main() {
	var (
		cfgPath    string
		fields     string
		outputPath string
		verbose    bool
	)
	flag.StringVar(&cfgPath, "config", config.DefaultPath(), "path to a TOML config")
	flag.StringVar(&fields, "fields", "", "comma separated fields to keep, e.g. title,link,published,summary")
	flag.StringVar(&outputPath, "o", "", "where to write parsed feeds as JSON")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	// Read config and create if default is missing
	conf, err := config.Read(cfgPath)
	if errors.Is(err, os.ErrNotExist) && cfgPath == config.DefaultPath() {
		if err := config.Write(cfgPath, conf); err != nil {
			log.Fatalf("failed to write default config with %s", err)
		}
	} else if err != nil {
		log.Fatalf("failed to read config with %s", err)
	}

	level := logging.ParseLevel(conf.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	selected := conf.Fields
	if fields != "" {
		selected = filter.ParseFields(fields)
	}
	if outputPath == "" {
		outputPath = conf.OutputPath
	}

	decoder := fetcher.FromConfig(conf.Fetch)
	library := feed.NewLibrary(logger, conf.Workers)
	for _, f := range conf.EnabledFeeds() {
		library.Add(feed.NewSource(f.URL,
			feed.WithTags(f.Tags...),
			feed.WithDecoder(decoder),
			feed.WithLogger(logger)))
	}
	if library.Len() == 0 {
		slog.Warn("no feeds configured", "config", cfgPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := library.ParseAll(ctx, selected...)
	slog.Info("fetched feeds", "sources", library.Len(), "parsed", len(results))

	if err := writeResults(outputPath, results); err != nil {
		log.Fatalf("failed to write results with %s", err)
	}
	slog.Info("results written", "path", outputPath)

	for _, src := range library.List() {
		slog.Info("feed", "source", src.String())
	}
	slog.Info("tags", "all", library.Tags())
}

func writeResults(outputPath string, results []document.Document) error {
	if results == nil {
		results = []document.Document{}
	}
	blob, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(outputPath, blob, 0644)
}
