package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/storage"
	"net/http"
	"os"
	"time"
)

func main() {
	var (
		filePath string
		dumpURL  string
		limit    int
		replace  bool
	)

	flag.StringVar(&filePath, "file", "", "Path to a movies.json dump")
	flag.StringVar(&dumpURL, "url", "", "URL of a movies.json dump (used when -file is empty)")
	flag.IntVar(&limit, "limit", 0, "Limit number of records to import (0 = all)")
	flag.BoolVar(&replace, "replace", false, "Replace the stored catalog instead of merging into it")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if filePath == "" && dumpURL == "" {
		slog.Error("one of -file or -url is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("cannot open movie storage", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	incoming, err := readDump(ctx, filePath, dumpURL)
	if err != nil {
		slog.Error("failed to read dump", "error", err)
		os.Exit(1)
	}

	var existing []movie.Movie
	if !replace {
		if existing, err = repo.LoadAll(ctx); err != nil {
			slog.Error("cannot load stored catalog", "error", err)
			os.Exit(1)
		}
	}

	merged, report := mergeCatalog(existing, incoming, limit)
	for _, s := range report.Skipped {
		slog.Warn("skipped record", "id", s.ID, "title", s.Title, "reason", s.Reason)
	}

	if err := repo.SaveAll(ctx, merged); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed",
		"driver", cfg.Store.Driver,
		"added", report.Added,
		"skipped", len(report.Skipped),
		"total", len(merged),
	)
}

func readDump(ctx context.Context, filePath, dumpURL string) ([]movie.Movie, error) {
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return decodeDump(f)
	}

	body, err := download(ctx, dumpURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return decodeDump(body)
}

func download(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

func decodeDump(r io.Reader) ([]movie.Movie, error) {
	var movies []movie.Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	if movies == nil {
		return nil, errors.New("decode dump: expected a JSON array of movies")
	}
	return movies, nil
}

type skipped struct {
	ID     int64
	Title  string
	Reason string
}

type mergeReport struct {
	Added   int
	Skipped []skipped
}

// mergeCatalog appends valid incoming records to existing. Records with a
// missing or already used id, or that fail validation, are skipped. A
// positive limit caps the number of records added.
func mergeCatalog(existing, incoming []movie.Movie, limit int) ([]movie.Movie, mergeReport) {
	merged := make([]movie.Movie, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)

	seen := make(map[int64]struct{}, len(merged))
	for _, m := range existing {
		seen[m.ID] = struct{}{}
	}

	var report mergeReport
	for _, m := range incoming {
		if limit > 0 && report.Added == limit {
			break
		}
		if m.ID <= 0 {
			report.Skipped = append(report.Skipped, skipped{m.ID, m.Title, "missing id"})
			continue
		}
		if _, ok := seen[m.ID]; ok {
			report.Skipped = append(report.Skipped, skipped{m.ID, m.Title, "duplicate id"})
			continue
		}
		if err := m.Validate(); err != nil {
			report.Skipped = append(report.Skipped, skipped{m.ID, m.Title, err.Error()})
			continue
		}

		seen[m.ID] = struct{}{}
		merged = append(merged, m)
		report.Added++
	}
	return merged, report
}
