package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ArticleRecommender/internal/config"
	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
	"ArticleRecommender/internal/usecase"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Database: config.DatabaseConfig{DSN: "postgres://unused", MaxOpenConns: 1},
		Logging:  config.LoggingConfig{Level: "error", Format: "text"},
		Recommender: config.RecommenderConfig{
			Neighbors:          5,
			Limit:              5,
			FavoriteCategories: "all",
			FallbackOrder:      "newest",
			Parallelism:        2,
		},
		Metrics: config.MetricsConfig{TextfilePath: filepath.Join(t.TempDir(), "recommender.prom")},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplicationRecommendAndClick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := testConfig(t)
	application, err := New(cfg, DemoStores(1), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := application.RecordClick(ctx, 9, 40); err != nil {
		t.Fatalf("RecordClick: %v", err)
	}

	recs, err := application.Recommend(ctx, []int64{1, 9, 77})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d results", len(recs))
	}
	if recs[1].Stage != domain.StageFallback {
		t.Fatalf("reader 9 clicked once and is alone in its category cluster, stage = %s", recs[1].Stage)
	}
	for _, a := range recs[1].Articles {
		if a.ID == 40 {
			t.Fatalf("reader 9 was recommended an article already clicked")
		}
	}
	if recs[2].Stage != domain.StageEmpty {
		t.Fatalf("reader 77 has no history, stage = %s", recs[2].Stage)
	}

	if err := application.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	raw, err := os.ReadFile(cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(raw), "recommender_requests_total") {
		t.Fatalf("metrics textfile missing counters:\n%s", raw)
	}
}

func TestApplicationSearchNews(t *testing.T) {
	t.Parallel()

	application, err := New(testConfig(t), DemoStores(1), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	all, err := application.SearchNews(context.Background(), ports.ArticleQuery{})
	if err != nil {
		t.Fatalf("SearchNews: %v", err)
	}
	if len(all) != 42 {
		t.Fatalf("browse returned %d articles, want the whole demo catalog", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].PublishedAt.After(all[i-1].PublishedAt) {
			t.Fatalf("articles not newest first at %d", i)
		}
	}

	tech, err := application.SearchNews(context.Background(), ports.ArticleQuery{Text: "coverage", Category: "technology"})
	if err != nil {
		t.Fatalf("SearchNews: %v", err)
	}
	if len(tech) != 6 {
		t.Fatalf("technology search returned %d articles, want 6", len(tech))
	}
}

func TestApplicationRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	application, err := New(testConfig(t), DemoStores(1), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := application.Recommend(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty reader list")
	}
	if err := application.RecordClick(context.Background(), -1, 2); !errors.Is(err, usecase.ErrInvalidReader) {
		t.Fatalf("expected ErrInvalidReader, got %v", err)
	}
}

func TestNewRequiresStores(t *testing.T) {
	t.Parallel()

	if _, err := New(testConfig(t), Stores{}, discard()); err == nil {
		t.Fatalf("expected error without stores")
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Recommender.FavoriteCategories = "most"
	if _, err := New(cfg, DemoStores(1), discard()); err == nil {
		t.Fatalf("expected policy error")
	}
}
