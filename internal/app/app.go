package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ArticleRecommender/internal/config"
	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/infrastructure/memory"
	"ArticleRecommender/internal/infrastructure/metrics"
	"ArticleRecommender/internal/infrastructure/storage"
	"ArticleRecommender/internal/logging"
	"ArticleRecommender/internal/ports"
	"ArticleRecommender/internal/recommend"
	"ArticleRecommender/internal/usecase"
)

// Stores groups the adapters backing the engine.
type Stores struct {
	Interactions ports.InteractionStore
	Catalog      ports.ArticleCatalog
	Close        func() error
}

// OpenPostgres connects to the configured database, applying the schema when
// cfg.Database.Bootstrap is set.
func OpenPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (Stores, error) {
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return Stores{}, err
	}

	if cfg.Database.Bootstrap {
		if err := storage.Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return Stores{}, err
		}
		logger.Info("schema applied")
	}

	repo := storage.NewPostgresRepository(db)
	return Stores{Interactions: repo, Catalog: repo, Close: db.Close}, nil
}

// DemoStores returns in-memory stores seeded with sample data.
func DemoStores(seed uint64) Stores {
	store := memory.Demo(seed)
	return Stores{Interactions: store, Catalog: store}
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	stores      Stores
	metrics     *metrics.Recorder
	recommender *usecase.Recommender
	clicks      *usecase.Clicks
	news        *usecase.News
}

// New builds a runnable application instance over the given stores.
func New(cfg config.Config, stores Stores, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging)
	}
	if stores.Interactions == nil || stores.Catalog == nil {
		return nil, errors.New("stores are not configured")
	}

	policy, err := recommend.ParseCategoryPolicy(cfg.Recommender.FavoriteCategories)
	if err != nil {
		return nil, fmt.Errorf("favorite categories: %w", err)
	}

	recorder := metrics.NewRecorder()
	recommender := usecase.NewRecommender(usecase.RecommenderDeps{
		Interactions: stores.Interactions,
		Catalog:      stores.Catalog,
		Metrics:      recorder,
		Logger:       baseLogger.With("component", "recommender"),
		Options: usecase.Options{
			Neighbors:     cfg.Recommender.Neighbors,
			Limit:         cfg.Recommender.Limit,
			Categories:    policy,
			FallbackOrder: ports.Order(cfg.Recommender.FallbackOrder),
		},
	})
	clicks := usecase.NewClicks(stores.Interactions, recorder, baseLogger.With("component", "clicks"))
	news := usecase.NewNews(stores.Catalog, baseLogger.With("component", "news"))

	return &Application{
		cfg:         cfg,
		logger:      baseLogger,
		stores:      stores,
		metrics:     recorder,
		recommender: recommender,
		clicks:      clicks,
		news:        news,
	}, nil
}

// Recommend evaluates every reader, in parallel up to the configured limit.
func (a *Application) Recommend(ctx context.Context, readerIDs []int64) ([]domain.Recommendation, error) {
	if len(readerIDs) == 0 {
		return nil, errors.New("no reader ids given")
	}
	return a.recommender.RecommendMany(ctx, readerIDs, a.cfg.Recommender.Parallelism)
}

// RecordClick stores a reader's click on an article.
func (a *Application) RecordClick(ctx context.Context, readerID, articleID int64) error {
	return a.clicks.Record(ctx, readerID, articleID)
}

// SearchNews lists catalog articles matching the query, newest first.
func (a *Application) SearchNews(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	return a.news.Search(ctx, q)
}

// Close flushes metrics and releases the stores.
func (a *Application) Close() error {
	var errs []error
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
		errs = append(errs, err)
	}
	if a.stores.Close != nil {
		if err := a.stores.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close stores: %w", err))
		}
	}
	return errors.Join(errs...)
}
