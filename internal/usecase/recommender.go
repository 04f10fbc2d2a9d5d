package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
	"ArticleRecommender/internal/recommend"
)

const (
	defaultNeighbors = 5
	defaultLimit     = 5
)

// ErrInvalidReader is returned for reader ids that cannot exist.
var ErrInvalidReader = errors.New("invalid reader id")

// Options tunes the hybrid engine.
type Options struct {
	Neighbors     int
	Limit         int
	Categories    recommend.CategoryPolicy
	FallbackOrder ports.Order
}

// RecommenderDeps wires the driven adapters into the recommender.
type RecommenderDeps struct {
	Interactions ports.InteractionStore
	Catalog      ports.ArticleCatalog
	Metrics      ports.Metrics
	Logger       *slog.Logger
	Options      Options
}

// Recommender combines collaborative filtering with a category fallback.
type Recommender struct {
	interactions ports.InteractionStore
	catalog      ports.ArticleCatalog
	metrics      ports.Metrics
	logger       *slog.Logger
	opts         Options
}

// NewRecommender constructs the engine, filling unset options with defaults.
func NewRecommender(deps RecommenderDeps) *Recommender {
	opts := deps.Options
	if opts.Neighbors <= 0 {
		opts.Neighbors = defaultNeighbors
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Categories == "" {
		opts.Categories = recommend.CategoriesAll
	}
	if opts.FallbackOrder == "" {
		opts.FallbackOrder = ports.OrderNewest
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Recommender{
		interactions: deps.Interactions,
		catalog:      deps.Catalog,
		metrics:      deps.Metrics,
		logger:       logger,
		opts:         opts,
	}
}

// Recommend returns up to Limit unseen articles for the reader.
func (r *Recommender) Recommend(ctx context.Context, readerID int64) ([]domain.Article, error) {
	rec, err := r.Evaluate(ctx, readerID)
	if err != nil {
		return nil, err
	}
	return rec.Articles, nil
}

// Evaluate runs one recommendation request and reports which stage answered it.
func (r *Recommender) Evaluate(ctx context.Context, readerID int64) (domain.Recommendation, error) {
	if readerID <= 0 {
		return domain.Recommendation{}, fmt.Errorf("%w: %d", ErrInvalidReader, readerID)
	}
	if r.interactions == nil || r.catalog == nil {
		return domain.Recommendation{}, fmt.Errorf("recommender is not configured")
	}

	start := time.Now()
	log := r.logger.With("request_id", uuid.NewString(), "reader_id", readerID)

	rec, err := r.evaluate(ctx, readerID, log)
	if err != nil {
		log.Debug("recommendation failed", "error", err)
		return domain.Recommendation{}, err
	}

	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.ObserveRecommendation(rec.Stage, len(rec.Articles), elapsed)
	}
	log.Info("recommendation served", "stage", rec.Stage, "count", len(rec.Articles), "elapsed", elapsed)
	return rec, nil
}

func (r *Recommender) evaluate(ctx context.Context, readerID int64, log *slog.Logger) (domain.Recommendation, error) {
	rec := domain.Recommendation{ReaderID: readerID, Stage: domain.StageEmpty, Articles: []domain.Article{}}

	pairs, err := r.interactions.Pairs(ctx)
	if err != nil {
		return rec, fmt.Errorf("load interactions: %w", err)
	}
	if len(pairs) == 0 {
		log.Debug("no interactions recorded")
		return rec, nil
	}

	articles, err := r.collaborative(ctx, readerID, pairs, log)
	if err != nil {
		return rec, err
	}
	if len(articles) > 0 {
		rec.Stage = domain.StageCollaborative
		rec.Articles = articles
		return rec, nil
	}

	articles, err = r.fallback(ctx, readerID, log)
	if err != nil {
		return rec, err
	}
	if len(articles) > 0 {
		rec.Stage = domain.StageFallback
		rec.Articles = articles
	}
	return rec, nil
}

func (r *Recommender) collaborative(ctx context.Context, readerID int64, pairs []domain.Interaction, log *slog.Logger) ([]domain.Article, error) {
	m := recommend.BuildMatrix(pairs)
	if m.Len() < 2 {
		log.Debug("collaborative stage skipped", "reason", "single reader", "readers", m.Len())
		return nil, nil
	}
	if !m.HasReader(readerID) {
		log.Debug("collaborative stage skipped", "reason", "reader has no interactions")
		return nil, nil
	}

	neighbors := m.Neighbors(readerID, r.opts.Neighbors)
	candidates := m.Candidates(readerID, neighbors)
	log.Debug("collaborative candidates", "neighbors", len(neighbors), "candidates", len(candidates))
	if len(candidates) == 0 {
		return nil, nil
	}

	articles, err := r.catalog.ArticlesByIDs(ctx, candidates, r.opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}
	return materialize(articles, r.opts.Limit), nil
}

func (r *Recommender) fallback(ctx context.Context, readerID int64, log *slog.Logger) ([]domain.Article, error) {
	seen, err := r.interactions.SeenArticles(ctx, readerID)
	if err != nil {
		return nil, fmt.Errorf("load seen articles: %w", err)
	}
	if len(seen) == 0 {
		log.Debug("fallback skipped", "reason", "no history")
		return nil, nil
	}

	counts, err := r.catalog.CategoriesOf(ctx, seen)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	favorites := recommend.FavoriteCategories(counts, r.opts.Categories)
	log.Debug("fallback categories", "policy", r.opts.Categories, "favorites", favorites)
	if len(favorites) == 0 {
		return nil, nil
	}

	articles, err := r.catalog.ArticlesInCategories(ctx, ports.CategoryQuery{
		Categories: favorites,
		ExcludeIDs: seen,
		Order:      r.opts.FallbackOrder,
		Limit:      r.opts.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query fallback articles: %w", err)
	}
	if len(articles) > r.opts.Limit {
		articles = articles[:r.opts.Limit]
	}
	return articles, nil
}

// materialize keeps displayable articles, newest first, at most limit.
func materialize(articles []domain.Article, limit int) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.Displayable() {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
