package ports

import (
	"context"
	"time"

	"ArticleRecommender/internal/domain"
)

// InteractionStore exposes the reader/article interaction relation.
type InteractionStore interface {
	// Pairs returns every recorded interaction; only reader and article ids are populated.
	Pairs(ctx context.Context) ([]domain.Interaction, error)
	// SeenArticles returns the ids of articles the reader has interacted with.
	SeenArticles(ctx context.Context, readerID int64) ([]int64, error)
	// RecordInteraction inserts the interaction unless the (reader, article) pair exists.
	// It reports whether a new row was written.
	RecordInteraction(ctx context.Context, in domain.Interaction) (bool, error)
}

// Order selects how catalog queries sort their result.
type Order string

const (
	OrderNewest Order = "newest"
	OrderRandom Order = "random"
)

// CategoryQuery selects displayable articles from a set of categories.
type CategoryQuery struct {
	Categories []string
	ExcludeIDs []int64
	Order      Order
	Limit      int
}

// ArticleQuery searches the catalog by free text and category.
type ArticleQuery struct {
	// Text matches title or description, case-insensitively. Empty matches everything.
	Text string
	// Category restricts results to one category. Empty means any.
	Category string
	Limit    int
}

// ArticleCatalog resolves article records.
type ArticleCatalog interface {
	// ArticlesByIDs returns displayable articles among ids, newest first, at most limit.
	ArticlesByIDs(ctx context.Context, ids []int64, limit int) ([]domain.Article, error)
	// ArticlesInCategories returns displayable articles matching the query.
	ArticlesInCategories(ctx context.Context, q CategoryQuery) ([]domain.Article, error)
	// CategoriesOf counts the given articles per category.
	CategoriesOf(ctx context.Context, ids []int64) (map[string]int, error)
	// SearchArticles returns articles matching the query, newest first, at most Limit.
	SearchArticles(ctx context.Context, q ArticleQuery) ([]domain.Article, error)
}

// Metrics records engine outcomes.
type Metrics interface {
	ObserveRecommendation(stage domain.Stage, count int, elapsed time.Duration)
	ObserveClick(inserted bool)
}
