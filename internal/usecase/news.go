package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
)

const maxSearchResults = 50

// News browses and searches the article catalog.
type News struct {
	catalog ports.ArticleCatalog
	logger  *slog.Logger
}

// NewNews wires the catalog used for searching.
func NewNews(catalog ports.ArticleCatalog, logger *slog.Logger) *News {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &News{catalog: catalog, logger: logger}
}

// Search returns the newest articles matching q, at most 50.
func (n *News) Search(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	if n.catalog == nil {
		return nil, fmt.Errorf("article catalog is not configured")
	}

	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	if q.Limit <= 0 || q.Limit > maxSearchResults {
		q.Limit = maxSearchResults
	}

	articles, err := n.catalog.SearchArticles(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	if len(articles) > q.Limit {
		articles = articles[:q.Limit]
	}
	if articles == nil {
		articles = []domain.Article{}
	}

	n.logger.Debug("catalog searched", "text", q.Text, "category", q.Category, "count", len(articles))
	return articles, nil
}
