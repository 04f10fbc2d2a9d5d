package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/infrastructure/memory"
	"ArticleRecommender/internal/ports"
)

type searchRecorder struct {
	*memory.Store
	last ports.ArticleQuery
	err  error
}

func (s *searchRecorder) SearchArticles(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	return s.Store.SearchArticles(ctx, q)
}

func TestNewsSearchNormalizesQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query ports.ArticleQuery
		want  ports.ArticleQuery
	}{
		{
			name:  "defaults to fifty",
			query: ports.ArticleQuery{Text: "  rust ", Category: " Technology"},
			want:  ports.ArticleQuery{Text: "rust", Category: "technology", Limit: 50},
		},
		{
			name:  "caps large limits",
			query: ports.ArticleQuery{Limit: 500},
			want:  ports.ArticleQuery{Limit: 50},
		},
		{
			name:  "keeps small limits",
			query: ports.ArticleQuery{Limit: 3},
			want:  ports.ArticleQuery{Limit: 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &searchRecorder{Store: memory.NewStore(1)}
			got, err := NewNews(store, nil).Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got == nil {
				t.Fatalf("expected empty slice, got nil")
			}
			if store.last != tt.want {
				t.Fatalf("query = %+v, want %+v", store.last, tt.want)
			}
		})
	}
}

func TestNewsSearchLimitsResults(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(1)
	base := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 60; i++ {
		store.AddArticle(domain.Article{
			ID:          i,
			URL:         fmt.Sprintf("https://news.example.org/%d", i),
			Title:       fmt.Sprintf("Weekly review %d", i),
			Category:    "general",
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	got, err := NewNews(store, nil).Search(context.Background(), ports.ArticleQuery{Text: "review"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	if got[0].ID != 60 || got[49].ID != 11 {
		t.Fatalf("order = %d..%d, want 60..11", got[0].ID, got[49].ID)
	}
}

func TestNewsSearchPropagatesStorageFaults(t *testing.T) {
	t.Parallel()

	store := &searchRecorder{Store: memory.NewStore(1), err: errStorage}
	if _, err := NewNews(store, nil).Search(context.Background(), ports.ArticleQuery{}); !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
