package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
)

// Store keeps interactions and articles in process memory.
type Store struct {
	mu           sync.RWMutex
	articles     map[int64]domain.Article
	interactions []domain.Interaction
	pairs        map[[2]int64]struct{}
	rng          *rand.Rand
	now          func() time.Time
}

var _ ports.InteractionStore = (*Store)(nil)
var _ ports.ArticleCatalog = (*Store)(nil)

// NewStore builds an empty store. seed drives ports.OrderRandom queries.
func NewStore(seed uint64) *Store {
	return &Store{
		articles: make(map[int64]domain.Article),
		pairs:    make(map[[2]int64]struct{}),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:      time.Now,
	}
}

// AddArticle inserts an article unless one with the same ID or URL exists.
// It reports whether the article was stored.
func (s *Store) AddArticle(a domain.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[a.ID]; ok {
		return false
	}
	for _, existing := range s.articles {
		if a.URL != "" && existing.URL == a.URL {
			return false
		}
	}
	s.articles[a.ID] = a
	return true
}

// Pairs returns a copy of every interaction.
func (s *Store) Pairs(ctx context.Context) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Interaction, len(s.interactions))
	for i, in := range s.interactions {
		out[i] = domain.Interaction{ReaderID: in.ReaderID, ArticleID: in.ArticleID}
	}
	return out, nil
}

// SeenArticles returns the reader's interacted article ids, ascending.
func (s *Store) SeenArticles(ctx context.Context, readerID int64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for _, in := range s.interactions {
		if in.ReaderID == readerID {
			ids = append(ids, in.ArticleID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// RecordInteraction appends the interaction once per (reader, article).
func (s *Store) RecordInteraction(ctx context.Context, in domain.Interaction) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]int64{in.ReaderID, in.ArticleID}
	if _, ok := s.pairs[key]; ok {
		return false, nil
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	s.pairs[key] = struct{}{}
	s.interactions = append(s.interactions, in)
	return true, nil
}

// ArticlesByIDs returns displayable articles among ids, newest first.
func (s *Store) ArticlesByIDs(ctx context.Context, ids []int64, limit int) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Article
	for _, id := range ids {
		if a, ok := s.articles[id]; ok && a.Displayable() {
			out = append(out, a)
		}
	}
	sortNewest(out)
	return truncate(out, limit), nil
}

// ArticlesInCategories filters by category and exclusion set.
func (s *Store) ArticlesInCategories(ctx context.Context, q ports.CategoryQuery) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q.Categories) == 0 {
		return nil, nil
	}

	wanted := make(map[string]struct{}, len(q.Categories))
	for _, c := range q.Categories {
		wanted[c] = struct{}{}
	}
	excluded := make(map[int64]struct{}, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	s.mu.RLock()
	var out []domain.Article
	for _, a := range s.articles {
		if _, ok := wanted[a.Category]; !ok || !a.Displayable() {
			continue
		}
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		out = append(out, a)
	}
	s.mu.RUnlock()

	sortNewest(out)
	if q.Order == ports.OrderRandom {
		s.mu.Lock()
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		s.mu.Unlock()
	}
	return truncate(out, q.Limit), nil
}

// CategoriesOf counts the given articles per category.
func (s *Store) CategoriesOf(ctx context.Context, ids []int64) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, id := range ids {
		if a, ok := s.articles[id]; ok {
			counts[a.Category]++
		}
	}
	return counts, nil
}

// SearchArticles matches title or description case-insensitively, optionally within one category.
func (s *Store) SearchArticles(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(q.Text)

	s.mu.RLock()
	var out []domain.Article
	for _, a := range s.articles {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(a.Title), text) &&
			!strings.Contains(strings.ToLower(a.Description), text) {
			continue
		}
		out = append(out, a)
	}
	s.mu.RUnlock()

	sortNewest(out)
	return truncate(out, q.Limit), nil
}

func sortNewest(articles []domain.Article) {
	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].PublishedAt.Equal(articles[j].PublishedAt) {
			return articles[i].PublishedAt.After(articles[j].PublishedAt)
		}
		return articles[i].ID > articles[j].ID
	})
}

func truncate(articles []domain.Article, limit int) []domain.Article {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
