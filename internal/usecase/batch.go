package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ArticleRecommender/internal/domain"
)

const defaultParallelism = 4

// RecommendMany evaluates several readers concurrently. Each request builds its own
// matrix, so the only shared state is the read-only store. The first failure cancels
// the remaining requests.
func (r *Recommender) RecommendMany(ctx context.Context, readerIDs []int64, parallelism int) ([]domain.Recommendation, error) {
	if parallelism <= 0 {
		parallelism = defaultParallelism
	}

	results := make([]domain.Recommendation, len(readerIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, readerID := range readerIDs {
		g.Go(func() error {
			rec, err := r.Evaluate(gctx, readerID)
			if err != nil {
				return fmt.Errorf("reader %d: %w", readerID, err)
			}
			results[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
