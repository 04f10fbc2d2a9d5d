package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
)

// ErrInvalidArticle is returned for article ids that cannot exist.
var ErrInvalidArticle = errors.New("invalid article id")

// Clicks records reader clicks.
type Clicks struct {
	store   ports.InteractionStore
	metrics ports.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewClicks wires the interaction store used for recording.
func NewClicks(store ports.InteractionStore, metrics ports.Metrics, logger *slog.Logger) *Clicks {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Clicks{store: store, metrics: metrics, logger: logger, now: time.Now}
}

// Record stores a click once per (reader, article); repeated clicks are no-ops.
func (c *Clicks) Record(ctx context.Context, readerID, articleID int64) error {
	if readerID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReader, readerID)
	}
	if articleID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidArticle, articleID)
	}
	if c.store == nil {
		return fmt.Errorf("interaction store is not configured")
	}

	inserted, err := c.store.RecordInteraction(ctx, domain.Interaction{
		ReaderID:  readerID,
		ArticleID: articleID,
		Kind:      domain.KindClick,
		CreatedAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record click: %w", err)
	}

	if c.metrics != nil {
		c.metrics.ObserveClick(inserted)
	}
	c.logger.Debug("click recorded", "reader_id", readerID, "article_id", articleID, "inserted", inserted)
	return nil
}
