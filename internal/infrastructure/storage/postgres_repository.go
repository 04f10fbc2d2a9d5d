package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ArticleRecommender/internal/domain"
	"ArticleRecommender/internal/ports"
)

const (
	articlesTable     = "articles"
	interactionsTable = "user_interactions"
	displayableClause = "COALESCE(image_url, '') <> ''"
	newestFirst       = "published_at DESC NULLS LAST"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var articleColumns = []string{"id", "title", "description", "url", "image_url", "published_at", "source", "category"}

// PostgresRepository serves interactions and articles from Postgres.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.InteractionStore = (*PostgresRepository)(nil)
var _ ports.ArticleCatalog = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Pairs scans every (user_id, article_id) row.
func (r *PostgresRepository) Pairs(ctx context.Context) ([]domain.Interaction, error) {
	query, args, err := r.sb.Select("user_id", "article_id").From(interactionsTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pairs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pairs: %w", err)
	}
	defer rows.Close()

	var pairs []domain.Interaction
	for rows.Next() {
		var in domain.Interaction
		if err := rows.Scan(&in.ReaderID, &in.ArticleID); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return pairs, nil
}

// SeenArticles returns the distinct article ids the reader interacted with.
func (r *PostgresRepository) SeenArticles(ctx context.Context, readerID int64) ([]int64, error) {
	query, args, err := r.sb.Select("article_id").Distinct().
		From(interactionsTable).
		Where(sq.Eq{"user_id": readerID}).
		OrderBy("article_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build seen query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query seen: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return ids, nil
}

// RecordInteraction inserts the interaction, leaving an existing (user, article) row untouched.
func (r *PostgresRepository) RecordInteraction(ctx context.Context, in domain.Interaction) (bool, error) {
	kind := in.Kind
	if kind == "" {
		kind = domain.KindClick
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert(interactionsTable).
		Columns("user_id", "article_id", "interaction_type", "created_at").
		Values(in.ReaderID, in.ArticleID, string(kind), createdAt).
		Suffix("ON CONFLICT (user_id, article_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert interaction: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert interaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected > 0, nil
}

// ArticlesByIDs loads displayable articles among ids, newest first.
func (r *PostgresRepository) ArticlesByIDs(ctx context.Context, ids []int64, limit int) ([]domain.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	builder := r.sb.Select(articleColumns...).
		From(articlesTable).
		Where("id = ANY(?)", pq.Array(ids)).
		Where(displayableClause).
		OrderBy(newestFirst, "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return r.queryArticles(ctx, builder)
}

// ArticlesInCategories loads displayable articles from the given categories minus exclusions.
func (r *PostgresRepository) ArticlesInCategories(ctx context.Context, q ports.CategoryQuery) ([]domain.Article, error) {
	if len(q.Categories) == 0 {
		return nil, nil
	}

	builder := r.sb.Select(articleColumns...).
		From(articlesTable).
		Where("category = ANY(?)", pq.Array(q.Categories)).
		Where(displayableClause)
	if len(q.ExcludeIDs) > 0 {
		builder = builder.Where("NOT (id = ANY(?))", pq.Array(q.ExcludeIDs))
	}

	switch q.Order {
	case ports.OrderRandom:
		builder = builder.OrderBy("RANDOM()")
	default:
		builder = builder.OrderBy(newestFirst, "id DESC")
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	return r.queryArticles(ctx, builder)
}

// SearchArticles matches title or description with ILIKE, optionally within one category.
func (r *PostgresRepository) SearchArticles(ctx context.Context, q ports.ArticleQuery) ([]domain.Article, error) {
	builder := r.sb.Select(articleColumns...).From(articlesTable)
	if q.Text != "" {
		pattern := "%" + likeEscaper.Replace(q.Text) + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if q.Category != "" {
		builder = builder.Where(sq.Eq{"category": q.Category})
	}
	builder = builder.OrderBy(newestFirst, "id DESC")
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	return r.queryArticles(ctx, builder)
}

// CategoriesOf counts the given articles per category.
func (r *PostgresRepository) CategoriesOf(ctx context.Context, ids []int64) (map[string]int, error) {
	counts := make(map[string]int)
	if len(ids) == 0 {
		return counts, nil
	}

	query, args, err := r.sb.Select("category", "COUNT(*)").
		From(articlesTable).
		Where("id = ANY(?)", pq.Array(ids)).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return counts, nil
}

func (r *PostgresRepository) queryArticles(ctx context.Context, builder sq.SelectBuilder) ([]domain.Article, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var a domain.Article
	var title, description, image, source sql.NullString
	var publishedAt sql.NullTime
	if err := rows.Scan(&a.ID, &title, &description, &a.URL, &image, &publishedAt, &source, &a.Category); err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}

	a.Title = title.String
	a.Description = description.String
	a.ImageURL = image.String
	a.Source = source.String
	if publishedAt.Valid {
		a.PublishedAt = publishedAt.Time
	}
	return a, nil
}
