package content

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Repository interface {
	ListBanners(ctx context.Context) ([]Banner, error)
	ListArticles(ctx context.Context, limit, offset int) ([]Article, int, error)
	GetArticle(ctx context.Context, id int64) (*Article, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListBanners(ctx context.Context) ([]Banner, error) {
	query := `SELECT id, title, image_url, COALESCE(link_url, ''), position
		FROM banners WHERE is_active ORDER BY position, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.Position); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *repository) ListArticles(ctx context.Context, limit, offset int) ([]Article, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM articles WHERE published_at <= NOW()`,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Listings omit the body to keep payloads light.
	query := `SELECT id, title, COALESCE(summary, ''), COALESCE(cover_url, ''), published_at
		FROM articles WHERE published_at <= NOW()
		ORDER BY published_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.CoverURL, &a.PublishedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, a)
	}
	return result, total, rows.Err()
}

func (r *repository) GetArticle(ctx context.Context, id int64) (*Article, error) {
	query := `SELECT id, title, COALESCE(summary, ''), COALESCE(body, ''),
		COALESCE(cover_url, ''), published_at
		FROM articles WHERE id = $1 AND published_at <= NOW()`

	var a Article
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Summary, &a.Body, &a.CoverURL, &a.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
