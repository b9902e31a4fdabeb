package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"nexload-backend/internal/domains/resource/model"
	"nexload-backend/pkg/cache"
)

const (
	statsCacheKey = "stats:v1"
	statsCacheTTL = 30 * time.Second
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) ResourceRepository {
	return &postgresRepository{pool: pool, cache: cache}
}

const resourceColumns = `id, title, description, category, tags, author, image_url, file_url, downloads, created_at, user_id`

func scanResource(row pgx.Row) (*model.Resource, error) {
	res := &model.Resource{}
	var tags []string

	err := row.Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.Category,
		pq.Array(&tags),
		&res.Author,
		&res.ImageURL,
		&res.FileURL,
		&res.Downloads,
		&res.CreatedAt,
		&res.UserID,
	)
	if err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	res.Tags = tags
	return res, nil
}

func (r *postgresRepository) collectResources(rows pgx.Rows) ([]model.Resource, error) {
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return resources, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, res *model.Resource) error {
	query := `
		INSERT INTO resources (
			title, description, category, tags, author,
			image_url, file_url, downloads, created_at, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		res.Title,
		res.Description,
		res.Category,
		pq.Array(res.Tags),
		res.Author,
		res.ImageURL,
		res.FileURL,
		res.Downloads,
		res.CreatedAt,
		res.UserID,
	).Scan(&res.ID)

	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	r.invalidateStats(ctx)
	return nil
}

// =====================================================
// LIST / SEARCH
// =====================================================

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]model.Resource, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM resources
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, resourceColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resources query failed: %w", err)
	}

	return r.collectResources(rows)
}

func (r *postgresRepository) Search(ctx context.Context, query string) ([]model.Resource, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM resources
		WHERE title ILIKE '%%' || $1 || '%%'
		   OR description ILIKE '%%' || $1 || '%%'
		ORDER BY created_at DESC
	`, resourceColumns)

	rows, err := r.pool.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	return r.collectResources(rows)
}

// =====================================================
// GET BY ID (with owner projection)
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.ResourceWithOwner, error) {
	query := `
		SELECT
			r.id, r.title, r.description, r.category, r.tags, r.author,
			r.image_url, r.file_url, r.downloads, r.created_at, r.user_id,
			u.display_name, u.image
		FROM resources r
		LEFT JOIN users u ON r.user_id = u.id
		WHERE r.id = $1
	`

	res := &model.ResourceWithOwner{}
	var tags []string
	var ownerName, ownerImage *string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.Category,
		pq.Array(&tags),
		&res.Author,
		&res.ImageURL,
		&res.FileURL,
		&res.Downloads,
		&res.CreatedAt,
		&res.UserID,
		&ownerName,
		&ownerImage,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	if tags == nil {
		tags = []string{}
	}
	res.Tags = tags

	if ownerName != nil {
		owner := &model.OwnerInfo{DisplayName: *ownerName}
		if ownerImage != nil {
			owner.Image = *ownerImage
		}
		res.Owner = owner
	}

	return res, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resource, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM resources
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, resourceColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user resources query failed: %w", err)
	}

	return r.collectResources(rows)
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, res *model.Resource) error {
	query := `
		UPDATE resources
		SET title = $1, description = $2, category = $3, tags = $4,
		    author = $5, image_url = $6, file_url = $7
		WHERE id = $8
	`

	tag, err := r.pool.Exec(ctx, query,
		res.Title,
		res.Description,
		res.Category,
		pq.Array(res.Tags),
		res.Author,
		res.ImageURL,
		res.FileURL,
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrResourceNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrResourceNotFound
	}

	r.invalidateStats(ctx)
	return nil
}

// =====================================================
// DOWNLOAD COUNTER
// =====================================================

// IncrementDownloads relies on a single UPDATE so concurrent downloads
// never under-count.
func (r *postgresRepository) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	var downloads int64
	err := r.pool.QueryRow(ctx, `
		UPDATE resources
		SET downloads = downloads + 1
		WHERE id = $1
		RETURNING downloads
	`, id).Scan(&downloads)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrResourceNotFound
		}
		return 0, fmt.Errorf("failed to increment downloads: %w", err)
	}

	return downloads, nil
}

// =====================================================
// STATS
// =====================================================

// AggregateStats runs the three count queries concurrently (they are
// independent and not transactional) and caches the result briefly.
func (r *postgresRepository) AggregateStats(ctx context.Context) (*model.Stats, error) {
	if r.cache != nil {
		cached := &model.Stats{}
		if found, err := r.cache.Get(ctx, statsCacheKey, cached); err == nil && found {
			return cached, nil
		}
	}

	stats := &model.Stats{}
	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources`).Scan(&stats.Resources)
	}()
	go func() {
		defer wg.Done()
		errs[1] = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.Users)
	}()
	go func() {
		defer wg.Done()
		errs[2] = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(downloads), 0) FROM resources`).Scan(&stats.Downloads)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("stats query failed: %w", err)
		}
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL)
	}

	return stats, nil
}

func (r *postgresRepository) invalidateStats(ctx context.Context) {
	if r.cache != nil {
		_ = r.cache.Delete(ctx, statsCacheKey)
	}
}

// =====================================================
// ORPHAN SWEEP SUPPORT
// =====================================================

func (r *postgresRepository) AllObjectURLs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_url, file_url FROM resources`)
	if err != nil {
		return nil, fmt.Errorf("object urls query failed: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var imageURL, fileURL string
		if err := rows.Scan(&imageURL, &fileURL); err != nil {
			return nil, fmt.Errorf("failed to scan object urls: %w", err)
		}
		urls = append(urls, imageURL, fileURL)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return urls, nil
}
