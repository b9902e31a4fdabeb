package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexload-backend/internal/domains/user/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) UpsertByGoogleID(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, google_id, display_name, email, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (google_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    image = EXCLUDED.image
		RETURNING id, google_id, display_name, email, image, created_at
	`

	stored := &model.User{}
	err := r.pool.QueryRow(ctx, query,
		uuid.New(),
		user.GoogleID,
		user.DisplayName,
		user.Email,
		user.Image,
		time.Now().UTC(),
	).Scan(
		&stored.ID,
		&stored.GoogleID,
		&stored.DisplayName,
		&stored.Email,
		&stored.Image,
		&stored.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return stored, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, google_id, display_name, email, image, created_at
		FROM users
		WHERE id = $1
	`

	user := &model.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.GoogleID,
		&user.DisplayName,
		&user.Email,
		&user.Image,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
