// Package posts provides PostgreSQL-backed storage for posts.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts post. A dangling author reference yields common.ErrNotFound
// and empty content yields common.ErrValidation.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO posts (id, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, post.ID, post.Content, post.AuthorID).
		Scan(&post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if _, ok := dbx.ForeignKeyViolation(err); ok || dbx.InvalidTextRepresentation(err) {
			return nil, fmt.Errorf("author %s: %w", post.AuthorID, common.ErrNotFound)
		}
		if _, ok := dbx.CheckViolation(err); ok {
			return nil, fmt.Errorf("post content is empty: %w", common.ErrValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// FindByID returns the post with the given id. Ids that are not uuids
// yield common.ErrNotFound like any other unknown id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT id, content, author_id, created_at, updated_at FROM posts
		 WHERE id = $1
		 `

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.InvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// ListByAuthor returns up to limit posts of authorID, newest first.
func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error) {
	query :=
		`SELECT id, content, author_id, created_at, updated_at FROM posts
		 WHERE author_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, authorID, limit)
	if err != nil {
		if dbx.InvalidTextRepresentation(err) {
			return []*models.Post{}, nil
		}
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
