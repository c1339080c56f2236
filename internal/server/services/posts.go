package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	MaxPostLength    = 10_000
)

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores a post for authorID. The author check and the insert share
// one transaction, so a missing author leaves no row behind.
func (s *PostService) Create(ctx context.Context, authorID, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("post content is empty: %w", common.ErrValidation)
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return nil, fmt.Errorf("post content exceeds %d characters: %w", MaxPostLength, common.ErrValidation)
	}

	var post *models.Post

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.repomanager.Accounts(tx).Exists(ctx, authorID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("author %s: %w", authorID, common.ErrNotFound)
		}

		post, err = s.repomanager.Posts(tx).Create(ctx, &models.Post{
			Content:  content,
			AuthorID: authorID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// Get returns the post with the given id when accountID wrote it. Posts of
// other authors are reported as common.ErrNotFound so their ids stay opaque.
func (s *PostService) Get(ctx context.Context, accountID, id string) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	if post.AuthorID != accountID {
		return nil, fmt.Errorf("error loading post %s: %w", id, common.ErrNotFound)
	}
	return post, nil
}

// ListByAuthor returns the author's newest posts. A non-positive limit means
// DefaultListLimit; larger limits are capped at MaxListLimit.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*models.Post, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	posts, err := s.repomanager.Posts(s.db).ListByAuthor(ctx, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}
