package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
	"github.com/google/uuid"
)

// memStore mimics the relational constraints the real schema enforces.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	posts    map[string]*models.Post
	now      time.Time

	accountsErr error
	postsErr    error
	lastLimit   int
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]*models.Account{},
		posts:    map[string]*models.Post{},
		now:      time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type memAccounts struct{ s *memStore }

func (r memAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.accountsErr != nil {
		return nil, r.s.accountsErr
	}
	for _, existing := range r.s.accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return nil, common.ErrConflict
		}
	}
	cp := *a
	cp.ID = uuid.NewString()
	cp.CreatedAt = r.s.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.s.accounts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.accountsErr != nil {
		return nil, r.s.accountsErr
	}
	for _, a := range r.s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r memAccounts) FindByID(_ context.Context, id string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.accountsErr != nil {
		return nil, r.s.accountsErr
	}
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAccounts) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.accountsErr != nil {
		return false, r.s.accountsErr
	}
	_, ok := r.s.accounts[id]
	return ok, nil
}

type memPosts struct{ s *memStore }

func (r memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.postsErr != nil {
		return nil, r.s.postsErr
	}
	if _, ok := r.s.accounts[p.AuthorID]; !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	cp.ID = uuid.NewString()
	cp.CreatedAt = r.s.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.s.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memPosts) FindByID(_ context.Context, id string) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPosts) ListByAuthor(_ context.Context, authorID string, limit int) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastLimit = limit
	if r.s.postsErr != nil {
		return nil, r.s.postsErr
	}
	out := []*models.Post{}
	for _, p := range r.s.posts {
		if p.AuthorID == authorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeManager hands out in-memory repositories and records which DBTX
// each one was bound to.
type fakeManager struct {
	store *memStore
	bound []dbx.DBTX
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeManager) Accounts(db dbx.DBTX) accounts.Repository {
	m.bound = append(m.bound, db)
	return memAccounts{m.store}
}

func (m *fakeManager) Posts(db dbx.DBTX) posts.Repository {
	m.bound = append(m.bound, db)
	return memPosts{m.store}
}

// countingHasher records Verify calls on top of a real hasher.
type countingHasher struct {
	PasswordHasher
	mu       sync.Mutex
	verified []string
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.mu.Lock()
	h.verified = append(h.verified, digest)
	h.mu.Unlock()
	return h.PasswordHasher.Verify(plaintext, digest)
}
