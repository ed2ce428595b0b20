package team

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"teamup/internal/posts/models"
	"teamup/pkg/platform/sentinel"
)

// InMemory keeps team posts in a mutex-guarded map. Used in unit tests and
// dev mode.
type InMemory struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*models.TeamPost
}

// NewInMemory constructs an empty in-memory teams store.
func NewInMemory() *InMemory {
	return &InMemory{posts: make(map[uuid.UUID]*models.TeamPost)}
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.TeamPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TeamPost, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.TeamPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) FindByContactIn(_ context.Context, contacts []string) ([]*models.TeamPost, error) {
	wanted := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		wanted[c] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.TeamPost
	for _, p := range s.posts {
		if _, ok := wanted[p.Contact]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, post *models.TeamPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *InMemory) Update(_ context.Context, post *models.TeamPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; !exists {
		return sentinel.ErrNotFound
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func sortNewestFirst(posts []*models.TeamPost) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.String() < posts[j].ID.String()
	})
}
