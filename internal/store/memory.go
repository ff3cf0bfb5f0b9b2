package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linkbrief/linkbrief/models"
)

// Memory is an in-process Store used in tests and when no Postgres backend is
// configured. Records do not survive a restart.
type Memory struct {
	mu    sync.RWMutex
	links map[string]models.Link
	users map[string]memoryUser // keyed by email
	keys  map[string]string     // ingest key -> user id
}

type memoryUser struct {
	id   string
	hash string
}

func NewMemory() *Memory {
	return &Memory{
		links: make(map[string]models.Link),
		users: make(map[string]memoryUser),
		keys:  make(map[string]string),
	}
}

func (s *Memory) CreateLink(_ context.Context, link models.Link) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	link.ID = uuid.NewString()
	link.CreatedAt = now
	link.UpdatedAt = now
	s.links[link.ID] = link
	return link, nil
}

func (s *Memory) MarkProcessing(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[id]
	if !ok {
		return models.ErrLinkNotFound
	}
	if link.Status.Terminal() {
		return models.ErrStatusFinal
	}
	link.Status = models.StatusProcessing
	link.UpdatedAt = time.Now().UTC()
	s.links[id] = link
	return nil
}

func (s *Memory) FinishLink(_ context.Context, id string, result models.Summary, status models.ProcessingStatus) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[id]
	if !ok {
		return models.Link{}, models.ErrLinkNotFound
	}
	if link.Status.Terminal() {
		return models.Link{}, models.ErrStatusFinal
	}
	summary := result.Summary
	link.Title = result.Title
	link.Summary = &summary
	link.Tags = result.Tags
	link.Status = status
	link.UpdatedAt = time.Now().UTC()
	s.links[id] = link
	return link, nil
}

func (s *Memory) GetLink(_ context.Context, id, userID string) (models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.links[id]
	if !ok || link.UserID != userID {
		return models.Link{}, models.ErrLinkNotFound
	}
	return link, nil
}

func (s *Memory) ListLinks(_ context.Context, userID string) ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Link
	for _, link := range s.links {
		if link.UserID == userID {
			out = append(out, link)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) DeleteLink(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[id]
	if !ok || link.UserID != userID {
		return models.ErrLinkNotFound
	}
	delete(s.links, id)
	return nil
}

func (s *Memory) CreateUser(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return ErrDuplicateEmail
	}
	s.users[email] = memoryUser{id: uuid.NewString(), hash: passwordHash}
	return nil
}

func (s *Memory) GetUserByEmail(_ context.Context, email string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return "", "", models.ErrUserNotFound
	}
	return u.id, u.hash, nil
}

func (s *Memory) SaveIngestKey(_ context.Context, key, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = userID
	return nil
}

func (s *Memory) UserByIngestKey(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.keys[key]
	if !ok {
		return "", models.ErrUserNotFound
	}
	return id, nil
}
