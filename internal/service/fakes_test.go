package service

import (
	"context"
	"sort"
	"sync"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type fakeAccountStore struct {
	mu       sync.Mutex
	nextID   int
	accounts map[string]*model.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*model.Account)}
}

func (s *fakeAccountStore) Insert(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[a.Username]; exists {
		return repository.ErrDuplicate
	}
	s.nextID++
	a.ID = s.nextID
	stored := *a
	s.accounts[a.Username] = &stored
	return nil
}

func (s *fakeAccountStore) FindByUsername(_ context.Context, username string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *a
	return &found, nil
}

type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]*model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int]*model.Task)}
}

func (s *fakeTaskStore) Insert(_ context.Context, t *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	stored := *t
	s.tasks[t.ID] = &stored
	return nil
}

func (s *fakeTaskStore) ListByOwner(_ context.Context, ownerID int) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := []model.Task{}
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *fakeTaskStore) OwnerOf(_ context.Context, taskID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return t.OwnerID, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, taskID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

type publishedEvent struct {
	routingKey string
	payload    any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) byKey(routingKey string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.routingKey == routingKey {
			out = append(out, e)
		}
	}
	return out
}
