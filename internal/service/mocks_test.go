package service

import (
	"context"
	"errors"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/repository"
	"notemaker-server/internal/summary"
)

var errStoreDown = errors.New("store unavailable")

type mockNoteRepo struct {
	notes map[string]*domain.Note
	err   error
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{
		notes: make(map[string]*domain.Note),
	}
}

// clone keeps stored notes independent from the values handed to callers.
func clone(n *domain.Note) *domain.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	c.Versions = append(domain.Ledger{}, n.Versions...)
	return &c
}

func (m *mockNoteRepo) Create(_ context.Context, note *domain.Note) error {
	if m.err != nil {
		return m.err
	}
	m.notes[note.ID] = clone(note)
	return nil
}

func (m *mockNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	if n, exists := m.notes[id]; exists {
		return clone(n), nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockNoteRepo) ListActive(_ context.Context, ownerID string) ([]*domain.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.OwnerID == ownerID && !n.IsArchived {
			notes = append(notes, clone(n))
		}
	}
	return notes, nil
}

func (m *mockNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, exists := m.notes[note.ID]; !exists {
		return repository.ErrNotFound
	}
	m.notes[note.ID] = clone(note)
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id string) error {
	if _, exists := m.notes[id]; !exists {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

type mockSummaryCache struct {
	entries map[string]summary.Summary
	gets    int
	err     error
}

func newMockSummaryCache() *mockSummaryCache {
	return &mockSummaryCache{entries: make(map[string]summary.Summary)}
}

func (m *mockSummaryCache) Get(_ context.Context, text string) (*summary.Summary, error) {
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.entries[text]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *mockSummaryCache) Set(_ context.Context, text string, s summary.Summary) error {
	if m.err != nil {
		return m.err
	}
	m.entries[text] = s
	return nil
}
