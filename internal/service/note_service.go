package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/metrics"
	"notemaker-server/internal/repository"
	"notemaker-server/internal/summary"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NoteService struct {
	repo  repository.NoteRepository
	cache repository.SummaryCache
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewNoteService wires the note lifecycle. cache may be nil, in which case
// every summary is computed.
func NewNoteService(repo repository.NoteRepository, cache repository.SummaryCache, log *zap.SugaredLogger) *NoteService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &NoteService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns the caller's non-archived notes matching search, pinned first and
// then most recently updated first.
func (s *NoteService) List(ctx context.Context, userID, search string) ([]*domain.Note, error) {
	notes, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	matched := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(search) {
			matched = append(matched, n)
		}
	}

	domain.SortForListing(matched)
	return matched, nil
}

func (s *NoteService) Create(ctx context.Context, userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	if req.Title == "" {
		return nil, NewValidationError("title", "Title is required")
	}

	note := domain.NewNote(userID, req.Title, req.Content, req.Tags, req.Color, s.now())
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.log.Infow("note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

func (s *NoteService) GetByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	return s.load(ctx, userID, noteID)
}

func (s *NoteService) Update(ctx context.Context, userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.load(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	change := note.ApplyUpdate(req, s.now())
	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	metrics.ObserveLedger("update", change)
	if change.Evicted > 0 {
		s.log.Debugw("oldest versions evicted", "note_id", note.ID, "evicted", change.Evicted)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.load(ctx, userID, noteID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.log.Infow("note deleted", "note_id", noteID, "user_id", userID)
	return nil
}

func (s *NoteService) Duplicate(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	source, err := s.load(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	dup := source.Duplicate(s.now())
	if err := s.repo.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to create duplicate: %w", err)
	}

	s.log.Infow("note duplicated", "note_id", dup.ID, "source_id", source.ID, "user_id", userID)
	return dup, nil
}

// Versions lists a note's history, newest first.
func (s *NoteService) Versions(ctx context.Context, userID, noteID string) ([]domain.Version, error) {
	note, err := s.load(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return note.Versions.NewestFirst(), nil
}

func (s *NoteService) Restore(ctx context.Context, userID, noteID, versionID string) (*domain.Note, error) {
	note, err := s.load(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	change, err := note.Restore(versionID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, note); err != nil {
		return nil, err
	}

	metrics.ObserveLedger("restore", change)
	s.log.Infow("note restored", "note_id", note.ID, "version_id", versionID, "user_id", userID)
	return note, nil
}

// Summarize summarizes text when given. Otherwise it summarizes the stored
// plain text of the caller's note.
func (s *NoteService) Summarize(ctx context.Context, userID, noteID, text string) (summary.Summary, error) {
	if text == "" {
		note, err := s.load(ctx, userID, noteID)
		if err != nil {
			return summary.Summary{}, err
		}
		text = note.PlainTextContent
	}

	if s.cache == nil {
		return summary.Summarize(text), nil
	}

	cached, err := s.cache.Get(ctx, text)
	switch {
	case err != nil:
		metrics.ObserveSummaryCache("error")
		s.log.Warnw("summary cache lookup failed", "error", err)
	case cached != nil:
		metrics.ObserveSummaryCache("hit")
		return *cached, nil
	default:
		metrics.ObserveSummaryCache("miss")
	}

	result := summary.Summarize(text)
	if err := s.cache.Set(ctx, text, result); err != nil {
		s.log.Warnw("summary cache store failed", "error", err)
	}
	return result, nil
}

// load fetches a note and checks that userID owns it. Malformed ids cannot
// name a stored note and are reported as not found.
func (s *NoteService) load(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, ErrNoteNotFound
	}

	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if !note.OwnedBy(userID) {
		return nil, ErrNotAuthorized
	}
	return note, nil
}

func (s *NoteService) save(ctx context.Context, note *domain.Note) error {
	if err := s.repo.Update(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}
