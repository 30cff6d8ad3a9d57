package repository

import (
	"context"
	"fmt"
	"time"

	"notemaker-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	ListActive(ctx context.Context, ownerID string) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}

// listPageSize caps each _find request. CouchDB stops at 25 rows when no
// limit is sent.
const listPageSize = 200

type noteRepository struct {
	db       *kivik.DB
	pageSize int
}

// noteDoc is the stored shape of a note. Versions live inside the document so
// they are written and deleted together with it.
type noteDoc struct {
	ID               string           `json:"_id"`
	Rev              string           `json:"_rev,omitempty"`
	DocType          string           `json:"doc_type"`
	NoteID           string           `json:"note_id"`
	OwnerID          string           `json:"owner_id"`
	Title            string           `json:"title"`
	Content          string           `json:"content"`
	PlainTextContent string           `json:"plain_text_content"`
	Tags             []string         `json:"tags"`
	Color            string           `json:"color"`
	IsPinned         bool             `json:"is_pinned"`
	IsArchived       bool             `json:"is_archived"`
	Versions         []domain.Version `json:"versions"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		db:       client.DB(dbName),
		pageSize: listPageSize,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	doc := noteToDoc(note)

	if _, err := r.db.Put(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	var doc noteDoc
	if err := r.db.Get(ctx, noteDocID(id)).ScanDoc(&doc); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return docToNote(&doc), nil
}

// ListActive pages through the owner's unarchived notes with the _find
// bookmark until a short or repeated page is returned.
func (r *noteRepository) ListActive(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	bookmark := ""

	for {
		query := map[string]interface{}{
			"selector": map[string]interface{}{
				"doc_type":    docTypeNote,
				"owner_id":    ownerID,
				"is_archived": false,
			},
			"limit": r.pageSize,
		}
		if bookmark != "" {
			query["bookmark"] = bookmark
		}

		page, next, err := r.findPage(ctx, query)
		if err != nil {
			return nil, err
		}
		notes = append(notes, page...)

		if len(page) < r.pageSize || next == "" || next == bookmark {
			return notes, nil
		}
		bookmark = next
	}
}

func (r *noteRepository) findPage(ctx context.Context, query map[string]interface{}) ([]*domain.Note, string, error) {
	rows := r.db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var page []*domain.Note
	for rows.Next() {
		var doc noteDoc
		if err := rows.ScanDoc(&doc); err != nil {
			return nil, "", fmt.Errorf("failed to scan note: %w", err)
		}
		page = append(page, docToNote(&doc))
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate notes: %w", err)
	}

	meta, err := rows.Metadata()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read list metadata: %w", err)
	}

	return page, meta.Bookmark, nil
}

// Update overwrites the stored note with the latest revision, so concurrent
// writers to the same note resolve as last write wins.
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	doc := noteToDoc(note)

	var existing noteDoc
	if err := r.db.Get(ctx, doc.ID).ScanDoc(&existing); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}
	doc.Rev = existing.Rev

	if _, err := r.db.Put(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	docID := noteDocID(id)

	var existing noteDoc
	if err := r.db.Get(ctx, docID).ScanDoc(&existing); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	if _, err := r.db.Delete(ctx, docID, existing.Rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func noteToDoc(note *domain.Note) *noteDoc {
	versions := make([]domain.Version, len(note.Versions))
	copy(versions, note.Versions)

	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}

	return &noteDoc{
		ID:               noteDocID(note.ID),
		DocType:          docTypeNote,
		NoteID:           note.ID,
		OwnerID:          note.OwnerID,
		Title:            note.Title,
		Content:          note.Content,
		PlainTextContent: note.PlainTextContent,
		Tags:             tags,
		Color:            note.Color,
		IsPinned:         note.IsPinned,
		IsArchived:       note.IsArchived,
		Versions:         versions,
		CreatedAt:        note.CreatedAt,
		UpdatedAt:        note.UpdatedAt,
	}
}

func docToNote(doc *noteDoc) *domain.Note {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	versions := domain.Ledger(doc.Versions)
	if versions == nil {
		versions = domain.Ledger{}
	}

	return &domain.Note{
		ID:               doc.NoteID,
		OwnerID:          doc.OwnerID,
		Title:            doc.Title,
		Content:          doc.Content,
		PlainTextContent: doc.PlainTextContent,
		Tags:             tags,
		Color:            doc.Color,
		IsPinned:         doc.IsPinned,
		IsArchived:       doc.IsArchived,
		Versions:         versions,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}
