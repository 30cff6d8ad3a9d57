package domain

import (
	"sort"
	"strings"
	"time"

	"notemaker-server/pkg/plaintext"

	"github.com/google/uuid"
)

const (
	DefaultNoteTitle = "Untitled Note"
	DefaultNoteColor = "light"

	copySuffix = " (Copy)"
)

type Note struct {
	ID               string    `json:"_id"`
	OwnerID          string    `json:"user"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	PlainTextContent string    `json:"plainTextContent"`
	Tags             []string  `json:"tags"`
	Color            string    `json:"color"`
	IsPinned         bool      `json:"isPinned"`
	IsArchived       bool      `json:"isArchived"`
	Versions         Ledger    `json:"versions"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Color   string   `json:"color"`
}

// UpdateNoteRequest only touches the fields that are present. A field sent as
// JSON null counts as absent and leaves the note unchanged.
type UpdateNoteRequest struct {
	Title      Optional[string]   `json:"title"`
	Content    Optional[string]   `json:"content"`
	Tags       Optional[[]string] `json:"tags"`
	Color      Optional[string]   `json:"color"`
	IsPinned   Optional[bool]     `json:"isPinned"`
	IsArchived Optional[bool]     `json:"isArchived"`
}

// LedgerChange reports what a mutation did to the version history.
type LedgerChange struct {
	Appended bool
	Evicted  int
}

// NewNote builds a note owned by ownerID, filling defaults for empty fields.
func NewNote(ownerID, title, content string, tags []string, color string, now time.Time) *Note {
	if title == "" {
		title = DefaultNoteTitle
	}
	if color == "" {
		color = DefaultNoteColor
	}

	n := &Note{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Tags:      copyTags(tags),
		Color:     color,
		Versions:  Ledger{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	n.setContent(content)
	return n
}

func (n *Note) OwnedBy(userID string) bool {
	return n.OwnerID == userID
}

// ApplyUpdate mutates the note with the present fields of req. A version holding
// the previous content is recorded only when req carries content that differs
// from the current content.
func (n *Note) ApplyUpdate(req *UpdateNoteRequest, now time.Time) LedgerChange {
	var change LedgerChange

	if content, ok := req.Content.Get(); ok {
		if content != n.Content {
			change = n.record(n.Content, n.lastModified())
		}
		n.setContent(content)
	}
	if title, ok := req.Title.Get(); ok {
		n.Title = title
	}
	if tags, ok := req.Tags.Get(); ok {
		n.Tags = copyTags(tags)
	}
	if color, ok := req.Color.Get(); ok {
		n.Color = color
	}
	if pinned, ok := req.IsPinned.Get(); ok {
		n.IsPinned = pinned
	}
	if archived, ok := req.IsArchived.Get(); ok {
		n.IsArchived = archived
	}

	n.UpdatedAt = now
	return change
}

// Restore brings back the content of the given version. The current content is
// recorded first and the restored version stays in the ledger.
func (n *Note) Restore(versionID string, now time.Time) (LedgerChange, error) {
	target, ok := n.Versions.Find(versionID)
	if !ok {
		return LedgerChange{}, ErrVersionNotFound
	}

	change := n.record(n.Content, n.lastModified())
	n.setContent(target.Content)
	n.UpdatedAt = now

	return change, nil
}

// Duplicate returns an unpinned, unarchived copy owned by the same user with an
// empty history.
func (n *Note) Duplicate(now time.Time) *Note {
	return &Note{
		ID:               uuid.New().String(),
		OwnerID:          n.OwnerID,
		Title:            n.Title + copySuffix,
		Content:          n.Content,
		PlainTextContent: n.PlainTextContent,
		Tags:             copyTags(n.Tags),
		Color:            n.Color,
		Versions:         Ledger{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Matches reports whether term occurs, case-insensitively, in the title, the
// plain text or any tag. An empty term matches every note.
func (n *Note) Matches(term string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.PlainTextContent), term) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// SortForListing orders pinned notes first, then most recently updated first.
func SortForListing(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

func (n *Note) record(content string, until time.Time) LedgerChange {
	var evicted int
	n.Versions, evicted = n.Versions.Append(Version{
		ID:        uuid.New().String(),
		Content:   content,
		Timestamp: until,
	})
	return LedgerChange{Appended: true, Evicted: evicted}
}

func (n *Note) setContent(content string) {
	n.Content = content
	n.PlainTextContent = plaintext.Extract(content)
}

func (n *Note) lastModified() time.Time {
	if n.UpdatedAt.IsZero() {
		return n.CreatedAt
	}
	return n.UpdatedAt
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
