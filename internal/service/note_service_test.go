package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"notemaker-server/internal/domain"
	"notemaker-server/internal/summary"
)

func newTestNoteService(repo *mockNoteRepo) *NoteService {
	svc := NewNoteService(repo, nil, nil)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func mustCreate(t *testing.T, svc *NoteService, userID, title, content string) *domain.Note {
	t.Helper()
	note, err := svc.Create(context.Background(), userID, &domain.CreateNoteRequest{Title: title, Content: content})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return note
}

func TestNoteService_Create(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)

	note, err := svc.Create(context.Background(), "user1", &domain.CreateNoteRequest{
		Title:   "Groceries",
		Content: "<p>milk</p>",
		Tags:    []string{"home"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if note.ID == "" {
		t.Error("expected note ID to be generated")
	}
	if note.OwnerID != "user1" {
		t.Errorf("expected owner user1, got %s", note.OwnerID)
	}
	if note.PlainTextContent != " milk " {
		t.Errorf("unexpected plain text %q", note.PlainTextContent)
	}
	if note.Color != domain.DefaultNoteColor {
		t.Errorf("expected default color, got %s", note.Color)
	}
	if _, ok := repo.notes[note.ID]; !ok {
		t.Error("expected note to be stored")
	}
}

func TestNoteService_Create_RequiresTitle(t *testing.T) {
	svc := newTestNoteService(newMockNoteRepo())

	_, err := svc.Create(context.Background(), "user1", &domain.CreateNoteRequest{Content: "x"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields[0].Field != "title" {
		t.Errorf("expected title field, got %s", verr.Fields[0].Field)
	}
}

func TestNoteService_List(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()

	first := mustCreate(t, svc, "user1", "first", "")
	second := mustCreate(t, svc, "user1", "second", "")
	pinned := mustCreate(t, svc, "user1", "pinned", "")
	archived := mustCreate(t, svc, "user1", "archived", "")
	mustCreate(t, svc, "user2", "other", "")

	if _, err := svc.Update(ctx, "user1", pinned.ID, &domain.UpdateNoteRequest{IsPinned: domain.Some(true)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, "user1", archived.ID, &domain.UpdateNoteRequest{IsArchived: domain.Some(true)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, "user1", first.ID, &domain.UpdateNoteRequest{Title: domain.Some("first edited")}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, "user1", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{pinned.ID, first.ID, second.ID}
	if len(list) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, list[i].ID)
		}
	}
}

func TestNoteService_List_Search(t *testing.T) {
	svc := newTestNoteService(newMockNoteRepo())
	ctx := context.Background()

	mustCreate(t, svc, "user1", "Shopping", "<p>buy <b>apples</b></p>")
	mustCreate(t, svc, "user1", "Work", "<p>standup</p>")

	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"APPLES", 1},
		{"work", 1},
		{"<b>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			list, err := svc.List(ctx, "user1", tt.search)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != tt.want {
				t.Errorf("search %q: expected %d notes, got %d", tt.search, tt.want, len(list))
			}
		})
	}
}

func TestNoteService_GetByID_Errors(t *testing.T) {
	svc := newTestNoteService(newMockNoteRepo())
	note := mustCreate(t, svc, "user1", "mine", "")

	tests := []struct {
		name    string
		userID  string
		noteID  string
		wantErr error
	}{
		{"owner", "user1", note.ID, nil},
		{"other user", "user2", note.ID, ErrNotAuthorized},
		{"unknown id", "user1", "7d4c3a52-54a3-4c39-9df2-6b2c7c0d4a11", ErrNoteNotFound},
		{"malformed id", "user1", "not-a-uuid", ErrNoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), tt.userID, tt.noteID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNoteService_Update_VersionsAndPersistence(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "T", "A")

	updated, err := svc.Update(ctx, "user1", note.ID, &domain.UpdateNoteRequest{Content: domain.Some("B")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(updated.Versions) != 1 || updated.Versions[0].Content != "A" {
		t.Fatalf("expected one version holding A, got %+v", updated.Versions)
	}

	if _, err := svc.Update(ctx, "user1", note.ID, &domain.UpdateNoteRequest{Content: domain.Some("B")}); err != nil {
		t.Fatal(err)
	}

	stored := repo.notes[note.ID]
	if stored.Content != "B" {
		t.Errorf("expected stored content B, got %s", stored.Content)
	}
	if len(stored.Versions) != 1 {
		t.Errorf("identical content must not add a version, got %d", len(stored.Versions))
	}
}

func TestNoteService_Update_NotOwner(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	note := mustCreate(t, svc, "user1", "T", "A")

	_, err := svc.Update(context.Background(), "user2", note.ID, &domain.UpdateNoteRequest{Content: domain.Some("hijack")})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if repo.notes[note.ID].Content != "A" {
		t.Error("note must not change")
	}
}

func TestNoteService_Update_BoundedHistory(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "T", "c0")

	for i := 1; i <= 25; i++ {
		if _, err := svc.Update(ctx, "user1", note.ID, &domain.UpdateNoteRequest{Content: domain.Some(fmt.Sprintf("c%d", i))}); err != nil {
			t.Fatal(err)
		}
	}

	stored := repo.notes[note.ID]
	if len(stored.Versions) != domain.MaxVersions {
		t.Fatalf("expected %d versions, got %d", domain.MaxVersions, len(stored.Versions))
	}
	if stored.Versions[0].Content != "c5" {
		t.Errorf("expected oldest retained c5, got %s", stored.Versions[0].Content)
	}
}

func TestNoteService_Delete(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "T", "")

	if err := svc.Delete(ctx, "user2", note.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := svc.Delete(ctx, "user1", note.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.notes[note.ID]; ok {
		t.Error("expected note to be removed")
	}
	if err := svc.Delete(ctx, "user1", note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_Duplicate(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "Plan", "A")
	if _, err := svc.Update(ctx, "user1", note.ID, &domain.UpdateNoteRequest{
		Content:  domain.Some("B"),
		IsPinned: domain.Some(true),
	}); err != nil {
		t.Fatal(err)
	}

	dup, err := svc.Duplicate(ctx, "user1", note.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if dup.Title != "Plan (Copy)" {
		t.Errorf("unexpected title %q", dup.Title)
	}
	if dup.Content != "B" || dup.IsPinned || len(dup.Versions) != 0 {
		t.Errorf("unexpected duplicate %+v", dup)
	}
	if len(repo.notes) != 2 {
		t.Errorf("expected 2 stored notes, got %d", len(repo.notes))
	}

	if _, err := svc.Duplicate(ctx, "user1", "b2a4f1de-0000-4000-8000-000000000000"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_VersionsAndRestore(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "T", "A")

	for _, content := range []string{"B", "C"} {
		if _, err := svc.Update(ctx, "user1", note.ID, &domain.UpdateNoteRequest{Content: domain.Some(content)}); err != nil {
			t.Fatal(err)
		}
	}

	versions, err := svc.Versions(ctx, "user1", note.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(versions) != 2 || versions[0].Content != "B" || versions[1].Content != "A" {
		t.Fatalf("expected newest first [B A], got %+v", versions)
	}

	restored, err := svc.Restore(ctx, "user1", note.ID, versions[1].ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if restored.Content != "A" {
		t.Errorf("expected content A, got %s", restored.Content)
	}

	stored := repo.notes[note.ID]
	got := make([]string, len(stored.Versions))
	for i, v := range stored.Versions {
		got[i] = v.Content
	}
	if fmt.Sprint(got) != "[A B C]" {
		t.Errorf("expected ledger [A B C], got %v", got)
	}

	if _, err := svc.Restore(ctx, "user1", note.ID, "missing"); !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("expected ErrVersionNotFound, got %v", err)
	}
	if _, err := svc.Restore(ctx, "user2", note.ID, versions[0].ID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestNoteService_Summarize(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(repo)
	ctx := context.Background()
	note := mustCreate(t, svc, "user1", "T", "<p>Stored text here. Second part</p>")

	fromText, err := svc.Summarize(ctx, "user1", "ignored", "Given text. More")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fromText.Summary != "Given text. More." {
		t.Errorf("unexpected summary %q", fromText.Summary)
	}

	fromNote, err := svc.Summarize(ctx, "user1", note.ID, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if want := summary.Summarize(note.PlainTextContent); fromNote.Summary != want.Summary {
		t.Errorf("expected %q, got %q", want.Summary, fromNote.Summary)
	}

	if _, err := svc.Summarize(ctx, "user2", note.ID, ""); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestNoteService_Summarize_Cache(t *testing.T) {
	cache := newMockSummaryCache()
	svc := NewNoteService(newMockNoteRepo(), cache, nil)
	ctx := context.Background()

	first, err := svc.Summarize(ctx, "user1", "", "Cached words. Cached again")
	if err != nil {
		t.Fatal(err)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("expected summary to be cached, got %d entries", len(cache.entries))
	}

	cache.entries["Cached words. Cached again"] = summary.Summary{Summary: "from cache", Keywords: []string{}}
	second, err := svc.Summarize(ctx, "user1", "", "Cached words. Cached again")
	if err != nil {
		t.Fatal(err)
	}
	if second.Summary != "from cache" {
		t.Errorf("expected cached value, got %q (first was %q)", second.Summary, first.Summary)
	}

	cache.err = errStoreDown
	third, err := svc.Summarize(ctx, "user1", "", "Cache down. Still works")
	if err != nil {
		t.Fatalf("cache failures must not fail the request, got %v", err)
	}
	if third.Summary != "Cache down. Still works." {
		t.Errorf("unexpected summary %q", third.Summary)
	}
}

func TestNoteService_StoreFailure(t *testing.T) {
	repo := newMockNoteRepo()
	repo.err = errStoreDown
	svc := newTestNoteService(repo)

	_, err := svc.List(context.Background(), "user1", "")
	if !errors.Is(err, errStoreDown) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
