package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"notemaker-server/internal/config"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
)

var ErrNotFound = errors.New("document not found")

const (
	docTypeNote = "note"
	docTypeUser = "user"
)

// Connect opens a CouchDB client for the configured server.
func Connect(cfg config.DatabaseConfig) (*kivik.Client, error) {
	couchURL := url.URL{
		Scheme: "http",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
	}

	client, err := kivik.New("couch", couchURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to CouchDB: %w", err)
	}
	return client, nil
}

// EnsureDatabase creates dbName when it does not exist yet. It reports whether
// the database was created.
func EnsureDatabase(ctx context.Context, client *kivik.Client, dbName string) (bool, error) {
	exists, err := client.DBExists(ctx, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := client.CreateDB(ctx, dbName); err != nil {
		return false, fmt.Errorf("failed to create database: %w", err)
	}
	return true, nil
}

// Indexes are the Mango indexes the repositories' selectors rely on.
var Indexes = []struct {
	Name   string
	Fields []string
}{
	{Name: "notes-by-owner", Fields: []string{"doc_type", "owner_id", "is_archived"}},
	{Name: "users-by-email", Fields: []string{"doc_type", "email"}},
}

// EnsureIndexes creates the Mango indexes. CouchDB treats an identical index
// definition as a no-op, so this is safe to run repeatedly.
func EnsureIndexes(ctx context.Context, client *kivik.Client, dbName string) error {
	db := client.DB(dbName)
	for _, idx := range Indexes {
		index := map[string]interface{}{"fields": idx.Fields}
		if err := db.CreateIndex(ctx, "notemaker", idx.Name, index); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusNotFound
}
