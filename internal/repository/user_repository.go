package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notemaker-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *kivik.DB
}

type userDoc struct {
	ID        string    `json:"_id"`
	Rev       string    `json:"_rev,omitempty"`
	DocType   string    `json:"doc_type"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &userRepository{
		db: client.DB(dbName),
	}
}

func userDocID(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		ID:        userDocID(user.ID),
		DocType:   docTypeUser,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	}

	if _, err := r.db.Put(ctx, doc.ID, doc); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"doc_type": docTypeUser,
			"email":    email,
		},
		"limit": 1,
	}

	rows := r.db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query user by email: %w", err)
		}
		return nil, ErrNotFound
	}

	var doc userDoc
	if err := rows.ScanDoc(&doc); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return docToUser(&doc), nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	if err := r.db.Get(ctx, userDocID(id)).ScanDoc(&doc); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return docToUser(&doc), nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func docToUser(doc *userDoc) *domain.User {
	return &domain.User{
		ID:        doc.UserID,
		Name:      doc.Name,
		Email:     doc.Email,
		Password:  doc.Password,
		CreatedAt: doc.CreatedAt,
	}
}
