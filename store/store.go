// Package store defines the repository contracts for users, posts, and
// comments. Implementations live in store/postgres (the real store) and
// store/memory (tests).
package store

import (
	"context"
	"errors"

	"blogapp/models"
)

var (
	// ErrNotFound is returned when the target row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the row exists but does not belong to
	// the acting user.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate")
)

type UserStore interface {
	Create(ctx context.Context, u models.NewUser) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type PostStore interface {
	ListPublished(ctx context.Context) ([]models.PostSummary, error)
	ListPublishedByOwner(ctx context.Context, ownerID int) ([]models.PostSummary, error)
	Create(ctx context.Context, ownerID int, title, body string, publish bool) (int, error)
	// GetForOwner returns the post only when it exists and is owned by
	// ownerID; a miss of either kind is ErrNotFound.
	GetForOwner(ctx context.Context, postID, ownerID int) (models.Post, error)
	// Update mutates title, body, and publish state and bumps date_updated.
	// A missing post is ErrNotFound; an existing post with a different
	// owner is ErrForbidden. Zero rows affected is never silent success.
	Update(ctx context.Context, postID, ownerID int, title, body string, publish bool) error
	// Delete removes the post and all of its comments in one transaction.
	// Same miss classification as Update.
	Delete(ctx context.Context, postID, ownerID int) error
	// GetDetail returns the post with its author username and comments.
	// Unpublished posts are visible only when viewerID is the owner.
	GetDetail(ctx context.Context, postID, viewerID int) (models.PostDetail, error)
}

type CommentStore interface {
	Add(ctx context.Context, postID, authorID int, title, text string) error
	// Delete removes the comment iff actorID is the comment's author or
	// the parent post's owner; otherwise ErrForbidden. A missing comment
	// is ErrNotFound.
	Delete(ctx context.Context, postID, commentID, actorID int) error
}

// Stores bundles the repositories for route wiring.
type Stores struct {
	Users    UserStore
	Posts    PostStore
	Comments CommentStore
}
