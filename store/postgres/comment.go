package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogapp/store"
)

type CommentStore struct {
	db *sql.DB
}

func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Add inserts without checking the post first; the foreign key on post_id
// rejects comments on missing posts.
func (s *CommentStore) Add(ctx context.Context, postID, authorID int, title, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (title, text, user_id, post_id)
		 VALUES ($1, $2, $3, $4)`,
		title, text, authorID, postID,
	)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

func (s *CommentStore) Delete(ctx context.Context, postID, commentID, actorID int) error {
	var commentAuthor, postOwner int
	err := s.db.QueryRowContext(ctx,
		`SELECT
		     comments.user_id,
		     posts.user_id
		 FROM
		     comments JOIN posts ON comments.post_id = posts.post_id
		 WHERE
		     comments.comment_id = $1 AND
		     comments.post_id = $2`,
		commentID, postID,
	).Scan(&commentAuthor, &postOwner)

	if err == sql.ErrNoRows {
		return store.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("error querying comment: %w", err)
	}

	// Either the comment's author or the post's owner may delete.
	if actorID != commentAuthor && actorID != postOwner {
		return store.ErrForbidden
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id = $1 AND comment_id = $2`,
		postID, commentID,
	)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	return nil
}
