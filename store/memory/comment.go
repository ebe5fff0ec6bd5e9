package memory

import (
	"context"
	"fmt"

	"blogapp/models"
	"blogapp/store"
)

type CommentStore struct {
	s *Store
}

func NewCommentStore(s *Store) *CommentStore {
	return &CommentStore{s: s}
}

func (cs *CommentStore) Add(ctx context.Context, postID, authorID int, title, text string) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	// Mirrors the foreign-key failure of the relational store.
	if _, ok := cs.s.posts[postID]; !ok {
		return fmt.Errorf("error creating comment: post %d does not exist", postID)
	}

	comment := models.Comment{
		ID:     cs.s.nextCommentID,
		PostID: postID,
		UserID: authorID,
		Title:  title,
		Text:   text,
	}
	cs.s.nextCommentID++
	cs.s.comments[comment.ID] = comment

	return nil
}

func (cs *CommentStore) Delete(ctx context.Context, postID, commentID, actorID int) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	comment, ok := cs.s.comments[commentID]
	if !ok || comment.PostID != postID {
		return store.ErrNotFound
	}

	post, ok := cs.s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}

	if actorID != comment.UserID && actorID != post.UserID {
		return store.ErrForbidden
	}

	delete(cs.s.comments, commentID)
	return nil
}
