// Package memory is an in-memory implementation of the store contracts,
// used by tests. The three repositories share one backing Store so that
// cross-entity checks (post ownership during comment deletion, comment
// cascade during post deletion) behave like the relational store.
package memory

import (
	"sync"

	"blogapp/models"
	"blogapp/store"
)

type Store struct {
	mu            sync.Mutex
	users         map[int]models.User
	posts         map[int]models.Post
	comments      map[int]models.Comment
	nextUserID    int
	nextPostID    int
	nextCommentID int
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int]models.User),
		posts:         make(map[int]models.Post),
		comments:      make(map[int]models.Comment),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
	}
}

// Stores bundles the repositories backed by this Store for route wiring.
func (s *Store) Stores() store.Stores {
	return store.Stores{
		Users:    &UserStore{s: s},
		Posts:    &PostStore{s: s},
		Comments: &CommentStore{s: s},
	}
}
