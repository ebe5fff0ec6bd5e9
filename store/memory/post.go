package memory

import (
	"context"
	"sort"
	"time"

	"blogapp/models"
	"blogapp/store"
)

type PostStore struct {
	s *Store
}

func NewPostStore(s *Store) *PostStore {
	return &PostStore{s: s}
}

func (ps *PostStore) ListPublished(ctx context.Context) ([]models.PostSummary, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	return ps.summaries(func(p models.Post) bool { return p.IsPublished }), nil
}

func (ps *PostStore) ListPublishedByOwner(ctx context.Context, ownerID int) ([]models.PostSummary, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()
	return ps.summaries(func(p models.Post) bool {
		return p.IsPublished && p.UserID == ownerID
	}), nil
}

func (ps *PostStore) summaries(keep func(models.Post) bool) []models.PostSummary {
	var out []models.PostSummary
	for _, p := range ps.s.posts {
		if !keep(p) {
			continue
		}
		count := 0
		for _, c := range ps.s.comments {
			if c.PostID == p.ID {
				count++
			}
		}
		out = append(out, models.PostSummary{
			ID:           p.ID,
			Title:        p.Title,
			Body:         p.Body,
			IsPublished:  p.IsPublished,
			DateCreated:  p.DateCreated,
			DateUpdated:  p.DateUpdated,
			CommentCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateCreated.After(out[j].DateCreated)
	})
	return out
}

func (ps *PostStore) Create(ctx context.Context, ownerID int, title, body string, publish bool) (int, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	now := time.Now()
	post := models.Post{
		ID:          ps.s.nextPostID,
		Title:       title,
		Body:        body,
		IsPublished: publish,
		UserID:      ownerID,
		DateCreated: now,
		DateUpdated: now,
	}
	ps.s.nextPostID++
	ps.s.posts[post.ID] = post

	return post.ID, nil
}

func (ps *PostStore) GetForOwner(ctx context.Context, postID, ownerID int) (models.Post, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	post, ok := ps.s.posts[postID]
	if !ok || post.UserID != ownerID {
		return models.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (ps *PostStore) Update(ctx context.Context, postID, ownerID int, title, body string, publish bool) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	post, ok := ps.s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	if post.UserID != ownerID {
		return store.ErrForbidden
	}

	post.Title = title
	post.Body = body
	post.IsPublished = publish
	post.DateUpdated = time.Now()
	ps.s.posts[postID] = post

	return nil
}

func (ps *PostStore) Delete(ctx context.Context, postID, ownerID int) error {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	post, ok := ps.s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	if post.UserID != ownerID {
		return store.ErrForbidden
	}

	for id, c := range ps.s.comments {
		if c.PostID == postID {
			delete(ps.s.comments, id)
		}
	}
	delete(ps.s.posts, postID)

	return nil
}

func (ps *PostStore) GetDetail(ctx context.Context, postID, viewerID int) (models.PostDetail, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	post, ok := ps.s.posts[postID]
	if !ok {
		return models.PostDetail{}, store.ErrNotFound
	}
	if !post.IsPublished && post.UserID != viewerID {
		return models.PostDetail{}, store.ErrNotFound
	}

	detail := models.PostDetail{
		Post:   post,
		Author: ps.s.users[post.UserID].Username,
	}
	for _, c := range ps.s.comments {
		if c.PostID != postID {
			continue
		}
		detail.Comments = append(detail.Comments, models.CommentView{
			ID:     c.ID,
			Title:  c.Title,
			Text:   c.Text,
			UserID: c.UserID,
			Author: ps.s.users[c.UserID].Username,
		})
	}
	sort.Slice(detail.Comments, func(i, j int) bool {
		return detail.Comments[i].ID < detail.Comments[j].ID
	})

	return detail, nil
}
