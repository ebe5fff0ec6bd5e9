package models

import "time"

// PostForm carries the new-post and edit-post forms. The publish checkbox
// posts "on" when ticked and is absent otherwise.
type PostForm struct {
	Title   string `form:"title" binding:"required"`
	Body    string `form:"body" binding:"required"`
	Publish string `form:"publish"`
}

func (f PostForm) Published() bool {
	return f.Publish != ""
}

type Post struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	IsPublished bool      `json:"is_published"`
	UserID      int       `json:"user_id"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// PostSummary is a listing row: the post plus its aggregate comment count.
type PostSummary struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	IsPublished  bool      `json:"is_published"`
	DateCreated  time.Time `json:"date_created"`
	DateUpdated  time.Time `json:"date_updated"`
	CommentCount int       `json:"comment_count"`
}

// PostDetail is the detail view: the post, its author's username, and its
// comments as typed rows.
type PostDetail struct {
	Post
	Author   string        `json:"author"`
	Comments []CommentView `json:"comments"`
}
