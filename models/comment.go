package models

type CommentForm struct {
	Title string `form:"title" binding:"required"`
	Text  string `form:"text" binding:"required"`
}

type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"post_id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// CommentView is a comment as shown on the post detail page. CanDelete is
// filled in per viewer by the handler (comment author or post owner).
type CommentView struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	UserID    int    `json:"user_id"`
	Author    string `json:"author"`
	CanDelete bool   `json:"can_delete"`
}
