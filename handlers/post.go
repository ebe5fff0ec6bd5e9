package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapp/middleware"
	"blogapp/models"
	"blogapp/store"
)

type PostHandler struct {
	posts store.PostStore
}

func NewPostHandler(posts store.PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

// Home lists all published posts with their comment counts.
func (h *PostHandler) Home(c *gin.Context) {
	posts, err := h.posts.ListPublished(c.Request.Context())
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		renderError(c)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Posts":    posts,
		"Username": middleware.CurrentUsername(c),
	})
}

// RedirectHome handles GET /posts/.
func (h *PostHandler) RedirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) NewPostForm(c *gin.Context) {
	c.HTML(http.StatusOK, "post_form.html", gin.H{
		"PostURL":     "/posts/new-post",
		"ButtonLabel": "Add",
		"Title":       "",
		"Body":        "",
		"IsPublished": false,
		"Username":    middleware.CurrentUsername(c),
	})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req models.PostForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"PostURL":     "/posts/new-post",
			"ButtonLabel": "Add",
			"Error":       "Title and Body are required!",
			"Title":       req.Title,
			"Body":        req.Body,
			"IsPublished": req.Published(),
			"Username":    middleware.CurrentUsername(c),
		})
		return
	}

	_, err := h.posts.Create(c.Request.Context(), userID, req.Title, req.Body, req.Published())
	if err != nil {
		log.Printf("Error creating post: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, "/posts/my-posts")
}

// MyPosts lists the caller's published posts with comment counts.
func (h *PostHandler) MyPosts(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	posts, err := h.posts.ListPublishedByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		renderError(c)
		return
	}

	c.HTML(http.StatusOK, "my_posts.html", gin.H{
		"Posts":    posts,
		"Username": middleware.CurrentUsername(c),
	})
}

// ShowPost renders a post with its comments. Unpublished posts are visible
// only to their owner; everyone else gets the same redirect as a missing
// post.
func (h *PostHandler) ShowPost(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	viewerID := middleware.CurrentUserID(c)

	detail, err := h.posts.GetDetail(c.Request.Context(), postID, viewerID)
	if errors.Is(err, store.ErrNotFound) {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	} else if err != nil {
		log.Printf("Error querying post: %v", err)
		renderError(c)
		return
	}

	for i := range detail.Comments {
		comment := &detail.Comments[i]
		comment.CanDelete = viewerID != 0 &&
			(viewerID == comment.UserID || viewerID == detail.UserID)
	}

	c.HTML(http.StatusOK, "post_details.html", gin.H{
		"Post":     detail,
		"CanEdit":  viewerID == detail.UserID,
		"Username": middleware.CurrentUsername(c),
	})
}

func (h *PostHandler) EditForm(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	}
	userID := middleware.CurrentUserID(c)

	post, err := h.posts.GetForOwner(c.Request.Context(), postID, userID)
	if errors.Is(err, store.ErrNotFound) {
		// Missing and not-owned are indistinguishable here.
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	} else if err != nil {
		log.Printf("Error querying post: %v", err)
		renderError(c)
		return
	}

	c.HTML(http.StatusOK, "post_form.html", gin.H{
		"PostURL":     fmt.Sprintf("/posts/%d/edit", post.ID),
		"ButtonLabel": "Update",
		"Title":       post.Title,
		"Body":        post.Body,
		"IsPublished": post.IsPublished,
		"Username":    middleware.CurrentUsername(c),
	})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	}
	userID := middleware.CurrentUserID(c)

	var req models.PostForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"PostURL":     fmt.Sprintf("/posts/%d/edit", postID),
			"ButtonLabel": "Update",
			"Error":       "Title and Body are required!",
			"Title":       req.Title,
			"Body":        req.Body,
			"IsPublished": req.Published(),
			"Username":    middleware.CurrentUsername(c),
		})
		return
	}

	err := h.posts.Update(c.Request.Context(), postID, userID, req.Title, req.Body, req.Published())
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrForbidden) {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	} else if err != nil {
		log.Printf("Error updating post: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, "/posts/my-posts")
}

func (h *PostHandler) DeleteForm(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	}
	userID := middleware.CurrentUserID(c)

	post, err := h.posts.GetForOwner(c.Request.Context(), postID, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	} else if err != nil {
		log.Printf("Error querying post: %v", err)
		renderError(c)
		return
	}

	c.HTML(http.StatusOK, "confirm_delete.html", gin.H{
		"Title":    post.Title,
		"PostID":   post.ID,
		"Username": middleware.CurrentUsername(c),
	})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := paramInt(c, "postId")
	if !ok {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	}
	userID := middleware.CurrentUserID(c)

	err := h.posts.Delete(c.Request.Context(), postID, userID)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrForbidden) {
		c.Redirect(http.StatusFound, "/posts/my-posts")
		return
	} else if err != nil {
		log.Printf("Error deleting post: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, "/posts/my-posts")
}
