package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"blogapp/handlers"
	"blogapp/middleware"
	"blogapp/store"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, s store.Stores) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s.Users)
	postHandler := handlers.NewPostHandler(s.Posts)
	commentHandler := handlers.NewCommentHandler(s.Comments)

	r.GET("/", postHandler.Home)
	r.GET("/logout", authHandler.Logout)

	if db != nil {
		healthHandler := handlers.NewHealthHandler(db)
		r.GET("/health", healthHandler.HealthCheck)
	}

	// Signup and login are for anonymous visitors only
	anon := r.Group("/", middleware.RequireAnon())
	{
		anon.GET("/signup", authHandler.SignupForm)
		anon.POST("/signup", authHandler.Signup)
		anon.GET("/login", authHandler.LoginForm)
		anon.POST("/login", authHandler.Login)
	}

	posts := r.Group("/posts")
	{
		posts.GET("/", postHandler.RedirectHome)
		posts.GET("/:postId", postHandler.ShowPost)
		// Open route; the store checks comment-author-or-post-owner itself
		posts.POST("/:postId/:commentId/delete", commentHandler.DeleteComment)

		authed := posts.Group("", middleware.RequireAuth())
		{
			authed.GET("/new-post", postHandler.NewPostForm)
			authed.POST("/new-post", postHandler.CreatePost)
			authed.GET("/my-posts", postHandler.MyPosts)
			authed.GET("/:postId/edit", postHandler.EditForm)
			authed.POST("/:postId/edit", postHandler.UpdatePost)
			authed.GET("/:postId/delete", postHandler.DeleteForm)
			authed.POST("/:postId/delete", postHandler.DeletePost)
			authed.POST("/:postId/add-comment", commentHandler.AddComment)
		}
	}
}
