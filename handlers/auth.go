package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogapp/middleware"
	"blogapp/models"
	"blogapp/store"
)

type AuthHandler struct {
	users store.UserStore
}

func NewAuthHandler(users store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Username": middleware.CurrentUsername(c),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.signupError(c, "Error signing up. Please try again later.")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.Repeat == "" {
		h.signupError(c, "Username, Email, Password, and Repeat Password fields are required!")
		return
	}
	if strings.TrimSpace(req.Password) != strings.TrimSpace(req.Repeat) {
		h.signupError(c, "Passwords don't match!")
		return
	}

	hash, err := middleware.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		renderError(c)
		return
	}

	user, err := h.users.Create(c.Request.Context(), models.NewUser{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrDuplicate) {
		h.signupError(c, "Username taken or Email already attached to account.")
		return
	} else if err != nil {
		log.Printf("Error creating user: %v", err)
		h.signupError(c, "Error signing up. Please try again later.")
		return
	}

	if err := middleware.SignIn(c, user); err != nil {
		log.Printf("Error saving session: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, "/posts/my-posts")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Username": middleware.CurrentUsername(c),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginError(c)
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	// One generic message for unknown user and wrong password alike, so the
	// form can't be used to enumerate accounts.
	if errors.Is(err, store.ErrNotFound) || (err == nil && !middleware.VerifyPassword(user.PasswordHash, req.Password)) {
		h.loginError(c)
		return
	} else if err != nil {
		log.Printf("Error querying user: %v", err)
		renderError(c)
		return
	}

	if err := middleware.SignIn(c, user); err != nil {
		log.Printf("Error saving session: %v", err)
		renderError(c)
		return
	}

	c.Redirect(http.StatusFound, "/posts/my-posts")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.SignOut(c); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) signupError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Error":    msg,
		"Username": middleware.CurrentUsername(c),
	})
}

func (h *AuthHandler) loginError(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error":    "Username or Password does not match!",
		"Username": middleware.CurrentUsername(c),
	})
}
