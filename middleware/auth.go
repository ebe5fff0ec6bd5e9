package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"blogapp/models"
)

// Session keys for the server-side session record. The cookie itself only
// carries the opaque session id.
const (
	sessionKeyUserID   = "userId"
	sessionKeyUsername = "username"
)

// Gin context keys set by Identify.
const (
	ctxKeyUserID   = "userID"
	ctxKeyUsername = "username"
)

// Identify resolves the session identity and puts it on the gin context for
// every downstream handler and template. Anonymous requests get a zero
// user id and an empty username.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, _ := session.Get(sessionKeyUserID).(int)
		username, _ := session.Get(sessionKeyUsername).(string)

		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyUsername, username)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the home page. Authorization
// failures are silent redirects, never error pages.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == 0 {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnon redirects already-authenticated users away from the signup
// and login pages.
func RequireAnon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) != 0 {
			c.Redirect(http.StatusFound, "/posts/my-posts")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or 0 for anonymous.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(ctxKeyUserID)
}

// CurrentUsername returns the authenticated user's name, or "" for anonymous.
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ctxKeyUsername)
}

// SignIn binds the user's identity to the session. All mutations key off
// this identity, never off a request-supplied user id.
func SignIn(c *gin.Context, user models.User) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		return err
	}

	c.Set(ctxKeyUserID, user.ID)
	c.Set(ctxKeyUsername, user.Username)
	return nil
}

// SignOut clears the session identity.
func SignOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionKeyUserID)
	session.Delete(sessionKeyUsername)
	if err := session.Save(); err != nil {
		return err
	}

	c.Set(ctxKeyUserID, 0)
	c.Set(ctxKeyUsername, "")
	return nil
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
