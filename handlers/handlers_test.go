package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapp/middleware"
	"blogapp/routes"
	"blogapp/store"
	"blogapp/store/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("session", memstore.NewStore([]byte("test-secret"))))
	r.Use(middleware.Identify())
	r.LoadHTMLGlob("../templates/*")

	stores := memory.NewStore().Stores()
	routes.SetupRoutes(r, nil, stores)

	return r, stores
}

func do(r *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns the session cookies.
func signup(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := do(r, http.MethodPost, "/signup", url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"firstname": {username},
		"lastname":  {"Tester"},
		"password":  {"s3cret"},
		"repeat":    {"s3cret"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/posts/my-posts", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// createPost submits the new-post form and returns the id the memory store
// assigned (ids are sequential starting at 1).
func createPost(t *testing.T, r *gin.Engine, cookies []*http.Cookie, title, body string, publish bool) {
	t.Helper()
	form := url.Values{"title": {title}, "body": {body}}
	if publish {
		form.Set("publish", "on")
	}
	w := do(r, http.MethodPost, "/posts/new-post", form, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/posts/my-posts", w.Header().Get("Location"))
}

func TestAuthGuards(t *testing.T) {
	r, _ := newTestRouter(t)
	cookies := signup(t, r, "alice")

	t.Run("Authenticated users are pushed off the signup and login pages", func(t *testing.T) {
		for _, path := range []string{"/signup", "/login"} {
			w := do(r, http.MethodGet, path, nil, cookies)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/posts/my-posts", w.Header().Get("Location"))
		}
	})

	t.Run("Anonymous users are pushed off authoring pages", func(t *testing.T) {
		for _, path := range []string{"/posts/new-post", "/posts/my-posts", "/posts/1/edit", "/posts/1/delete"} {
			w := do(r, http.MethodGet, path, nil, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		}
	})

	t.Run("Logout clears the session", func(t *testing.T) {
		w := do(r, http.MethodGet, "/logout", nil, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))

		w = do(r, http.MethodGet, "/posts/my-posts", nil, cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestSignupValidation(t *testing.T) {
	r, stores := newTestRouter(t)

	t.Run("Missing fields re-render the form", func(t *testing.T) {
		w := do(r, http.MethodPost, "/signup", url.Values{"username": {"alice"}}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "fields are required")
	})

	t.Run("Mismatched passwords re-render the form", func(t *testing.T) {
		w := do(r, http.MethodPost, "/signup", url.Values{
			"username": {"alice"},
			"email":    {"alice@example.com"},
			"password": {"one"},
			"repeat":   {"two"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Passwords don&#39;t match!")
	})

	t.Run("Duplicate username surfaces the taken message", func(t *testing.T) {
		signup(t, r, "alice")

		w := do(r, http.MethodPost, "/signup", url.Values{
			"username": {"alice"},
			"email":    {"fresh@example.com"},
			"password": {"s3cret"},
			"repeat":   {"s3cret"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username taken or Email already attached to account.")

		// The first alice is untouched
		user, err := stores.Users.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter(t)
	signup(t, r, "alice")

	t.Run("Wrong password does not establish a session", func(t *testing.T) {
		w := do(r, http.MethodPost, "/login", url.Values{
			"username": {"alice"},
			"password": {"wrong"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username or Password does not match!")

		w2 := do(r, http.MethodGet, "/posts/my-posts", nil, w.Result().Cookies())
		assert.Equal(t, http.StatusFound, w2.Code)
		assert.Equal(t, "/", w2.Header().Get("Location"))
	})

	t.Run("Unknown user gets the same generic message", func(t *testing.T) {
		w := do(r, http.MethodPost, "/login", url.Values{
			"username": {"mallory"},
			"password": {"s3cret"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username or Password does not match!")
	})

	t.Run("Correct credentials log in", func(t *testing.T) {
		w := do(r, http.MethodPost, "/login", url.Values{
			"username": {"alice"},
			"password": {"s3cret"},
		}, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/my-posts", w.Header().Get("Location"))

		w2 := do(r, http.MethodGet, "/posts/my-posts", nil, w.Result().Cookies())
		assert.Equal(t, http.StatusOK, w2.Code)
	})
}

func TestDraftVisibility(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := signup(t, r, "alice")
	bob := signup(t, r, "bob")

	createPost(t, r, alice, "Secret draft", "Not ready", false)

	t.Run("Draft is absent from the home listing", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", nil, bob)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Secret draft")
	})

	t.Run("Draft detail redirects for non-owners", func(t *testing.T) {
		w := do(r, http.MethodGet, "/posts/1", nil, bob)
		assert.Equal(t, http.StatusFound, w.Code)

		w = do(r, http.MethodGet, "/posts/1", nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("Owner can preview the draft", func(t *testing.T) {
		w := do(r, http.MethodGet, "/posts/1", nil, alice)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Secret draft")
	})
}

func TestOwnershipChecks(t *testing.T) {
	r, stores := newTestRouter(t)
	alice := signup(t, r, "alice")
	bob := signup(t, r, "bob")

	createPost(t, r, alice, "Hello", "World", true)

	t.Run("Non-owner edit form redirects", func(t *testing.T) {
		w := do(r, http.MethodGet, "/posts/1/edit", nil, bob)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts/my-posts", w.Header().Get("Location"))
	})

	t.Run("Non-owner update has no effect", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/1/edit", url.Values{
			"title": {"Hijacked"},
			"body":  {"Nope"},
		}, bob)
		assert.Equal(t, http.StatusFound, w.Code)

		detail, err := stores.Posts.GetDetail(context.Background(), 1, 0)
		require.NoError(t, err)
		assert.Equal(t, "Hello", detail.Title)
	})

	t.Run("Non-owner delete has no effect", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/1/delete", nil, bob)
		assert.Equal(t, http.StatusFound, w.Code)

		_, err := stores.Posts.GetDetail(context.Background(), 1, 0)
		require.NoError(t, err)
	})

	t.Run("Owner edit form renders the post", func(t *testing.T) {
		w := do(r, http.MethodGet, "/posts/1/edit", nil, alice)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello")
	})
}

// TestBlogScenario walks the end-to-end flow: alice posts, bob comments,
// both exercise their delete rights, alice removes the post.
func TestBlogScenario(t *testing.T) {
	r, stores := newTestRouter(t)
	ctx := context.Background()

	alice := signup(t, r, "alice")
	createPost(t, r, alice, "Hello", "World", true)

	t.Run("Home shows the post with zero comments", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hello")
		assert.Contains(t, w.Body.String(), "0 comment(s)")
	})

	bob := signup(t, r, "bob")

	t.Run("Bob comments on the post", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/1/add-comment", url.Values{
			"title": {"Hi"},
			"text":  {"nice post"},
		}, bob)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1", w.Header().Get("Location"))

		body := do(r, http.MethodGet, "/posts/1", nil, bob).Body.String()
		assert.Contains(t, body, "nice post")
		assert.Contains(t, body, "by bob")
	})

	t.Run("Comment delete button shows for alice and bob only", func(t *testing.T) {
		deleteAction := "/posts/1/1/delete"

		assert.Contains(t, do(r, http.MethodGet, "/posts/1", nil, alice).Body.String(), deleteAction)
		assert.Contains(t, do(r, http.MethodGet, "/posts/1", nil, bob).Body.String(), deleteAction)

		carol := signup(t, r, "carol")
		assert.NotContains(t, do(r, http.MethodGet, "/posts/1", nil, carol).Body.String(), deleteAction)
		assert.NotContains(t, do(r, http.MethodGet, "/posts/1", nil, nil).Body.String(), deleteAction)
	})

	t.Run("Outsiders cannot delete the comment", func(t *testing.T) {
		carol := []*http.Cookie(nil)
		w := do(r, http.MethodPost, "/posts/1/1/delete", nil, carol)
		assert.Equal(t, http.StatusFound, w.Code)

		detail, err := stores.Posts.GetDetail(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, detail.Comments, 1)
	})

	t.Run("Bob deletes his own comment", func(t *testing.T) {
		w := do(r, http.MethodPost, "/posts/1/1/delete", nil, bob)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/1", w.Header().Get("Location"))

		detail, err := stores.Posts.GetDetail(ctx, 1, 0)
		require.NoError(t, err)
		assert.Empty(t, detail.Comments)
	})

	t.Run("Alice deletes the post", func(t *testing.T) {
		// Leave a comment behind to verify the cascade
		w := do(r, http.MethodPost, "/posts/1/add-comment", url.Values{
			"title": {"Bye"},
			"text":  {"last words"},
		}, bob)
		require.Equal(t, http.StatusFound, w.Code)

		w = do(r, http.MethodPost, "/posts/1/delete", nil, alice)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/posts/my-posts", w.Header().Get("Location"))

		w = do(r, http.MethodGet, fmt.Sprintf("/posts/%d", 1), nil, nil)
		assert.Equal(t, http.StatusFound, w.Code)

		_, err := stores.Posts.GetDetail(ctx, 1, 0)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMyPosts(t *testing.T) {
	r, _ := newTestRouter(t)
	alice := signup(t, r, "alice")
	bob := signup(t, r, "bob")

	createPost(t, r, alice, "Alice post", "body", true)
	createPost(t, r, alice, "Alice draft", "body", false)
	createPost(t, r, bob, "Bob post", "body", true)

	w := do(r, http.MethodGet, "/posts/my-posts", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alice post")
	assert.NotContains(t, body, "Bob post")
	// my-posts mirrors the public listing rule: published posts only
	assert.NotContains(t, body, "Alice draft")
}
