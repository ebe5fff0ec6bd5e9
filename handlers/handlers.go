// Package handlers contains the gin handlers for the HTTP surface. Denied
// and missing resources redirect to a safe listing page; only unexpected
// store failures surface as a 500 error page.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// renderError is the generic fault boundary for unexpected store failures.
func renderError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
}

// paramInt parses a numeric path parameter; ok is false for garbage ids,
// which callers treat the same as a missing resource.
func paramInt(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return id, true
}
