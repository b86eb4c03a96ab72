package handler

import (
	"bytes"
	"net/http"

	"github.com/atelierhq/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts post markdown into sanitized HTML.
func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// Ping is a trivial liveness endpoint.
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports service and database health.
func (a *API) Health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListPublishedPosts feeds the public blog index.
func (a *API) ListPublishedPosts(c *gin.Context) {
	posts, err := a.posts.ListPublished()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPublishedPost returns one published post with its body rendered to
// sanitized HTML. Drafts stay invisible on the public surface.
func (a *API) GetPublishedPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if post.Status != db.PostStatusPublished {
		respondError(c, http.StatusNotFound, "blog post not found")
		return
	}

	rendered, err := renderMarkdown(post.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "content_html": rendered})
}
