package handler

import (
	"net/http"

	"github.com/atelierhq/internal/service"
	"github.com/gin-gonic/gin"
)

// postPayload is the admin editor's post shape: tags arrive as the
// comma-joined string the form edits.
type postPayload struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	Tags     string `json:"tags"`
	Status   string `json:"status"`
}

func (p postPayload) toInput(authorID string) service.PostInput {
	return service.PostInput{
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		ImageURL: p.ImageURL,
		Tags:     p.Tags,
		Status:   p.Status,
		AuthorID: authorID,
	}
}

// ListPosts returns every post for the admin list view.
func (a *API) ListPosts(c *gin.Context) {
	posts, err := a.posts.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns one post plus its form rendering (tags joined back to a
// comma-separated string) for the edit view.
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"form": gin.H{"tags": a.posts.FormTags(post)},
	})
}

// CreatePost creates a post authored by the current admin.
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	authorID := ""
	if user, ok := CurrentAdmin(c); ok {
		authorID = user.ID
	}

	post, err := a.posts.Create(payload.toInput(authorID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post created", "post": post})
}

// UpdatePost updates an existing post.
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	post, err := a.posts.Update(id, payload.toInput(""))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post updated", "post": post})
}

// DeletePost is two-phase: the first call arms the row for this admin, a
// second call inside the confirmation window commits the delete.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if _, err := a.posts.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	user, _ := CurrentAdmin(c)
	if !a.confirms.Confirm(user.ID, "post", id) {
		c.JSON(http.StatusAccepted, gin.H{"armed": true, "message": "confirm to delete this post"})
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
