package handler

import (
	"net/http"

	"github.com/atelierhq/internal/db"
	"github.com/atelierhq/internal/service"
	"github.com/gin-gonic/gin"
)

// projectPayload is the REST shape for project writes; the structured
// collections arrive already typed.
type projectPayload struct {
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Category     string           `json:"category"`
	Client       string           `json:"client"`
	Year         string           `json:"year"`
	Duration     string           `json:"duration"`
	Description  string           `json:"description"`
	Overview     string           `json:"overview"`
	Challenge    string           `json:"challenge"`
	Solution     string           `json:"solution"`
	ThumbnailURL string           `json:"thumbnail_url"`
	HeroImageURL string           `json:"hero_image_url"`
	Services     []string         `json:"services"`
	Process      []db.ProcessStep `json:"process"`
	Gallery      []db.GalleryItem `json:"gallery"`
	Results      []db.ResultItem  `json:"results"`
	Testimonial  *db.Testimonial  `json:"testimonial"`
}

func (p projectPayload) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:        p.Title,
		Slug:         p.Slug,
		Category:     p.Category,
		Client:       p.Client,
		Year:         p.Year,
		Duration:     p.Duration,
		Description:  p.Description,
		Overview:     p.Overview,
		Challenge:    p.Challenge,
		Solution:     p.Solution,
		ThumbnailURL: p.ThumbnailURL,
		HeroImageURL: p.HeroImageURL,
		Services:     p.Services,
		Process:      p.Process,
		Gallery:      p.Gallery,
		Results:      p.Results,
		Testimonial:  p.Testimonial,
	}
}

// ListProjects returns all projects, newest first.
func (a *API) ListProjects(c *gin.Context) {
	projects, err := a.projects.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject returns one project by slug.
func (a *API) GetProject(c *gin.Context) {
	project, err := a.projects.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject creates a project from a typed JSON payload.
func (a *API) CreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "invalid project payload") {
		return
	}

	project, err := a.projects.Create(payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject replaces the project stored under the path slug; the payload
// may carry a new slug to rename it.
func (a *API) UpdateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "invalid project payload") {
		return
	}

	project, err := a.projects.Update(c.Param("slug"), payload.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project by slug.
func (a *API) DeleteProject(c *gin.Context) {
	if err := a.projects.DeleteBySlug(c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// AdminListProjects returns projects plus their editor form values, so the
// edit view can fill its textareas without re-deriving the JSON by hand.
func (a *API) AdminListProjects(c *gin.Context) {
	projects, err := a.projects.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// AdminGetProject returns a project with its pretty-printed form rendering.
func (a *API) AdminGetProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := a.projects.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"form":    a.projects.EditorForm(project),
	})
}

// AdminDeleteProject is the two-phase variant used by the admin list view.
func (a *API) AdminDeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	if _, err := a.projects.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	user, _ := CurrentAdmin(c)
	if !a.confirms.Confirm(user.ID, "project", id) {
		c.JSON(http.StatusAccepted, gin.H{"armed": true, "message": "confirm to delete this project"})
		return
	}

	if err := a.projects.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
