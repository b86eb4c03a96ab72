package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/atelierhq/internal/db"
	"github.com/atelierhq/internal/util"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectSlugTaken = errors.New("a project with this slug already exists")
)

// ProjectService handles portfolio project CRUD.
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput carries a fully typed project payload, as bound from the
// JSON API or produced by ParseForm.
type ProjectInput struct {
	Title        string
	Slug         string
	Category     string
	Client       string
	Year         string
	Duration     string
	Description  string
	Overview     string
	Challenge    string
	Solution     string
	ThumbnailURL string
	HeroImageURL string
	Services     []string
	Process      []db.ProcessStep
	Gallery      []db.GalleryItem
	Results      []db.ResultItem
	Testimonial  *db.Testimonial
}

// ProjectForm mirrors the admin editor: services as a comma-joined string,
// the structured collections as JSON text from textareas.
type ProjectForm struct {
	Title        string
	Slug         string
	Category     string
	Client       string
	Year         string
	Duration     string
	Description  string
	Overview     string
	Challenge    string
	Solution     string
	ThumbnailURL string
	HeroImageURL string
	Services     string
	Process      string
	Gallery      string
	Results      string
	Testimonial  string
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// List returns all projects, newest first.
func (s *ProjectService) List() ([]db.Project, error) {
	var projects []db.Project
	if err := s.db.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetBySlug fetches a project by slug.
func (s *ProjectService) GetBySlug(slug string) (*db.Project, error) {
	var project db.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project after validating required fields and
// confirming the slug is free.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	project, err := s.buildProject(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlugFree(project.Slug, 0); err != nil {
		return nil, err
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Update replaces the project currently stored under slug. Renaming onto a
// taken slug aborts before the write.
func (s *ProjectService) Update(slug string, input ProjectInput) (*db.Project, error) {
	existing, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildProject(input)
	if err != nil {
		return nil, err
	}

	if updated.Slug != existing.Slug {
		if err := s.checkSlugFree(updated.Slug, existing.ID); err != nil {
			return nil, err
		}
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.db.Save(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a project by id.
func (s *ProjectService) Delete(id uint) error {
	result := s.db.Delete(&db.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteBySlug removes a project by slug.
func (s *ProjectService) DeleteBySlug(slug string) error {
	result := s.db.Where("slug = ?", slug).Delete(&db.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// ParseForm converts the admin editor's string fields into a typed input.
// A JSON field that does not parse rejects the whole submit; nothing is
// silently coerced.
func (s *ProjectService) ParseForm(form ProjectForm) (ProjectInput, error) {
	input := ProjectInput{
		Title:        form.Title,
		Slug:         form.Slug,
		Category:     form.Category,
		Client:       form.Client,
		Year:         form.Year,
		Duration:     form.Duration,
		Description:  form.Description,
		Overview:     form.Overview,
		Challenge:    form.Challenge,
		Solution:     form.Solution,
		ThumbnailURL: form.ThumbnailURL,
		HeroImageURL: form.HeroImageURL,
		Services:     SplitList(form.Services),
	}

	if err := decodeJSONField("process", form.Process, &input.Process); err != nil {
		return ProjectInput{}, err
	}
	if err := decodeJSONField("gallery", form.Gallery, &input.Gallery); err != nil {
		return ProjectInput{}, err
	}
	if err := decodeJSONField("results", form.Results, &input.Results); err != nil {
		return ProjectInput{}, err
	}
	if strings.TrimSpace(form.Testimonial) != "" {
		var testimonial db.Testimonial
		if err := decodeJSONField("testimonial", form.Testimonial, &testimonial); err != nil {
			return ProjectInput{}, err
		}
		input.Testimonial = &testimonial
	}

	return input, nil
}

// EditorForm renders a stored project back into editable form values, with
// the JSON collections pretty-printed for their textareas.
func (s *ProjectService) EditorForm(project *db.Project) ProjectForm {
	form := ProjectForm{
		Title:        project.Title,
		Slug:         project.Slug,
		Category:     project.Category,
		Client:       project.Client,
		Year:         project.Year,
		Duration:     project.Duration,
		Description:  project.Description,
		Overview:     project.Overview,
		Challenge:    project.Challenge,
		Solution:     project.Solution,
		ThumbnailURL: project.ThumbnailURL,
		HeroImageURL: project.HeroImageURL,
		Services:     JoinList(project.Services),
	}

	form.Process = prettyJSON(project.Process)
	form.Gallery = prettyJSON(project.Gallery)
	form.Results = prettyJSON(project.Results)
	if project.Testimonial != nil {
		form.Testimonial = prettyJSON(project.Testimonial)
	}

	return form
}

func (s *ProjectService) buildProject(input ProjectInput) (*db.Project, error) {
	required := []struct {
		field string
		value string
	}{
		{"title", input.Title},
		{"slug", input.Slug},
		{"category", input.Category},
		{"description", input.Description},
		{"thumbnail_url", input.ThumbnailURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, validationErr(r.field, "missing required field")
		}
	}

	slug := strings.TrimSpace(input.Slug)
	if !util.IsValidSlug(slug) {
		return nil, validationErr("slug", "slug must be lowercase letters, digits and hyphens")
	}

	return &db.Project{
		Title:        strings.TrimSpace(input.Title),
		Slug:         slug,
		Category:     strings.TrimSpace(input.Category),
		Client:       strings.TrimSpace(input.Client),
		Year:         strings.TrimSpace(input.Year),
		Duration:     strings.TrimSpace(input.Duration),
		Description:  strings.TrimSpace(input.Description),
		Overview:     input.Overview,
		Challenge:    input.Challenge,
		Solution:     input.Solution,
		ThumbnailURL: strings.TrimSpace(input.ThumbnailURL),
		HeroImageURL: strings.TrimSpace(input.HeroImageURL),
		Services:     input.Services,
		Process:      input.Process,
		Gallery:      input.Gallery,
		Results:      input.Results,
		Testimonial:  input.Testimonial,
	}, nil
}

func (s *ProjectService) checkSlugFree(slug string, selfID uint) error {
	var count int64
	query := s.db.Model(&db.Project{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProjectSlugTaken
	}
	return nil
}

func decodeJSONField(field, raw string, dst interface{}) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), dst); err != nil {
		return validationErr(field, "field is not valid JSON")
	}
	return nil
}

func prettyJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
