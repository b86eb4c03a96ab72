package service

import (
	"errors"
	"strings"

	"github.com/atelierhq/internal/db"
	"github.com/atelierhq/internal/util"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("blog post not found")
	ErrPostSlugTaken = errors.New("a post with this slug already exists")
)

// PostService handles blog post CRUD and the form normalization contract.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
// Tags arrives as the comma-joined string the admin form edits.
type PostInput struct {
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	ImageURL string
	Tags     string
	Status   string
	AuthorID string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List returns all posts, newest first.
func (s *PostService) List() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Where("status = ?", db.PostStatusPublished).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by slug.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post. The slug is derived from the title when the
// form leaves it empty; a taken slug aborts before the insert.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	post, err := s.buildPost(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkSlugFree(post.Slug, 0); err != nil {
		return nil, err
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Update modifies an existing post. Renaming onto a taken slug aborts.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildPost(input)
	if err != nil {
		return nil, err
	}

	if updated.Slug != existing.Slug {
		if err := s.checkSlugFree(updated.Slug, existing.ID); err != nil {
			return nil, err
		}
	}

	existing.Title = updated.Title
	existing.Slug = updated.Slug
	existing.Excerpt = updated.Excerpt
	existing.Content = updated.Content
	existing.ImageURL = updated.ImageURL
	existing.Tags = updated.Tags
	existing.Status = updated.Status
	if updated.AuthorID != "" {
		existing.AuthorID = updated.AuthorID
	}

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a post permanently.
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// FormTags renders stored tags back into the comma-joined form value.
func (s *PostService) FormTags(post *db.Post) string {
	return JoinList(post.Tags)
}

func (s *PostService) buildPost(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationErr("title", "title is required")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return nil, validationErr("slug", "slug must be lowercase letters, digits and hyphens")
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case "":
		status = db.PostStatusDraft
	case db.PostStatusDraft, db.PostStatusPublished:
	default:
		return nil, validationErr("status", "status must be draft or published")
	}

	return &db.Post{
		Title:    title,
		Slug:     slug,
		Excerpt:  strings.TrimSpace(input.Excerpt),
		Content:  input.Content,
		ImageURL: strings.TrimSpace(input.ImageURL),
		Tags:     SplitList(input.Tags),
		Status:   status,
		AuthorID: strings.TrimSpace(input.AuthorID),
	}, nil
}

func (s *PostService) checkSlugFree(slug string, selfID uint) error {
	var count int64
	query := s.db.Model(&db.Post{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPostSlugTaken
	}
	return nil
}
