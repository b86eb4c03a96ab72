package db

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a blog entry. Tags are stored as a JSON array and edited as a
// comma-joined string in the admin form.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt   string     `json:"excerpt"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url"`
	Tags      StringList `gorm:"serializer:json" json:"tags"`
	Status    string     `gorm:"not null;default:draft" json:"status"`
	AuthorID  string     `gorm:"size:36" json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName matches the persisted layout.
func (Post) TableName() string { return "blog_posts" }

// StringList is a JSON-serialized string array column.
type StringList []string
