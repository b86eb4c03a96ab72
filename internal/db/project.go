package db

import "time"

// ProcessStep is one ordered entry of a project's process timeline.
type ProcessStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GalleryItem is one image of a project's gallery.
type GalleryItem struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ResultItem is one outcome highlight, e.g. {"stat": "+120%", ...}.
type ResultItem struct {
	Stat        string `json:"stat"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is an optional client quote attached to a project.
type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position"`
}

// Project is a portfolio case study. The structured collections are stored
// as JSON columns; deletes are hard deletes.
type Project struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Title        string        `gorm:"not null" json:"title"`
	Slug         string        `gorm:"uniqueIndex;not null" json:"slug"`
	Category     string        `gorm:"not null" json:"category"`
	Client       string        `json:"client"`
	Year         string        `json:"year"`
	Duration     string        `json:"duration"`
	Description  string        `gorm:"not null" json:"description"`
	Overview     string        `json:"overview"`
	Challenge    string        `json:"challenge"`
	Solution     string        `json:"solution"`
	ThumbnailURL string        `gorm:"not null" json:"thumbnail_url"`
	HeroImageURL string        `json:"hero_image_url"`
	Services     StringList    `gorm:"serializer:json" json:"services"`
	Process      []ProcessStep `gorm:"serializer:json" json:"process"`
	Gallery      []GalleryItem `gorm:"serializer:json" json:"gallery"`
	Results      []ResultItem  `gorm:"serializer:json" json:"results"`
	Testimonial  *Testimonial  `gorm:"serializer:json" json:"testimonial,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
