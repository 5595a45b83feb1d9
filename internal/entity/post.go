package entity

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Summary         string     `json:"summary"`
	Content         string     `json:"content,omitempty"`
	Image           string     `json:"image"`
	Categories      []string   `json:"categories"`
	Tags            []string   `json:"tags"`
	Author          string     `json:"author"`
	MetaDescription string     `json:"metaDescription,omitempty"`
	Status          PostStatus `json:"status"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	ReadTime        int        `json:"readTime"`
	Views           int        `json:"views"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Published reports whether the post is visible to public endpoints.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}
