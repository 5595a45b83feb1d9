package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostModel struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Title           string         `gorm:"type:varchar(100);not null" json:"title"`
	Slug            string         `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	Summary         string         `gorm:"type:varchar(200);not null" json:"summary"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	Image           string         `gorm:"type:varchar(500);not null" json:"image"`
	Categories      pq.StringArray `gorm:"type:text[];not null" json:"categories"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	Author          string         `gorm:"type:varchar(100);not null" json:"author"`
	MetaDescription string         `gorm:"type:varchar(160)" json:"meta_description"`
	Status          string         `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	PublishedAt     *time.Time     `gorm:"index" json:"published_at"`
	ReadTime        int            `gorm:"default:0" json:"read_time"`
	Views           int            `gorm:"default:0" json:"views"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
