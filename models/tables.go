package models

import (
	"strings"
	"time"
)

type Author struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Bio      string `gorm:"type:text" json:"bio,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type Category struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"unique;not null;index" json:"title"` // display key, also the filter value
	Color       string `json:"color,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

type Post struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `sql:"index" json:"deleted_at,omitempty"`
	Title        string     `gorm:"not null" json:"title"`
	Slug         string     `gorm:"not null;uniqueIndex" json:"slug"`
	Excerpt      string     `gorm:"type:text" json:"excerpt,omitempty"`
	Body         string     `gorm:"type:text" json:"-"`
	MainImageURL string     `json:"mainImageUrl,omitempty"`
	MainImageAlt string     `json:"mainImageAlt,omitempty"`
	AuthorID     string     `gorm:"index" json:"-"`
	PublishedAt  time.Time  `json:"publishedAt"`
	ReadingTime  int        `json:"estimatedReadingTime,omitempty"` // minutes
	Draft        bool       `json:"draft"`
}

type Project struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `sql:"index" json:"deleted_at,omitempty"`
	Title        string     `gorm:"not null" json:"title"`
	Slug         string     `gorm:"not null;uniqueIndex" json:"slug"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Body         string     `gorm:"type:text" json:"-"`
	MainImageURL string     `json:"mainImageUrl,omitempty"`
	MainImageAlt string     `json:"mainImageAlt,omitempty"`
	Technologies string     `gorm:"type:text" json:"-"` // comma-separated
	GithubURL    string     `json:"githubUrl,omitempty"`
	LiveURL      string     `json:"liveUrl,omitempty"`
	LearnMoreURL string     `json:"learnMoreUrl,omitempty"`
	PublishedAt  time.Time  `json:"publishedAt"`
	Featured     bool       `json:"featured"`
	Draft        bool       `json:"draft"`
}

// TechnologyList splits the comma-separated technologies column.
func (p *Project) TechnologyList() []string {
	if p.Technologies == "" {
		return nil
	}
	var list []string
	for _, t := range strings.Split(p.Technologies, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			list = append(list, t)
		}
	}
	return list
}

type PostCategory struct {
	ID         uint   `gorm:"primary_key"`
	PostID     string `gorm:"not null;index" json:"post_id"`
	CategoryID string `gorm:"not null;index" json:"category_id"`
}

type ProjectCategory struct {
	ID         uint   `gorm:"primary_key"`
	ProjectID  string `gorm:"not null;index" json:"project_id"`
	CategoryID string `gorm:"not null;index" json:"category_id"`
}
