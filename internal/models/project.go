package models

import (
	"time"
)

// Category classifies a portfolio project.
type Category string

const (
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryOther   Category = "other"
)

// ValidCategory returns true if s is one of the known categories.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryWeb, CategoryMobile, CategoryDesktop, CategoryOther:
		return true
	}
	return false
}

// Project represents a portfolio project shown on the site.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Images       []string  `json:"images"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	Featured     bool      `json:"featured"`
	Category     Category  `json:"category"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewProject creates a new Project with initialized timestamps.
func NewProject(title, description string, category Category) *Project {
	now := time.Now()
	return &Project{
		Title:       title,
		Description: description,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
