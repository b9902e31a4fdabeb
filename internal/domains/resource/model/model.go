package model

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a downloadable asset listed on the marketplace. The
// binary objects themselves live in the object store; image_url and
// file_url only reference them.
type Resource struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Tags        []string   `json:"tags" db:"tags"`
	Author      string     `json:"author" db:"author"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	FileURL     string     `json:"file_url" db:"file_url"`
	Downloads   int64      `json:"downloads" db:"downloads"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UserID      *uuid.UUID `json:"userId,omitempty" db:"user_id"`
}

// OwnerInfo is the minimal user projection embedded in detail
// responses.
type OwnerInfo struct {
	DisplayName string `json:"displayName"`
	Image       string `json:"image"`
}

// ResourceWithOwner is a resource joined with its owner's public
// profile. Owner is nil for anonymous uploads.
type ResourceWithOwner struct {
	Resource
	Owner *OwnerInfo `json:"user,omitempty"`
}

// Stats aggregates marketplace totals for the about/careers pages.
type Stats struct {
	Resources int64 `json:"resources"`
	Users     int64 `json:"users"`
	Downloads int64 `json:"downloads"`
}

// Categories is the fixed set a resource may belong to.
var Categories = []string{
	"templates",
	"books",
	"icons",
	"tools",
	"fonts",
	"themes",
	"plugins",
	"graphics",
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}
