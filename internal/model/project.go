package model

import (
	"mime/multipart"
	"time"
)

// Project is a catalog entry. ImageIDs lists the ids of its owned images in
// ascending order; the bytes themselves are fetched per image.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageIDs    []int64   `json:"imageIds"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProjectRequest carries the multipart fields of a project creation.
type CreateProjectRequest struct {
	Name        string
	Description string
	Price       float64
	Images      []*multipart.FileHeader
}

// UpdateProjectRequest carries the multipart fields of a project edit.
// DeletedImageIDs are removed (only if owned by the project) and NewImages
// appended; existing image bytes are never modified in place.
type UpdateProjectRequest struct {
	Name            string
	Description     string
	Price           float64
	DeletedImageIDs []int64
	NewImages       []*multipart.FileHeader
}
