package dto

import "recipehub/internal/http-api/models"

// TagResponse: one tag
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func TagFromModel(t models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// CreateTagRequest: admin payload for new reference tags
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=256"`
}
