package dto

import "time"

type PhotoResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Caption   string    `json:"caption,omitempty"`
	PhotoURL  string    `json:"photo_url"`
	IsPublic  bool      `json:"is_public"`
}

type PhotosPageResponse struct {
	Items      []PhotoResponse `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

type PhotosListResponse struct {
	Items []PhotoResponse `json:"items"`
}
