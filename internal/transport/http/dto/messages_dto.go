package dto

import "time"

type CreateMessageRequest struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

type MessageResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Message      string    `json:"message"`
	IsPublic     bool      `json:"is_public"`
	Type         string    `json:"type"`
	VoicenoteURL string    `json:"voicenote_url,omitempty"`
}

type MessagesPageResponse struct {
	Items      []MessageResponse `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
}

type MessagesListResponse struct {
	Items []MessageResponse `json:"items"`
}
