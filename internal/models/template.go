package models

import "time"

// EmailTemplate represents a reusable email template
type EmailTemplate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	HTMLContent  string    `json:"htmlContent"`
	TextContent  string    `json:"textContent,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
