package models

import "time"

// Cause represents a fundraising cause
type Cause struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Tagline     string    `json:"tagline"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
	BannerImage string    `json:"banner_image,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
