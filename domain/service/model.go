package service

import "time"

// Visa service categories
const (
	CategoryTourist   = "tourist"
	CategoryStudent   = "student"
	CategoryWork      = "work"
	CategoryBusiness  = "business"
	CategoryPermanent = "permanent-residency"
	CategoryOther     = "other"
)

// Service is an offered visa service.
type Service struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Eligibility string    `db:"eligibility" json:"eligibility"`
	Process     string    `db:"process" json:"process"`
	Price       string    `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	Country     string    `db:"country" json:"country"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Featured    bool      `db:"featured" json:"featured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest is the payload for creating a service
type CreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Eligibility string `json:"eligibility" validate:"required"`
	Process     string `json:"process" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=tourist student work business permanent-residency other"`
	Country     string `json:"country" validate:"required"`
	ImageURL    string `json:"image_url"`
	Featured    bool   `json:"featured"`
}

// UpdateRequest is the partial-update payload
type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	Process     string `json:"process"`
	Price       string `json:"price"`
	Category    string `json:"category" validate:"omitempty,oneof=tourist student work business permanent-residency other"`
	Country     string `json:"country"`
	ImageURL    string `json:"image_url"`
	Featured    *bool  `json:"featured"`
}
