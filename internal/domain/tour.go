package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Tour struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	DetailedDescription string          `json:"detailed_description"`
	Price               decimal.Decimal `json:"price"`
	Duration            string          `json:"duration"`
	Category            string          `json:"category"`
	ImageURL            string          `json:"image_url"`
	Address             string          `json:"address"`
	Latitude            *float64        `json:"latitude,omitempty"`
	Longitude           *float64        `json:"longitude,omitempty"`
	Available           bool            `json:"available"`
	CreatedAt           time.Time       `json:"created_at"`
}

// TourInput carries the admin tour form fields for create and update.
type TourInput struct {
	Title               string
	Description         string
	DetailedDescription string
	Price               decimal.Decimal
	Duration            string
	Category            string
	ImageURL            string
	Address             string
	Latitude            *float64
	Longitude           *float64
	Available           bool
}

func (t *TourInput) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Address = strings.TrimSpace(t.Address)
}

func (t *TourInput) Validate() error {
	if t.Title == "" {
		return ErrMissingFields
	}
	if t.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
