package event

import (
	"errors"
	"time"
)

type PriceType string

const (
	PriceFree           PriceType = "free"
	PriceFixed          PriceType = "fixed"
	PricePayWhatYouFeel PriceType = "pay_what_you_feel"
)

// Event is the normalized record served to clients and handed to the
// calendar encoder. Start and End are canonical ISO-8601 strings; they are
// nil when a legacy stored value could not be parsed.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Start       *string   `json:"start"`
	End         *string   `json:"end"`
	IsPaid      bool      `json:"isPaid"`
	PriceType   PriceType `json:"priceType"`
	PricePence  *int      `json:"pricePence,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	MovieID     *string   `json:"movieId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("event not found")

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	Location    string `json:"location" binding:"required,min=2"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	// Client-supplied isPaid is accepted on the wire but always recomputed
	// from priceType during validation.
	IsPaid     bool      `json:"isPaid"`
	PriceType  PriceType `json:"priceType" binding:"omitempty,oneof=free fixed pay_what_you_feel"`
	PricePence *int      `json:"pricePence" binding:"omitempty,min=1"`
	Capacity   *int      `json:"capacity" binding:"omitempty,min=1"`
	MovieID    *string   `json:"movieId"`
}
