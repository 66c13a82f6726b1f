package signup

import (
	"errors"
	"time"

	"github.com/communityevents/backend/internal/domain/event"
	"github.com/google/uuid"
)

type Signup struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AmountPence *int      `json:"amountPence,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// the referenced event does not exist
var ErrInvalidEvent = errors.New("invalid eventId")

// payment offered for a free event
var ErrFreeEvent = errors.New("free event accepts no payment")

// amount does not match a fixed-price event's price
var ErrFixedPriceMismatch = errors.New("amount must equal the fixed price")

type CreateSignupRequest struct {
	EventID     string `json:"eventId" binding:"required"`
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	AmountPence *int   `json:"amountPence" binding:"omitempty,min=1"`
}

// CheckPolicy validates the offered amount against the resolved event's
// price model. A nil or zero amount counts as "no payment".
func CheckPolicy(ev event.Event, amountPence *int) error {
	switch ev.PriceType {
	case event.PriceFree:
		if amountPence != nil && *amountPence > 0 {
			return ErrFreeEvent
		}
	case event.PriceFixed:
		if amountPence == nil || ev.PricePence == nil || *amountPence != *ev.PricePence {
			return ErrFixedPriceMismatch
		}
	case event.PricePayWhatYouFeel:
		// any positive amount, or none at all
	}

	return nil
}

func NewFromCreateRequest(req CreateSignupRequest) Signup {
	return Signup{
		ID:          uuid.NewString(),
		EventID:     req.EventID,
		Name:        req.Name,
		Email:       req.Email,
		AmountPence: req.AmountPence,
		CreatedAt:   time.Now().UTC(),
	}
}
