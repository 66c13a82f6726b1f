package event

import (
	"time"

	"github.com/google/uuid"
)

// NewFromCreateRequest builds the persistable Event from a request that has
// already passed Validate. Start/End are re-rendered in canonical UTC form.
func NewFromCreateRequest(req CreateEventRequest) Event {
	start := canonical(req.Start)
	end := canonical(req.End)

	return Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       start,
		End:         end,
		IsPaid:      req.PriceType != PriceFree,
		PriceType:   req.PriceType,
		PricePence:  req.PricePence,
		Capacity:    req.Capacity,
		MovieID:     req.MovieID,
		CreatedAt:   time.Now().UTC(),
	}
}

func canonical(raw string) *string {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return nil
	}

	s := t.Format(time.RFC3339)
	return &s
}
