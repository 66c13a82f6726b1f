package event

import "time"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate runs the checks that binding tags cannot express: datetime
// parsing, the temporal ordering rule and the price-model consistency rules.
// All failures are collected rather than returned one at a time. On the way
// out it also normalizes derived fields, so a request that passed Validate
// satisfies every Event invariant.
func (req *CreateEventRequest) Validate() []FieldError {
	var errs []FieldError

	if req.PriceType == "" {
		req.PriceType = PriceFree
	}

	start, startErr := ParseTimestamp(req.Start)
	end, endErr := ParseTimestamp(req.End)

	if startErr != nil {
		errs = append(errs, FieldError{Field: "start", Message: "must be a valid ISO-8601 datetime"})
	}

	if endErr != nil {
		errs = append(errs, FieldError{Field: "end", Message: "must be a valid ISO-8601 datetime"})
	}

	// The ordering rule only makes sense once both ends parsed.
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, FieldError{Field: "end", Message: "end must be after start"})
	}

	switch req.PriceType {
	case PriceFixed:
		if req.PricePence == nil {
			errs = append(errs, FieldError{Field: "pricePence", Message: "required for fixed price events"})
		}
	case PriceFree:
		if req.PricePence != nil {
			errs = append(errs, FieldError{Field: "pricePence", Message: "must be omitted for free events"})
		}
	}

	// isPaid is derived, never trusted from the client.
	req.IsPaid = req.PriceType != PriceFree

	return errs
}

// ParseTimestamp accepts the datetime layouts clients actually send:
// RFC3339 with or without sub-second precision, and a bare local form
// without an offset (treated as UTC).
func ParseTimestamp(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	var lastErr error

	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
