package event

import "testing"

func intPtr(n int) *int { return &n }

func validReq() CreateEventRequest {
	return CreateEventRequest{
		Title:       "Summer Screening",
		Description: "An outdoor screening with plenty of room",
		Location:    "Town Hall",
		Start:       "2025-06-01T18:00:00Z",
		End:         "2025-06-01T20:00:00Z",
		PriceType:   PriceFree,
	}
}

func TestValidate_CrossFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateEventRequest)
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid free event",
			mutate: func(r *CreateEventRequest) {},
		},
		{
			name: "end equal to start rejected",
			mutate: func(r *CreateEventRequest) {
				r.End = r.Start
			},
			wantField: "end",
			wantMsg:   "end must be after start",
		},
		{
			name: "end before start rejected",
			mutate: func(r *CreateEventRequest) {
				r.Start = "2025-01-01T10:00:00Z"
				r.End = "2025-01-01T09:00:00Z"
			},
			wantField: "end",
			wantMsg:   "end must be after start",
		},
		{
			name: "unparseable start reported on start",
			mutate: func(r *CreateEventRequest) {
				r.Start = "next tuesday"
			},
			wantField: "start",
		},
		{
			name: "fixed without pricePence rejected",
			mutate: func(r *CreateEventRequest) {
				r.PriceType = PriceFixed
			},
			wantField: "pricePence",
			wantMsg:   "required for fixed price events",
		},
		{
			name: "free with pricePence rejected",
			mutate: func(r *CreateEventRequest) {
				r.PriceType = PriceFree
				r.PricePence = intPtr(500)
			},
			wantField: "pricePence",
			wantMsg:   "must be omitted for free events",
		},
		{
			name: "pay what you feel with pricePence accepted",
			mutate: func(r *CreateEventRequest) {
				r.PriceType = PricePayWhatYouFeel
				r.PricePence = intPtr(700)
			},
		},
		{
			name: "pay what you feel without pricePence accepted",
			mutate: func(r *CreateEventRequest) {
				r.PriceType = PricePayWhatYouFeel
			},
		},
		{
			name: "fixed with pricePence accepted",
			mutate: func(r *CreateEventRequest) {
				r.PriceType = PriceFixed
				r.PricePence = intPtr(1200)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validReq()
			tc.mutate(&req)

			errs := req.Validate()

			if tc.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}

			found := false

			for _, fe := range errs {
				if fe.Field != tc.wantField {
					continue
				}

				found = true

				if tc.wantMsg != "" && fe.Message != tc.wantMsg {
					t.Fatalf("field %s: got message %q, want %q", fe.Field, fe.Message, tc.wantMsg)
				}
			}

			if !found {
				t.Fatalf("expected an error on field %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestValidate_CollectsMultipleFailures(t *testing.T) {
	req := validReq()
	req.End = req.Start
	req.PriceType = PriceFixed

	errs := req.Validate()

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}

func TestValidate_IsPaidAlwaysDerived(t *testing.T) {
	tests := []struct {
		priceType  PriceType
		pricePence *int
		clientSent bool
		want       bool
	}{
		{PriceFree, nil, true, false},
		{PriceFixed, intPtr(500), false, true},
		{PricePayWhatYouFeel, nil, false, true},
	}

	for _, tc := range tests {
		req := validReq()
		req.PriceType = tc.priceType
		req.PricePence = tc.pricePence
		req.IsPaid = tc.clientSent

		if errs := req.Validate(); len(errs) != 0 {
			t.Fatalf("%s: unexpected errors %v", tc.priceType, errs)
		}

		if req.IsPaid != tc.want {
			t.Fatalf("%s: isPaid = %v, want %v", tc.priceType, req.IsPaid, tc.want)
		}
	}
}

func TestValidate_DefaultsPriceTypeToFree(t *testing.T) {
	req := validReq()
	req.PriceType = ""
	req.IsPaid = true

	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}

	if req.PriceType != PriceFree {
		t.Fatalf("priceType = %q, want free", req.PriceType)
	}

	if req.IsPaid {
		t.Fatalf("isPaid should normalize to false for free events")
	}
}

func TestNewFromCreateRequest_CanonicalTimestamps(t *testing.T) {
	req := validReq()
	req.Start = "2025-06-01T19:00:00+01:00"
	req.End = "2025-06-01T21:00:00+01:00"

	if errs := req.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}

	e := NewFromCreateRequest(req)

	if e.ID == "" {
		t.Fatalf("expected a generated id")
	}

	if e.Start == nil || *e.Start != "2025-06-01T18:00:00Z" {
		t.Fatalf("start = %v, want 2025-06-01T18:00:00Z", e.Start)
	}

	if e.End == nil || *e.End != "2025-06-01T20:00:00Z" {
		t.Fatalf("end = %v, want 2025-06-01T20:00:00Z", e.End)
	}

	if e.CreatedAt.IsZero() {
		t.Fatalf("createdAt must be set")
	}
}
