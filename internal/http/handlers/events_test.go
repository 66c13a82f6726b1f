package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/communityevents/backend/internal/domain/event"
	"github.com/communityevents/backend/internal/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// Fake repository implementation of the handlers.EventsRepo interface

type fakeEventsRepo struct {
	createFn func(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	getFn    func(ctx context.Context, id string) (event.Event, error)
	listFn   func(ctx context.Context) ([]event.Event, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeEventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return event.Event{}, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return event.Event{}, nil
}

func (f *fakeEventsRepo) List(ctx context.Context) ([]event.Event, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

// small helper which returns a gin engine mounting one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func sampleStored() event.Event {
	return event.Event{
		ID:          uuid.NewString(),
		Title:       "Open Air Screening",
		Description: "A film under the stars",
		Location:    "Park",
		Start:       strPtr("2025-06-01T18:00:00Z"),
		End:         strPtr("2025-06-01T20:00:00Z"),
		PriceType:   event.PriceFree,
	}
}

func TestCreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
	}{
		{
			name: "success",
			body: `{
				"title": "Open Air Screening",
				"description": "A film under the stars",
				"location": "Park",
				"start": "2025-06-01T18:00:00Z",
				"end": "2025-06-01T20:00:00Z",
				"priceType": "free"
			}`,
			wantStatus: http.StatusCreated,
		},
		{
			name: "end before start",
			body: `{
				"title": "T12",
				"description": "Description long enough",
				"location": "Hall",
				"start": "2025-01-01T10:00:00Z",
				"end": "2025-01-01T09:00:00Z",
				"priceType": "free"
			}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "end",
		},
		{
			name: "fixed without pricePence",
			body: `{
				"title": "Paid Gig",
				"description": "Description long enough",
				"location": "Hall",
				"start": "2025-01-01T10:00:00Z",
				"end": "2025-01-01T11:00:00Z",
				"priceType": "fixed"
			}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "pricePence",
		},
		{
			name: "free with pricePence",
			body: `{
				"title": "Free Gig",
				"description": "Description long enough",
				"location": "Hall",
				"start": "2025-01-01T10:00:00Z",
				"end": "2025-01-01T11:00:00Z",
				"priceType": "free",
				"pricePence": 500
			}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "pricePence",
		},
		{
			name:       "shape failure from binding",
			body:       `{"title":"ab"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeEventsRepo{
				createFn: func(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
					return event.NewFromCreateRequest(req), nil
				},
			}

			h := handlers.NewEventsHandler(repo, nil, "https://example.com")
			r := setupRouter(http.MethodPost, "/events", h.CreateEvent)

			w := doJSON(t, r, http.MethodPost, "/events", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantField != "" && !strings.Contains(w.Body.String(), `"`+tc.wantField+`"`) {
				t.Fatalf("expected error on field %q, body=%s", tc.wantField, w.Body.String())
			}
		})
	}
}

func TestCreateEvent_OverridesClientIsPaid(t *testing.T) {
	var got event.CreateEventRequest

	repo := &fakeEventsRepo{
		createFn: func(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
			got = req
			return event.NewFromCreateRequest(req), nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, "https://example.com")
	r := setupRouter(http.MethodPost, "/events", h.CreateEvent)

	w := doJSON(t, r, http.MethodPost, "/events", `{
		"title": "Open Air Screening",
		"description": "A film under the stars",
		"location": "Park",
		"start": "2025-06-01T18:00:00Z",
		"end": "2025-06-01T20:00:00Z",
		"priceType": "free",
		"isPaid": true
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	if got.IsPaid {
		t.Fatalf("client-supplied isPaid must be overridden for free events")
	}

	var resp event.Event

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.IsPaid {
		t.Fatalf("stored event reports isPaid=true for a free event")
	}
}

func TestGetEventByID(t *testing.T) {
	stored := sampleStored()

	repo := &fakeEventsRepo{
		getFn: func(_ context.Context, id string) (event.Event, error) {
			if id != stored.ID {
				return event.Event{}, event.ErrNotFound
			}
			return stored, nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, "https://example.com")
	r := setupRouter(http.MethodGet, "/events/:id", h.GetEventByID)

	w := doJSON(t, r, http.MethodGet, "/events/"+stored.ID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	// identical output for repeated reads with no intervening writes
	w2 := doJSON(t, r, http.MethodGet, "/events/"+stored.ID, "")

	if w.Body.String() != w2.Body.String() {
		t.Fatalf("repeated GET returned different bodies")
	}

	missing := doJSON(t, r, http.MethodGet, "/events/"+uuid.NewString(), "")

	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing event: status = %d, want 404", missing.Code)
	}
}

func TestListEvents_ReturnsPlainArray(t *testing.T) {
	a := sampleStored()
	b := sampleStored()

	repo := &fakeEventsRepo{
		listFn: func(_ context.Context) ([]event.Event, error) {
			return []event.Event{a, b}, nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, "https://example.com")
	r := setupRouter(http.MethodGet, "/events", h.ListEvents)

	w := doJSON(t, r, http.MethodGet, "/events", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp []event.Event

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON array: %v, body=%s", err, w.Body.String())
	}

	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
}

func TestGetEventICS(t *testing.T) {
	stored := sampleStored()
	broken := sampleStored()
	broken.Start = nil

	repo := &fakeEventsRepo{
		getFn: func(_ context.Context, id string) (event.Event, error) {
			switch id {
			case stored.ID:
				return stored, nil
			case broken.ID:
				return broken, nil
			}
			return event.Event{}, event.ErrNotFound
		},
	}

	h := handlers.NewEventsHandler(repo, nil, "https://example.com")
	r := setupRouter(http.MethodGet, "/events/:id/ics", h.GetEventICS)

	w := doJSON(t, r, http.MethodGet, "/events/"+stored.ID+"/ics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content type = %q", ct)
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("content disposition = %q", cd)
	}

	body := w.Body.String()

	if !strings.Contains(body, "BEGIN:VEVENT") || !strings.Contains(body, "END:VEVENT") {
		t.Fatalf("body missing VEVENT block:\n%s", body)
	}

	// missing schedule is a client error, not a crash
	w = doJSON(t, r, http.MethodGet, "/events/"+broken.ID+"/ics", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing schedule: status = %d, want 400", w.Code)
	}

	// absent event
	w = doJSON(t, r, http.MethodGet, "/events/"+uuid.NewString()+"/ics", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("absent event: status = %d, want 404", w.Code)
	}
}

func TestDeleteEvent(t *testing.T) {
	stored := sampleStored()

	repo := &fakeEventsRepo{
		deleteFn: func(_ context.Context, id string) error {
			if id != stored.ID {
				return event.ErrNotFound
			}
			return nil
		},
	}

	h := handlers.NewEventsHandler(repo, nil, "https://example.com")
	r := setupRouter(http.MethodDelete, "/events/:id", h.DeleteEvent)

	w := doJSON(t, r, http.MethodDelete, "/events/"+stored.ID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/events/"+uuid.NewString(), "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
