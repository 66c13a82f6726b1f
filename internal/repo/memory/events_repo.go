package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/communityevents/backend/internal/domain/event"
)

// EventsRepo is an in-memory stand-in for the postgres repo, used in tests
// and local development without a database.
type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
	}
}

func (r *EventsRepo) Create(_ context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()

	return e, nil
}

func (r *EventsRepo) GetByID(_ context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return e, nil
}

func (r *EventsRepo) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	out := make([]event.Event, 0, len(r.items))

	for _, e := range r.items {
		out = append(out, e)
	}
	r.mu.RUnlock()

	// start ascending, unparseable starts last, id as tiebreaker
	sort.Slice(out, func(i, j int) bool {
		si, iok := startOf(out[i])
		sj, jok := startOf(out[j])

		if iok != jok {
			return iok
		}

		if iok && !si.Equal(sj) {
			return si.Before(sj)
		}

		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *EventsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return event.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

// Put stores an event verbatim, bypassing validation. Tests use it to seed
// records that the normal create path would reject.
func (r *EventsRepo) Put(e event.Event) {
	r.mu.Lock()
	r.items[e.ID] = e
	r.mu.Unlock()
}

func startOf(e event.Event) (time.Time, bool) {
	if e.Start == nil {
		return time.Time{}, false
	}

	t, err := event.ParseTimestamp(*e.Start)

	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
