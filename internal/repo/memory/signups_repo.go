package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/communityevents/backend/internal/domain/signup"
)

type SignupsRepo struct {
	mu    sync.RWMutex
	items map[string]signup.Signup
}

func NewSignupsRepo() *SignupsRepo {
	return &SignupsRepo{
		items: make(map[string]signup.Signup),
	}
}

func (r *SignupsRepo) Create(_ context.Context, req signup.CreateSignupRequest) (signup.Signup, error) {
	s := signup.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()

	return s, nil
}

// ListByEvent mirrors the SQL ordering: oldest first, id as tiebreaker.
func (r *SignupsRepo) ListByEvent(_ context.Context, eventID string) ([]signup.Signup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]signup.Signup, 0)

	for _, s := range r.items {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// Len reports how many signups are stored; tests assert on it to prove a
// rejected signup wrote nothing.
func (r *SignupsRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
