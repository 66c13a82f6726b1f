package postgres

import (
	"context"
	"encoding/json"

	"github.com/communityevents/backend/internal/domain/signup"
	"github.com/communityevents/backend/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SignupsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSignupsRepo(pool *pgxpool.Pool, prom *observability.Prom) *SignupsRepo {
	return &SignupsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *SignupsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create persists a signup that has already passed shape and policy checks.
// The event lookup and this insert are not linked transactionally; a
// concurrent event deletion between them is an accepted race.
func (r *SignupsRepo) Create(ctx context.Context, req signup.CreateSignupRequest) (signup.Signup, error) {
	s := signup.NewFromCreateRequest(req)

	doc, err := json.Marshal(s)

	if err != nil {
		return signup.Signup{}, err
	}

	err = r.observe("signups.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO signups(id, doc, event_id, created_at) VALUES($1, $2, $3, $4)`,
			s.ID, doc, s.EventID, s.CreatedAt)

		return execErr
	})

	if err != nil {
		return signup.Signup{}, err
	}

	return s, nil
}

// ListByEvent returns signups for one event, oldest first.
func (r *SignupsRepo) ListByEvent(ctx context.Context, eventID string) ([]signup.Signup, error) {
	out := make([]signup.Signup, 0)

	err := r.observe("signups.list_by_event", func() error {
		rows, qerr := r.pool.Query(ctx,
			`SELECT doc FROM signups WHERE event_id = $1 ORDER BY created_at ASC, id ASC`, eventID)

		if qerr != nil {
			return qerr
		}

		defer rows.Close()

		for rows.Next() {
			var raw []byte

			qerr = rows.Scan(&raw)

			if qerr != nil {
				return qerr
			}

			var s signup.Signup

			qerr = json.Unmarshal(raw, &s)

			if qerr != nil {
				return qerr
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
