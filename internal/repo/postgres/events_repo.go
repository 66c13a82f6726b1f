package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/communityevents/backend/internal/domain/event"
	"github.com/communityevents/backend/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	doc, err := json.Marshal(e)

	if err != nil {
		return event.Event{}, err
	}

	var startAt *time.Time

	if e.Start != nil {
		t, perr := event.ParseTimestamp(*e.Start)
		if perr == nil {
			startAt = &t
		}
	}

	err = r.observe("events.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO events(id, doc, start_at, created_at) VALUES($1, $2, $3, $4)`,
			e.ID, doc, startAt, e.CreatedAt)

		return execErr
	})

	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

// List returns every event ordered by start ascending; rows whose stored
// start could not be parsed sort last.
func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	var rows pgx.Rows

	err := r.observe("events.list", func() error {
		var qerr error
		rows, qerr = r.pool.Query(ctx,
			`SELECT id, doc FROM events ORDER BY start_at ASC NULLS LAST, id ASC`)

		return qerr
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]event.Event, 0)

	for rows.Next() {
		var id string
		var raw []byte

		err = rows.Scan(&id, &raw)

		if err != nil {
			return nil, err
		}

		e, derr := DecodeEventDoc(id, raw)

		if derr != nil {
			return nil, derr
		}

		out = append(out, e)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var raw []byte

	err := r.observe("events.get", func() error {
		return r.pool.QueryRow(ctx, `SELECT doc FROM events WHERE id = $1`, id).Scan(&raw)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}

		return event.Event{}, err
	}

	return DecodeEventDoc(id, raw)
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	var tag int64

	err := r.observe("events.delete", func() error {
		ct, execErr := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)

		tag = ct.RowsAffected()

		return execErr
	})

	if err != nil {
		return err
	}

	if tag == 0 {
		return event.ErrNotFound
	}

	return nil
}
