package postgres

import (
	"encoding/json"
	"time"

	"github.com/communityevents/backend/internal/domain/event"
)

// Stored event documents accumulated several timestamp encodings over time:
// plain ISO strings, {seconds,nanoseconds} pairs (with or without leading
// underscores), and raw epoch-second numbers. DecodeEventDoc is the single
// boundary where all of them collapse into one canonical ISO-8601 string, or
// an explicit null when the stored value is unusable.

// DecodeEventDoc unmarshals a stored document and normalizes its schedule
// fields. The id column wins over any id embedded in the document.
func DecodeEventDoc(id string, raw []byte) (event.Event, error) {
	var doc map[string]any

	err := json.Unmarshal(raw, &doc)
	if err != nil {
		return event.Event{}, err
	}

	doc["id"] = id
	doc["start"] = normalizeTimestamp(doc["start"])
	doc["end"] = normalizeTimestamp(doc["end"])

	normalized, err := json.Marshal(doc)
	if err != nil {
		return event.Event{}, err
	}

	var e event.Event

	err = json.Unmarshal(normalized, &e)
	if err != nil {
		return event.Event{}, err
	}

	return e, nil
}

// normalizeTimestamp maps any historical representation to an ISO-8601
// string pointer, or nil for anything unparseable. It never panics on
// malformed input.
func normalizeTimestamp(v any) *string {
	switch t := v.(type) {
	case string:
		parsed, err := event.ParseTimestamp(t)
		if err != nil {
			return nil
		}
		return isoPtr(parsed)

	case map[string]any:
		secs, ok := numberField(t, "seconds", "_seconds")
		if !ok {
			return nil
		}
		nanos, _ := numberField(t, "nanoseconds", "_nanoseconds")
		return isoPtr(time.Unix(int64(secs), int64(nanos)))

	case float64:
		// epoch seconds
		return isoPtr(time.Unix(int64(t), 0))
	}

	return nil
}

func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		n, ok := m[k].(float64)
		if ok {
			return n, true
		}
	}

	return 0, false
}

func isoPtr(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)

	return &s
}
