// Package ics renders events as iCalendar (RFC 5545) text.
//
// The encoder is deliberately hand-rolled: the output is a single VEVENT
// with a fixed line order, so byte-for-byte determinism is easier to
// guarantee than with a general-purpose calendar library.
package ics

import (
	"errors"
	"strings"
	"time"
)

// Event is the minimal slice of an event the encoder needs.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string
	Start       time.Time
	End         time.Time
}

// ErrMissingSchedule reports an event without a usable start or end.
var ErrMissingSchedule = errors.New("event has no usable start/end")

const (
	prodID    = "-//Events Platform//Launchpad//EN"
	uidSuffix = "events-platform"

	// RFC 5545 UTC date-time form, e.g. 20250601T180000Z.
	stampLayout = "20060102T150405Z"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\n", `\n`,
)

// Escape applies iCalendar TEXT escaping to a property value.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Encode renders the event as a complete VCALENDAR block joined with CRLF.
// DTSTAMP is the only wall-clock dependent line, so callers pass it in;
// for a fixed stamp the output is byte-for-byte deterministic.
func Encode(ev Event, stamp time.Time) (string, error) {
	if ev.Start.IsZero() || ev.End.IsZero() {
		return "", ErrMissingSchedule
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + Escape(ev.UID) + "@" + uidSuffix,
		"DTSTAMP:" + stamp.UTC().Format(stampLayout),
		"DTSTART:" + ev.Start.UTC().Format(stampLayout),
		"DTEND:" + ev.End.UTC().Format(stampLayout),
		"SUMMARY:" + Escape(ev.Summary),
	}

	if ev.Description != "" {
		lines = append(lines, "DESCRIPTION:"+Escape(ev.Description))
	}

	if ev.Location != "" {
		lines = append(lines, "LOCATION:"+Escape(ev.Location))
	}

	if ev.URL != "" {
		lines = append(lines, "URL:"+ev.URL)
	}

	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	return strings.Join(lines, "\r\n"), nil
}
