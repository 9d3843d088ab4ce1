package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of a booking-related message.
type Intent string

const (
	IntentCheckAvailability Intent = "check_availability"
	IntentMakeReservation   Intent = "make_reservation"
	IntentUnknown           Intent = "unknown"
)

// Request is what the extractor could read out of one message. Time is
// nil when the message carried no time; Guests is 0 when unspecified.
type Request struct {
	Date   string
	Time   *string
	Guests int
	Intent Intent
}

var (
	dateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timeRe  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	guestRe = regexp.MustCompile(`(?i)(\d+)\s*(?:guest|people|person|pax|seat)`)
	forOfRe = regexp.MustCompile(`(?i)(?:for|of)\s+(\d+)`)
)

var (
	checkWords = []string{"check", "available", "availability", "open"}
	bookWords  = []string{"book", "reserve", "reservation"}
)

// Extract parses free text into a Request. Each field is read
// independently and only the first left-to-right match counts; a message
// with two dates silently uses the first. Extraction never fails, absent
// fields are simply absent.
func Extract(message, defaultDate string) Request {
	lower := strings.ToLower(message)

	req := Request{
		Date:   defaultDate,
		Intent: classifyIntent(lower),
	}

	if m := dateRe.FindString(message); m != "" {
		req.Date = m
	}

	if m := timeRe.FindString(message); m != "" {
		t := normalizeTime(m)
		req.Time = &t
	}

	req.Guests = extractGuests(lower)

	return req
}

func classifyIntent(lower string) Intent {
	for _, w := range checkWords {
		if strings.Contains(lower, w) {
			return IntentCheckAvailability
		}
	}
	for _, w := range bookWords {
		if strings.Contains(lower, w) {
			return IntentMakeReservation
		}
	}
	return IntentUnknown
}

func extractGuests(lower string) int {
	if m := guestRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}

	// Fallback: "table for 4", "party of 6". A number that continues
	// into a date or time fragment ("for 2026-02-20") is not a guest
	// count, so skip matches whose digits run into '-' or ':'.
	for _, m := range forOfRe.FindAllStringSubmatchIndex(lower, -1) {
		start, end := m[2], m[3]
		if end < len(lower) && (lower[end] == '-' || lower[end] == ':') {
			continue
		}
		n, err := strconv.Atoi(lower[start:end])
		if err != nil {
			continue
		}
		return n
	}
	return 0
}

// normalizeTime zero-pads the hour so "7:30" becomes "07:30".
func normalizeTime(raw string) string {
	parts := strings.SplitN(raw, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%02d:%s", hour, parts[1])
}
