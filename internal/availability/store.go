// Package availability holds the in-memory table availability schedule
// loaded once at startup from a JSON file of date -> time -> table count.
package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	ErrDateNotFound = errors.New("date not found")
	ErrTimeNotFound = errors.New("time not found")
	ErrFullyBooked  = errors.New("fully booked")
)

// Reason explains the outcome of an availability check.
type Reason string

const (
	ReasonOK           Reason = "ok"
	ReasonFullyBooked  Reason = "fully_booked"
	ReasonDateNotFound Reason = "date_not_found"
	ReasonTimeNotFound Reason = "time_not_found"
)

// Result is the outcome of Check for a single (date, time) slot.
type Result struct {
	Available bool
	Tables    int
	Reason    Reason
}

// Slot is a time of day with its remaining table count.
type Slot struct {
	Time   string
	Tables int
}

// Store maps date -> time -> remaining tables. Iteration order of dates
// and of times within a date follows the source document. The store holds
// no lock of its own; callers serialize access (the booking engine wraps
// its check-then-commit sequence in a mutex).
type Store struct {
	dates []string
	days  map[string]*day
}

type day struct {
	times  []string
	tables map[string]int
}

// Load reads a schedule file. The file must be a JSON object whose keys
// are dates, each mapping to an object of time -> non-negative integer.
// Anything else is rejected; inner values are never coerced.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	// Token-level decode so the document's key order survives; a plain
	// unmarshal into map[string]map[string]int would lose it.
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("availability: schedule must be a JSON object: %w", err)
	}

	s := &Store{days: make(map[string]*day)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("availability: %w", err)
		}
		date, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("availability: expected date key, got %v", tok)
		}

		d, err := decodeDay(dec, date)
		if err != nil {
			return nil, err
		}
		if _, dup := s.days[date]; dup {
			return nil, fmt.Errorf("availability: duplicate date %q", date)
		}
		s.dates = append(s.dates, date)
		s.days[date] = d
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("availability: %w", err)
	}
	return s, nil
}

func decodeDay(dec *json.Decoder, date string) (*day, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("availability: %s: day must be an object of time -> count: %w", date, err)
	}
	d := &day{tables: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("availability: %s: %w", date, err)
		}
		t, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("availability: %s: expected time key, got %v", date, tok)
		}

		vtok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("availability: %s %s: %w", date, t, err)
		}
		num, ok := vtok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("availability: %s %s: count must be a non-negative integer, got %v", date, t, vtok)
		}
		n, err := strconv.Atoi(num.String())
		if err != nil {
			return nil, fmt.Errorf("availability: %s %s: count must be an integer, got %s", date, t, num)
		}
		if n < 0 {
			return nil, fmt.Errorf("availability: %s %s: count must be non-negative, got %d", date, t, n)
		}
		if _, dup := d.tables[t]; dup {
			return nil, fmt.Errorf("availability: %s: duplicate time %q", date, t)
		}
		d.times = append(d.times, t)
		d.tables[t] = n
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, fmt.Errorf("availability: %s: %w", date, err)
	}
	return d, nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Dates returns every date in source order.
func (s *Store) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

// Slots returns the slots for a date in source order, or false if the
// date is not in the schedule.
func (s *Store) Slots(date string) ([]Slot, bool) {
	d, ok := s.days[date]
	if !ok {
		return nil, false
	}
	out := make([]Slot, 0, len(d.times))
	for _, t := range d.times {
		out = append(out, Slot{Time: t, Tables: d.tables[t]})
	}
	return out, true
}

// Check reports whether a table is free at (date, time). Read-only and
// idempotent; unknown dates and times are normal outcomes, not errors.
func (s *Store) Check(date, time string) Result {
	d, ok := s.days[date]
	if !ok {
		return Result{Reason: ReasonDateNotFound}
	}
	tables, ok := d.tables[time]
	if !ok {
		return Result{Reason: ReasonTimeNotFound}
	}
	if tables <= 0 {
		return Result{Tables: tables, Reason: ReasonFullyBooked}
	}
	return Result{Available: true, Tables: tables, Reason: ReasonOK}
}

// Take removes one table from the slot and returns the remaining count.
// It refuses to drive a count below zero. The caller is expected to hold
// whatever lock serializes bookings against this store.
func (s *Store) Take(date, time string) (int, error) {
	d, ok := s.days[date]
	if !ok {
		return 0, ErrDateNotFound
	}
	tables, ok := d.tables[time]
	if !ok {
		return 0, ErrTimeNotFound
	}
	if tables <= 0 {
		return 0, ErrFullyBooked
	}
	d.tables[time] = tables - 1
	return tables - 1, nil
}
