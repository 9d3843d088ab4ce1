// Package booking turns natural-language reservation messages into
// availability checks and table bookings against an in-memory schedule.
package booking

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/bellaroma/internal/availability"
	"go.uber.org/zap"
)

// DefaultDate is assumed when a message names no date.
const DefaultDate = "2026-02-20"

// Engine owns the availability store and answers booking-related
// messages. All access to the store goes through the engine; mu
// serializes the whole check-then-commit sequence so two concurrent
// bookers can never both claim the last table.
type Engine struct {
	store       *availability.Store
	defaultDate string
	restaurant  string
	log         *zap.Logger

	mu sync.Mutex
}

func NewEngine(store *availability.Store, defaultDate, restaurant string, log *zap.Logger) *Engine {
	if defaultDate == "" {
		defaultDate = DefaultDate
	}
	if restaurant == "" {
		restaurant = "Bella Roma"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, defaultDate: defaultDate, restaurant: restaurant, log: log}
}

// HandleMessage parses one booking-related message and produces a reply.
// Stateless across calls: everything is driven by the current message.
func (e *Engine) HandleMessage(message string) string {
	req := Extract(message, e.defaultDate)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch req.Intent {
	case IntentCheckAvailability:
		if req.Time == nil {
			return e.suggestAlternative(req.Date)
		}
		status := e.store.Check(req.Date, *req.Time)
		if status.Available {
			return fmt.Sprintf("✅ Yes! We have %d table%s available at %s on %s. Would you like to book one?",
				status.Tables, plural(status.Tables), *req.Time, formatDate(req.Date))
		}
		return fmt.Sprintf("🚫 No tables available at %s on %s. %s",
			*req.Time, formatDate(req.Date), e.suggestAlternative(req.Date))

	case IntentMakeReservation:
		if req.Time == nil {
			return fmt.Sprintf("🍕 I'd love to help you book a table! "+
				"Please provide the time (e.g., 19:00), "+
				"number of guests (e.g., 4 guests), "+
				"and optionally a date (e.g., %s). "+
				"Default date is %s.", e.defaultDate, formatDate(e.defaultDate))
		}
		if req.Guests == 0 {
			return fmt.Sprintf("🍕 Great choice! %s on %s — how many guests will be joining? "+
				"(e.g., 'book for 4 guests at %s')", *req.Time, formatDate(req.Date), *req.Time)
		}
		return e.bookTable(req.Date, *req.Time, req.Guests)

	default:
		return e.help()
	}
}

// bookTable validates and commits one reservation. The caller holds
// e.mu, so nothing can touch the slot between the check and the take.
func (e *Engine) bookTable(date, timeStr string, guests int) string {
	if guests <= 0 {
		return "🚫 Number of guests must be at least 1. Please try again."
	}

	status := e.store.Check(date, timeStr)
	switch status.Reason {
	case availability.ReasonDateNotFound:
		return fmt.Sprintf("🚫 Sorry, we don't have availability data for %s. %s",
			formatDate(date), e.suggestAlternative(date))
	case availability.ReasonTimeNotFound:
		return fmt.Sprintf("🚫 Sorry, we don't offer reservations at %s on %s. %s",
			timeStr, formatDate(date), e.suggestAlternative(date))
	case availability.ReasonFullyBooked:
		return fmt.Sprintf("🚫 Sorry, no tables are available at %s on %s. %s",
			timeStr, formatDate(date), e.suggestAlternative(date))
	}

	remaining, err := e.store.Take(date, timeStr)
	if err != nil {
		// Unreachable while e.mu is held; reply as fully booked.
		e.log.Error("booking commit failed after successful check",
			zap.String("date", date), zap.String("time", timeStr), zap.Error(err))
		return fmt.Sprintf("🚫 Sorry, no tables are available at %s on %s. %s",
			timeStr, formatDate(date), e.suggestAlternative(date))
	}

	e.log.Info("reservation confirmed",
		zap.String("date", date), zap.String("time", timeStr),
		zap.Int("guests", guests), zap.Int("remaining", remaining))

	return fmt.Sprintf("✅ Reservation confirmed!\n\n"+
		"📅 Date: %s\n"+
		"🕐 Time: %s\n"+
		"👥 Guests: %d\n\n"+
		"🍕 We look forward to welcoming you at %s! (%d table%s remaining for this slot)",
		formatDate(date), timeStr, guests, e.restaurant, remaining, plural(remaining))
}

// suggestAlternative proposes open slots on the given date, then other
// dates with capacity, then a final no-availability message. Read-only;
// never lists a slot or date with zero tables left.
func (e *Engine) suggestAlternative(date string) string {
	if slots, ok := e.store.Slots(date); ok {
		var open []string
		for _, s := range slots {
			if s.Tables > 0 {
				open = append(open, fmt.Sprintf("%s (%d table%s left)", s.Time, s.Tables, plural(s.Tables)))
			}
		}
		if len(open) > 0 {
			return fmt.Sprintf("📋 Available times on %s: %s", formatDate(date), strings.Join(open, ", "))
		}
	}

	var otherDates []string
	for _, d := range e.store.Dates() {
		if d == date {
			continue
		}
		slots, _ := e.store.Slots(d)
		total := 0
		for _, s := range slots {
			total += s.Tables
		}
		if total > 0 {
			otherDates = append(otherDates, formatDate(d))
		}
	}
	if len(otherDates) > 0 {
		return fmt.Sprintf("📋 No availability on %s. Try these dates instead: %s",
			formatDate(date), strings.Join(otherDates, ", "))
	}

	return "😔 Unfortunately, we have no available tables at this time. Please try again later."
}

func (e *Engine) help() string {
	dates := e.store.Dates()
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, formatDate(d))
	}
	return fmt.Sprintf("🍕 I can help you with reservations! Try:\n\n"+
		"• \"Book a table for 4 at 19:00\"\n"+
		"• \"Check availability at 20:00\"\n"+
		"• \"Reserve for 2 guests at 18:00 on 2026-02-21\"\n\n"+
		"Our available dates: %s", strings.Join(formatted, ", "))
}

// formatDate renders "2026-02-20" as "February 20, 2026". Strings that
// are not dates pass through unchanged.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 02, 2006")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
