// Package intent decides which engine should answer a chat message.
package intent

import "strings"

// Words that mark a message as reservation-related. Anything else goes
// to the menu answerer.
var bookingKeywords = []string{
	"book",
	"reserve",
	"reservation",
	"available",
	"availability",
	"table",
	"seat",
	"booking",
}

// IsBooking reports whether the message should be routed to the booking
// engine. Case-insensitive substring membership, same as the slot
// extractor's keyword handling.
func IsBooking(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
