package intent

import "testing"

func TestIsBooking(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"Book a table for 4 at 19:00", true},
		{"is there a TABLE available tonight?", true},
		{"I'd like to make a reservation", true},
		{"any seats left?", true},
		{"what is on the menu tonight?", false},
		{"do you have vegan pizza?", false},
		{"", false},
		{"unbookable matches by substring", true},
	}
	for _, tc := range cases {
		if got := IsBooking(tc.message); got != tc.want {
			t.Fatalf("IsBooking(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}
