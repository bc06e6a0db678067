// Package allocation decides whether a booking request is confirmed or
// waitlisted. Capacity is a fixed two-tier model: 50 seats for sleeper
// class, 20 for everything else. It is deliberately not configurable.
package allocation

import (
	"strings"

	"github.com/wookrail/trainbooking/internal/domain"
)

const (
	SleeperCapacity = 50
	DefaultCapacity = 20
)

// Capacity returns the seat limit for a berth class. The class is compared
// case-insensitively.
func Capacity(berthClass string) int {
	if strings.EqualFold(berthClass, "sleeper") {
		return SleeperCapacity
	}
	return DefaultCapacity
}

// Decide computes the status for the next booking on a train/date/class key
// given the number of bookings already recorded for that key. The first
// over-capacity request gets rank 1; ranks grow with each further request.
// Pure function: callers are responsible for running it inside whatever
// critical section serializes count and insert.
func Decide(berthClass string, currentCount int64) domain.BookingStatus {
	capacity := int64(Capacity(berthClass))
	if currentCount < capacity {
		return domain.BookingStatusConfirmed
	}
	return domain.WaitlistStatus(int(currentCount - capacity + 1))
}
