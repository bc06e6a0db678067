package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the status snapshot assigned when a booking is created.
// It is never recomputed afterwards, even when later bookings change the
// occupancy of the same train/date/class.
type BookingStatus string

const BookingStatusConfirmed BookingStatus = "Confirmed"

const waitlistPrefix = "Waiting List "

// WaitlistStatus returns the status for the given 1-based waitlist rank.
func WaitlistStatus(rank int) BookingStatus {
	return BookingStatus(fmt.Sprintf("%s%d", waitlistPrefix, rank))
}

func (s BookingStatus) IsWaitlisted() bool {
	return strings.HasPrefix(string(s), waitlistPrefix)
}

type Booking struct {
	ID         int64
	PNR        string
	Owner      string
	Passenger  string
	Age        int
	BerthClass string
	TrainNo    string
	TravelDate string
	Status     BookingStatus
	CreatedAt  time.Time
}

// Coach returns the display coach code shown with PNR status. Coaches are
// not tracked per seat; the code only reflects the capacity tier.
func (b *Booking) Coach() string {
	if strings.EqualFold(b.BerthClass, "sleeper") {
		return "S1"
	}
	return "A1"
}

// NewPNR generates a 10-character booking identifier: a v4 UUID with the
// dashes stripped, upper-cased and truncated. Uniqueness is enforced by the
// ledger's constraint, not here.
func NewPNR() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:10])
}
