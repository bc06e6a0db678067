package booking

import (
	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/kafka"
)

func eventFor(eventType string, booking *domain.Booking) kafka.BookingEvent {
	return kafka.BookingEvent{
		Type:       eventType,
		PNR:        booking.PNR,
		Owner:      booking.Owner,
		Passenger:  booking.Passenger,
		TrainNo:    booking.TrainNo,
		TravelDate: booking.TravelDate,
		BerthClass: booking.BerthClass,
		Status:     string(booking.Status),
	}
}
