package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/wookrail/trainbooking/internal/allocation"
	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Book(ctx context.Context, owner string, input BookTicketInput) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookTicketInput struct {
	Passenger  string `json:"passenger"`
	Age        int    `json:"age"`
	BerthClass string `json:"berth"`
	TrainNo    string `json:"train_no"`
	TravelDate string `json:"date"`
}

type BookingService struct {
	ledger             repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(ledger repository.BookingRepository, producer Producer, bookingTopic string, log *zap.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		ledger:       ledger,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book validates the request, allocates a status against the current
// occupancy of the train/date/class key and persists the booking in one
// atomic step. On a PNR collision nothing is written and the caller may
// retry with a fresh request.
func (s *BookingService) Book(ctx context.Context, owner string, input BookTicketInput) (*domain.Booking, error) {
	if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	// One capacity pool per key regardless of the caller's casing.
	berthClass := strings.ToLower(strings.TrimSpace(input.BerthClass))

	booking := &domain.Booking{
		PNR:        domain.NewPNR(),
		Owner:      owner,
		Passenger:  strings.TrimSpace(input.Passenger),
		Age:        input.Age,
		BerthClass: berthClass,
		TrainNo:    input.TrainNo,
		TravelDate: input.TravelDate,
	}

	err := s.ledger.Create(ctx, booking, func(count int64) domain.BookingStatus {
		return allocation.Decide(berthClass, count)
	})
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		s.log.Warn("publish booking event failed", zap.String("pnr", booking.PNR), zap.Error(err))
	}
	return booking, nil
}

func validate(input BookTicketInput) error {
	if strings.TrimSpace(input.Passenger) == "" {
		return fmt.Errorf("%w: passenger name is required", domain.ErrValidation)
	}
	if input.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(input.BerthClass) == "" {
		return fmt.Errorf("%w: berth class is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.TrainNo) == "" {
		return fmt.Errorf("%w: train number is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.TravelDate) == "" {
		return fmt.Errorf("%w: travel date is required", domain.ErrValidation)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := eventFor(eventType, booking)
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
