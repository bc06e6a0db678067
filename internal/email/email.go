package email

import (
	"context"

	"github.com/wookrail/trainbooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. Delivery is log-only; a real
// deployment would plug an SMTP or provider client in here.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	s.log.Info("send booking notification",
		zap.String("owner", event.Owner),
		zap.String("type", event.Type),
		zap.String("pnr", event.PNR),
		zap.String("train_no", event.TrainNo),
		zap.String("status", event.Status),
	)
	return nil
}
