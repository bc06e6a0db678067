package query

import (
	"context"

	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/repository"
)

type QueryUseCase interface {
	GetByPNR(ctx context.Context, pnr, owner string) (*domain.Booking, error)
	History(ctx context.Context, owner string) ([]domain.Booking, error)
}

// QueryService is the read side of the ledger, scoped to the requesting
// owner.
type QueryService struct {
	ledger repository.BookingRepository
}

func NewQueryService(ledger repository.BookingRepository) *QueryService {
	return &QueryService{ledger: ledger}
}

// GetByPNR returns the booking only when both the PNR and the owner match.
// A foreign owner's PNR reports ErrNotFound, indistinguishable from a PNR
// that does not exist.
func (s *QueryService) GetByPNR(ctx context.Context, pnr, owner string) (*domain.Booking, error) {
	if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	if pnr == "" {
		return nil, domain.ErrNotFound
	}
	return s.ledger.FindByPNRAndOwner(ctx, pnr, owner)
}

// History returns all bookings for the owner, most recent travel date first,
// ties broken by creation order descending. The slice is fully materialized
// per call.
func (s *QueryService) History(ctx context.Context, owner string) ([]domain.Booking, error) {
	if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.ledger.ListByOwner(ctx, owner)
}

var _ QueryUseCase = (*QueryService)(nil)
