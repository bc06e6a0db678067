package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wookrail/trainbooking/internal/domain"
)

// MemoryBookingRepository is an in-memory ledger with the same contract as
// the Postgres one. A per-key mutex serializes count+allocate+insert for a
// train/date/class key the way the advisory lock does in Postgres.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	keyLocks map[string]*sync.Mutex
	bookings []domain.Booking
	byPNR    map[string]struct{}
	nextID   int64
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		keyLocks: make(map[string]*sync.Mutex),
		byPNR:    make(map[string]struct{}),
	}
}

func (r *MemoryBookingRepository) keyLock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.keyLocks[key] = lock
	}
	return lock
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *domain.Booking, allocate AllocateFunc) error {
	key := allocationKey(booking.TrainNo, booking.TravelDate, booking.BerthClass)
	lock := r.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	count := r.countKey(booking.TrainNo, booking.TravelDate, booking.BerthClass)
	booking.Status = allocate(count)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPNR[booking.PNR]; exists {
		return domain.ErrConflict
	}
	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	r.byPNR[booking.PNR] = struct{}{}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *MemoryBookingRepository) Count(_ context.Context, trainNo, travelDate, berthClass string) (int64, error) {
	return r.countKey(trainNo, travelDate, berthClass), nil
}

func (r *MemoryBookingRepository) countKey(trainNo, travelDate, berthClass string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, b := range r.bookings {
		if b.TrainNo == trainNo && b.TravelDate == travelDate && b.BerthClass == berthClass {
			count++
		}
	}
	return count
}

func (r *MemoryBookingRepository) FindByPNRAndOwner(_ context.Context, pnr, owner string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.PNR == pnr && b.Owner == owner {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryBookingRepository) ListByOwner(_ context.Context, owner string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Owner == owner {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TravelDate != result[j].TravelDate {
			return result[i].TravelDate > result[j].TravelDate
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
