package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wookrail/trainbooking/internal/allocation"
	"github.com/wookrail/trainbooking/internal/domain"
)

func newBooking(owner, trainNo, travelDate, berthClass string) *domain.Booking {
	return &domain.Booking{
		PNR:        domain.NewPNR(),
		Owner:      owner,
		Passenger:  "Test Passenger",
		Age:        30,
		BerthClass: berthClass,
		TrainNo:    trainNo,
		TravelDate: travelDate,
	}
}

func TestMemoryBookingRepository_CreateAssignsStatus(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	b := newBooking("alice", "12951", "2024-05-01", "sleeper")
	err := repo.Create(ctx, b, func(count int64) domain.BookingStatus {
		return allocation.Decide("sleeper", count)
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestMemoryBookingRepository_DuplicatePNR(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	allocate := func(count int64) domain.BookingStatus { return allocation.Decide("sleeper", count) }

	first := newBooking("alice", "12951", "2024-05-01", "sleeper")
	require.NoError(t, repo.Create(ctx, first, allocate))

	dup := newBooking("bob", "12301", "2024-06-01", "ac3")
	dup.PNR = first.PNR
	err := repo.Create(ctx, dup, allocate)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The failed write must leave no row behind.
	count, err := repo.Count(ctx, "12301", "2024-06-01", "ac3")
	require.NoError(t, err)
	assert.Zero(t, count)
}

// 70 concurrent requests for one sleeper key must yield exactly 50 confirmed
// bookings and the waitlist ranks 1..20, each used once.
func TestMemoryBookingRepository_ConcurrentAllocation(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	const requests = 70
	statuses := make([]domain.BookingStatus, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := newBooking("alice", "12951", "2024-05-01", "sleeper")
			if err := repo.Create(ctx, b, func(count int64) domain.BookingStatus {
				return allocation.Decide("sleeper", count)
			}); err != nil {
				t.Error(err)
				return
			}
			statuses[i] = b.Status
		}(i)
	}
	wg.Wait()

	confirmed := 0
	ranks := make(map[domain.BookingStatus]int)
	for _, s := range statuses {
		if s == domain.BookingStatusConfirmed {
			confirmed++
			continue
		}
		ranks[s]++
	}
	assert.Equal(t, 50, confirmed)
	assert.Len(t, ranks, 20)
	for rank := 1; rank <= 20; rank++ {
		assert.Equal(t, 1, ranks[domain.WaitlistStatus(rank)], "rank %d", rank)
	}
}

// PNRs returned from concurrent creations must never collide.
func TestMemoryBookingRepository_ConcurrentPNRUniqueness(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	const requests = 200
	pnrs := make([]string, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := newBooking("alice", "12951", "2024-05-01", "sleeper")
			if err := repo.Create(ctx, b, func(count int64) domain.BookingStatus {
				return allocation.Decide("sleeper", count)
			}); err != nil {
				t.Error(err)
				return
			}
			pnrs[i] = b.PNR
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, requests)
	for _, pnr := range pnrs {
		_, dup := seen[pnr]
		assert.False(t, dup, "duplicate pnr %s", pnr)
		seen[pnr] = struct{}{}
	}
}

func TestMemoryBookingRepository_OwnershipIsolation(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	allocate := func(count int64) domain.BookingStatus { return allocation.Decide("sleeper", count) }

	b := newBooking("alice", "12951", "2024-05-01", "sleeper")
	require.NoError(t, repo.Create(ctx, b, allocate))

	found, err := repo.FindByPNRAndOwner(ctx, b.PNR, "alice")
	require.NoError(t, err)
	assert.Equal(t, b.PNR, found.PNR)

	_, err = repo.FindByPNRAndOwner(ctx, b.PNR, "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindByPNRAndOwner(ctx, "ZZZZZZZZZZ", "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryBookingRepository_ListByOwnerOrdering(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	allocate := func(count int64) domain.BookingStatus { return allocation.Decide("sleeper", count) }

	for _, date := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		require.NoError(t, repo.Create(ctx, newBooking("alice", "12951", date, "sleeper"), allocate))
	}
	require.NoError(t, repo.Create(ctx, newBooking("bob", "12951", "2024-05-04", "sleeper"), allocate))

	history, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2024-05-03", history[0].TravelDate)
	assert.Equal(t, "2024-05-02", history[1].TravelDate)
	assert.Equal(t, "2024-05-01", history[2].TravelDate)
}

func TestMemoryBookingRepository_ListByOwnerTieBreak(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	allocate := func(count int64) domain.BookingStatus { return allocation.Decide("sleeper", count) }

	first := newBooking("alice", "12951", "2024-05-01", "sleeper")
	second := newBooking("alice", "12401", "2024-05-01", "sleeper")
	require.NoError(t, repo.Create(ctx, first, allocate))
	require.NoError(t, repo.Create(ctx, second, allocate))

	history, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Same travel date: most recently created first.
	assert.Equal(t, second.PNR, history[0].PNR)
	assert.Equal(t, first.PNR, history[1].PNR)
}
