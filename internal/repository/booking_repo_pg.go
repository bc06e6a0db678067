package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wookrail/trainbooking/internal/domain"
)

// AllocateFunc maps the current booking count for a train/date/class key to
// the status of the next booking. The ledger runs it inside the critical
// section that serializes count and insert, so rank assignment is totally
// ordered per key.
type AllocateFunc func(currentCount int64) domain.BookingStatus

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, allocate AllocateFunc) error
	Count(ctx context.Context, trainNo, travelDate, berthClass string) (int64, error)
	FindByPNRAndOwner(ctx context.Context, pnr, owner string) (*domain.Booking, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, allocate AllocateFunc) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Advisory transaction lock on the train/date/class key. Concurrent
	// bookings for the same key serialize here; unrelated keys do not block.
	key := allocationKey(booking.TrainNo, booking.TravelDate, booking.BerthClass)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock allocation key: %w", err)
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE train_no=$1 AND travel_date=$2 AND berth_class=$3`,
		booking.TrainNo, booking.TravelDate, booking.BerthClass).Scan(&count); err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}

	booking.Status = allocate(count)
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (pnr, owner, passenger, age, berth_class, train_no, travel_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		booking.PNR, booking.Owner, booking.Passenger, booking.Age, booking.BerthClass, booking.TrainNo, booking.TravelDate, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Count(ctx context.Context, trainNo, travelDate, berthClass string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE train_no=$1 AND travel_date=$2 AND berth_class=$3`,
		trainNo, travelDate, berthClass).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *PGBookingRepository) FindByPNRAndOwner(ctx context.Context, pnr, owner string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, pnr, owner, passenger, age, berth_class, train_no, travel_date, status, created_at
		FROM bookings WHERE pnr=$1 AND owner=$2`, pnr, owner)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.Owner, &b.Passenger, &b.Age, &b.BerthClass, &b.TrainNo, &b.TravelDate, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, pnr, owner, passenger, age, berth_class, train_no, travel_date, status, created_at
		FROM bookings WHERE owner=$1 ORDER BY travel_date DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.PNR, &b.Owner, &b.Passenger, &b.Age, &b.BerthClass, &b.TrainNo, &b.TravelDate, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func allocationKey(trainNo, travelDate, berthClass string) string {
	return trainNo + "|" + travelDate + "|" + berthClass
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

var _ BookingRepository = (*PGBookingRepository)(nil)
