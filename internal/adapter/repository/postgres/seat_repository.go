package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type SeatRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSeatRepository(db *sql.DB) *SeatRepository {
	return &SeatRepository{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeat(row rowScanner) (*domain.Seat, error) {
	var seat domain.Seat
	var bookedBy sql.NullString
	var bookedAt sql.NullTime

	if err := row.Scan(
		&seat.ID,
		&seat.SeatNumber,
		&bookedBy,
		&bookedAt,
		&seat.Version,
	); err != nil {
		return nil, err
	}

	seat.Status = domain.SeatAvailable
	if bookedBy.Valid {
		seat.Status = domain.SeatBooked
		seat.BookedBy = &bookedBy.String
	}

	if bookedAt.Valid {
		t := bookedAt.Time.UTC()
		seat.BookedAt = &t
	}

	return &seat, nil
}

func (r *SeatRepository) Initialize(ctx context.Context, rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid grid %dx%d", rows, cols)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO seats (id, seat_number)
	VALUES ($1, $2)
	ON CONFLICT (id) DO NOTHING
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare seat insert: %w", err)
	}

	defer stmt.Close()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			id := domain.SeatID(row, col, cols)
			if _, err := stmt.ExecContext(ctx, id, domain.SeatLabel(row, col)); err != nil {
				return fmt.Errorf("failed to insert seat %d: %w", id, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seat grid: %w", err)
	}

	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, seatID int64) (*domain.Seat, error) {
	query := `
	SELECT id, seat_number, booked_by, booked_at, version
	FROM seats
	WHERE id = $1
	`

	seat, err := scanSeat(r.db.QueryRowContext(ctx, query, seatID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("seat %d: %w", seatID, domain.ErrSeatNotFound)
		}

		return nil, fmt.Errorf("failed to load seat %d: %w", seatID, err)
	}

	return seat, nil
}

func (r *SeatRepository) ListAll(ctx context.Context) ([]domain.Seat, error) {
	query := `
	SELECT id, seat_number, booked_by, booked_at, version
	FROM seats
	ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}

	defer rows.Close()

	var seats []domain.Seat
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}

		seats = append(seats, *seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

// CommitBooking is the single statement that enforces one booking per seat,
// regardless of what the lock layer did.
func (r *SeatRepository) CommitBooking(ctx context.Context, seatID int64, userID string, expectedVersion int64) (*domain.Seat, error) {
	query := `
	UPDATE seats
	SET booked_by = $1,
		booked_at = $2,
		version = version + 1
	WHERE id = $3 AND version = $4 AND booked_by IS NULL
	RETURNING id, seat_number, booked_by, booked_at, version
	`

	seat, err := scanSeat(r.db.QueryRowContext(ctx, query, userID, r.now().UTC(), seatID, expectedVersion))
	if err == nil {
		return seat, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to commit booking for seat %d: %w", seatID, err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM seats WHERE id = $1)`, seatID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check seat %d: %w", seatID, err)
	}

	if !exists {
		return nil, fmt.Errorf("seat %d: %w", seatID, domain.ErrSeatNotFound)
	}

	return nil, fmt.Errorf("optimistic lock failed for seat %d at version %d: %w", seatID, expectedVersion, domain.ErrSeatConflict)
}

func (r *SeatRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
