package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetail(ctx context.Context, id int64) (*domain.BookingDetail, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error)
	ListAll(ctx context.Context) ([]domain.BookingDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `id, user_id, tour_id, booking_date, participants,
special_requests, status, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.TourID, &b.BookingDate, &b.Participants,
		&b.SpecialRequests, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (user_id, tour_id, booking_date, participants, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		userID, req.TourID, req.BookingDate, req.Participants, req.SpecialRequests,
	))
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingRepository) GetDetail(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	const q = `
		SELECT b.id, b.user_id, b.tour_id, b.booking_date, b.participants,
			b.special_requests, b.status, b.created_at,
			t.title, t.price
		FROM bookings b
		JOIN tours t ON b.tour_id = t.id
		WHERE b.id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.BookingDetail
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.UserID, &d.TourID, &d.BookingDate, &d.Participants,
		&d.SpecialRequests, &d.Status, &d.CreatedAt,
		&d.TourTitle, &d.TourPrice,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.BookingDetail, error) {
	q := `
		SELECT b.id, b.user_id, b.tour_id, b.booking_date, b.participants,
			b.special_requests, b.status, b.created_at,
			t.title, t.price
		FROM bookings b
		JOIN tours t ON b.tour_id = t.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.pool.Query(ctx, q+` LIMIT $2`, userID, limit)
	} else {
		rows, err = r.pool.Query(ctx, q, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.TourID, &d.BookingDate, &d.Participants,
			&d.SpecialRequests, &d.Status, &d.CreatedAt,
			&d.TourTitle, &d.TourPrice,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	const q = `
		SELECT b.id, b.user_id, b.tour_id, b.booking_date, b.participants,
			b.special_requests, b.status, b.created_at,
			t.title, t.price, u.name, u.email
		FROM bookings b
		JOIN tours t ON b.tour_id = t.id
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.BookingDetail
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.TourID, &d.BookingDate, &d.Participants,
			&d.SpecialRequests, &d.Status, &d.CreatedAt,
			&d.TourTitle, &d.TourPrice, &d.UserName, &d.UserEmail,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	const q = `UPDATE bookings SET status = $2 WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM bookings`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	const q = `SELECT count(*) FROM bookings WHERE status = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q, status).Scan(&n)
	return n, err
}
