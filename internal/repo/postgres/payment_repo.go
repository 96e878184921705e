package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, bookingID int64, amount decimal.Decimal, method, status, transactionID string) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentCols = `id, booking_id, amount, payment_method, status, transaction_id, created_at`

func (r *paymentRepository) Create(ctx context.Context, bookingID int64, amount decimal.Decimal, method, status, transactionID string) (*domain.Payment, error) {
	const q = `
		INSERT INTO payments (booking_id, amount, payment_method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + paymentCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, bookingID, amount, method, status, transactionID).Scan(
		&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
