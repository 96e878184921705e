package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
)

type TourRepository interface {
	Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error)
	Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	GetAvailableByID(ctx context.Context, id int64) (*domain.Tour, error)
	ListAll(ctx context.Context) ([]domain.Tour, error)
	ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error)
	Count(ctx context.Context) (int64, error)
}

type tourRepository struct {
	pool *pgxpool.Pool
}

func NewTourRepository(pool *pgxpool.Pool) TourRepository {
	return &tourRepository{pool: pool}
}

const tourCols = `id, title, description, detailed_description, price,
duration, category, image_url, address, latitude, longitude, available, created_at`

func scanTour(row pgx.Row) (*domain.Tour, error) {
	var t domain.Tour
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.DetailedDescription, &t.Price,
		&t.Duration, &t.Category, &t.ImageURL, &t.Address, &t.Latitude, &t.Longitude,
		&t.Available, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tourRepository) Create(ctx context.Context, in *domain.TourInput) (*domain.Tour, error) {
	const q = `
		INSERT INTO tours (title, description, detailed_description, price,
			duration, category, image_url, address, latitude, longitude, available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING ` + tourCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanTour(r.pool.QueryRow(ctx, q,
		in.Title, in.Description, in.DetailedDescription, in.Price,
		in.Duration, in.Category, in.ImageURL, in.Address, in.Latitude, in.Longitude,
		in.Available,
	))
}

func (r *tourRepository) Update(ctx context.Context, id int64, in *domain.TourInput) (*domain.Tour, error) {
	const q = `
		UPDATE tours
		SET title = $2, description = $3, detailed_description = $4, price = $5,
			duration = $6, category = $7, image_url = $8, address = $9,
			latitude = $10, longitude = $11, available = $12
		WHERE id = $1
		RETURNING ` + tourCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	t, err := scanTour(r.pool.QueryRow(ctx, q,
		id, in.Title, in.Description, in.DetailedDescription, in.Price,
		in.Duration, in.Category, in.ImageURL, in.Address, in.Latitude, in.Longitude,
		in.Available,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *tourRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM tours WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	const q = `SELECT ` + tourCols + ` FROM tours WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	t, err := scanTour(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *tourRepository) GetAvailableByID(ctx context.Context, id int64) (*domain.Tour, error) {
	const q = `SELECT ` + tourCols + ` FROM tours WHERE id = $1 AND available = true`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	t, err := scanTour(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *tourRepository) ListAll(ctx context.Context) ([]domain.Tour, error) {
	const q = `SELECT ` + tourCols + ` FROM tours ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *tourRepository) ListAvailable(ctx context.Context, limit int) ([]domain.Tour, error) {
	q := `SELECT ` + tourCols + ` FROM tours WHERE available = true ORDER BY created_at DESC`
	if limit > 0 {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		rows, err := r.pool.Query(ctx, q+` LIMIT $1`, limit)
		if err != nil {
			return nil, err
		}
		return collectTours(rows)
	}
	return r.list(ctx, q)
}

func (r *tourRepository) list(ctx context.Context, q string) ([]domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectTours(rows)
}

func collectTours(rows pgx.Rows) ([]domain.Tour, error) {
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, *t)
	}
	return tours, rows.Err()
}

func (r *tourRepository) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM tours`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}
