package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ActiveOverlapping reports whether any active reservation on the office
	// overlaps the inclusive range [start, end]. Two ranges overlap when they
	// share at least one calendar day; adjacency is not a conflict.
	ActiveOverlapping(ctx context.Context, officeID string, start, end time.Time) (bool, error)

	// DueOn returns the active reservations starting on the given calendar day.
	DueOn(ctx context.Context, day time.Time) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("office_id", "user_id", "start_date", "end_date", "status", "price").
		Values(res.OfficeID, res.UserID, res.StartDate, res.EndDate, string(res.Status), res.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return fmt.Errorf("insert reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	const query = `
		SELECT r.id, r.office_id, r.user_id, r.start_date, r.end_date, r.status, r.price,
			r.created_at, r.updated_at, o.title, o.user_id
		FROM public.reservations r
		JOIN public.offices o ON r.office_id = o.id
		WHERE r.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)

	var res Reservation
	var status string
	if err := row.Scan(
		&res.ID, &res.OfficeID, &res.UserID, &res.StartDate, &res.EndDate, &status, &res.Price,
		&res.CreatedAt, &res.UpdatedAt, &res.OfficeTitle, &res.HostID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	res.Status = Status(status)
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.office_id", "r.user_id", "r.start_date", "r.end_date", "r.status", "r.price",
		"r.created_at", "r.updated_at", "o.title", "o.user_id",
		"count(*) OVER() as total_count",
	).
		From("public.reservations r").
		Join("public.offices o ON r.office_id = o.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.HostID != "" {
		query = query.Where(squirrel.Eq{"o.user_id": filter.HostID})
	}
	if filter.OfficeID != "" {
		query = query.Where(squirrel.Eq{"r.office_id": filter.OfficeID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	// Window filtering follows the same inclusive intersection rule as the
	// availability check.
	if filter.FromDate != nil {
		query = query.Where(squirrel.GtOrEq{"r.end_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		query = query.Where(squirrel.LtOrEq{"r.start_date": *filter.ToDate})
	}

	query = query.OrderBy("r.start_date DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		var status string
		if err := rows.Scan(
			&res.ID, &res.OfficeID, &res.UserID, &res.StartDate, &res.EndDate, &status, &res.Price,
			&res.CreatedAt, &res.UpdatedAt, &res.OfficeTitle, &res.HostID, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		res.Status = Status(status)
		reservations = append(reservations, &res)
	}

	return reservations, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.reservations
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("update reservation status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ActiveOverlapping(ctx context.Context, officeID string, start, end time.Time) (bool, error) {
	// Inclusive-inclusive intersection:
	// existing.start_date <= candidate.end AND existing.end_date >= candidate.start
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.reservations").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.Eq{"status": string(StatusActive)}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) DueOn(ctx context.Context, day time.Time) ([]*Reservation, error) {
	const query = `
		SELECT r.id, r.office_id, r.user_id, r.start_date, r.end_date, r.status, r.price,
			r.created_at, r.updated_at, o.title, o.user_id
		FROM public.reservations r
		JOIN public.offices o ON r.office_id = o.id
		WHERE r.status = 'active' AND r.start_date = $1::date
		ORDER BY r.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("list due reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		var status string
		if err := rows.Scan(
			&res.ID, &res.OfficeID, &res.UserID, &res.StartDate, &res.EndDate, &status, &res.Price,
			&res.CreatedAt, &res.UpdatedAt, &res.OfficeTitle, &res.HostID,
		); err != nil {
			return nil, fmt.Errorf("scan due reservation failed: %w", err)
		}
		res.Status = Status(status)
		reservations = append(reservations, &res)
	}

	return reservations, nil
}
