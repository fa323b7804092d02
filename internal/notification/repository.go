package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists dispatched notifications.
type Store interface {
	Insert(ctx context.Context, n *Notification) error
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)

	// SentOn reports whether a notification of the given kind was already
	// recorded for the reservation on the given calendar day.
	SentOn(ctx context.Context, reservationID string, kind Kind, day time.Time) (bool, error)
}

type pgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (s *pgxStore) Insert(ctx context.Context, n *Notification) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notifications").
		Columns("user_id", "reservation_id", "kind", "payload").
		Values(n.UserID, n.ReservationID, string(n.Kind), n.Payload).
		Suffix("RETURNING id, sent_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert notification query failed: %w", err)
	}

	return s.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.SentAt)
}

func (s *pgxStore) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "user_id", "reservation_id", "kind", "payload", "sent_at", "count(*) OVER() as total_count").
		From("public.notifications")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ReservationID != "" {
		query = query.Where(squirrel.Eq{"reservation_id": filter.ReservationID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": string(filter.Kind)})
	}

	query = query.OrderBy("sent_at DESC")

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
		return nil, 0, fmt.Errorf("build list notifications query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var items []*Notification
	var total int

	for rows.Next() {
		var n Notification
		var kind string
		if err := rows.Scan(&n.ID, &n.UserID, &n.ReservationID, &kind, &n.Payload, &n.SentAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan notification failed: %w", err)
		}
		n.Kind = Kind(kind)
		items = append(items, &n)
	}

	return items, total, nil
}

func (s *pgxStore) SentOn(ctx context.Context, reservationID string, kind Kind, day time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM public.notifications
			WHERE reservation_id = $1 AND kind = $2 AND sent_at::date = $3::date
		)
	`

	var exists bool
	err := s.pool.QueryRow(ctx, query, reservationID, string(kind), day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sent notification failed: %w", err)
	}
	return exists, nil
}
