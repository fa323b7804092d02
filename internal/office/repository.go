package office

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Office) error
	GetByID(ctx context.Context, id string) (*Office, error)
	List(ctx context.Context, filter Filter) ([]*Office, int, error)
	Update(ctx context.Context, o *Office) error
	Delete(ctx context.Context, id string) error

	// SetTags replaces the office's tag set.
	SetTags(ctx context.Context, officeID string, tagIDs []string) error

	// HasActiveReservations reports whether any active reservation references the office.
	HasActiveReservations(ctx context.Context, officeID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// officeColumns is the select list shared by GetByID and List. Tags come back
// as a JSON array, active reservation counts from a correlated subquery.
const officeColumns = `
	o.id,
	o.user_id,
	o.title,
	o.description,
	o.lat,
	o.lng,
	o.address_line1,
	o.hidden,
	o.approval_status,
	o.price_per_day,
	o.monthly_discount,
	o.created_at,
	o.updated_at,
	COALESCE(
		(
			SELECT json_agg(json_build_object('ID', t.id, 'Name', t.name))
			FROM public.office_tags ot
			JOIN public.tags t ON ot.tag_id = t.id
			WHERE ot.office_id = o.id
		),
		'[]'::json
	) AS tags,
	(
		SELECT count(*)
		FROM public.reservations r
		WHERE r.office_id = o.id AND r.status = 'active'
	) AS active_reservations
`

func (r *pgxRepository) Create(ctx context.Context, o *Office) error {
	const query = `
		INSERT INTO public.offices
			(user_id, title, description, lat, lng, address_line1, hidden, approval_status, price_per_day, monthly_discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		o.UserID, o.Title, o.Description, o.Lat, o.Lng, o.AddressLine1,
		o.Hidden, string(o.ApprovalStatus), o.PricePerDay, o.MonthlyDiscount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create office failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Office, error) {
	query := `SELECT ` + officeColumns + ` FROM public.offices o WHERE o.id = $1`

	row := r.pool.QueryRow(ctx, query, id)

	o, err := scanOffice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get office failed: %w", err)
	}
	return o, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Office, int, error) {
	var args []interface{}
	queryBase := `SELECT ` + officeColumns + `, count(*) OVER() as total_count
		FROM public.offices o
		WHERE o.approval_status = 'approved' AND o.hidden = false
	`
	paramIndex := 1

	if filter.UserID != "" {
		queryBase += fmt.Sprintf(" AND o.user_id = $%d", paramIndex)
		args = append(args, filter.UserID)
		paramIndex++
	}
	if filter.VisitorID != "" {
		queryBase += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM public.reservations r
			WHERE r.office_id = o.id AND r.user_id = $%d
		)`, paramIndex)
		args = append(args, filter.VisitorID)
		paramIndex++
	}

	// Nearest-to ordering: equirectangular approximation in miles, good
	// enough for ranking results by proximity.
	if filter.Lat != nil && filter.Lng != nil {
		queryBase += fmt.Sprintf(`
			ORDER BY POWER(69.1 * (o.lat - $%d), 2) + POWER(69.1 * ($%d - o.lng) * COS(o.lat / 57.3), 2) ASC`,
			paramIndex, paramIndex+1)
		args = append(args, *filter.Lat, *filter.Lng)
		paramIndex += 2
	} else {
		queryBase += " ORDER BY o.created_at ASC"
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offices failed: %w", err)
	}
	defer rows.Close()

	var offices []*Office
	var total int

	for rows.Next() {
		o, err := scanOfficeWithTotal(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan office failed: %w", err)
		}
		offices = append(offices, o)
	}

	return offices, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Office) error {
	const query = `
		UPDATE public.offices
		SET title = $1,
			description = $2,
			lat = $3,
			lng = $4,
			address_line1 = $5,
			hidden = $6,
			approval_status = $7,
			price_per_day = $8,
			monthly_discount = $9,
			updated_at = now()
		WHERE id = $10
	`
	ct, err := r.pool.Exec(ctx, query,
		o.Title, o.Description, o.Lat, o.Lng, o.AddressLine1,
		o.Hidden, string(o.ApprovalStatus), o.PricePerDay, o.MonthlyDiscount, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update office failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.offices WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete office failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetTags(ctx context.Context, officeID string, tagIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set tags failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM public.office_tags WHERE office_id = $1`, officeID); err != nil {
		return fmt.Errorf("clear office tags failed: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO public.office_tags (office_id, tag_id) VALUES ($1, $2)`,
			officeID, tagID,
		); err != nil {
			return fmt.Errorf("insert office tag failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set tags failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasActiveReservations(ctx context.Context, officeID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.reservations
			WHERE office_id = $1 AND status = 'active'
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, officeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active reservations failed: %w", err)
	}
	return exists, nil
}

func scanOffice(row pgx.Row) (*Office, error) {
	var o Office
	var status string
	var tagsJSON []byte

	if err := row.Scan(
		&o.ID, &o.UserID, &o.Title, &o.Description, &o.Lat, &o.Lng, &o.AddressLine1,
		&o.Hidden, &status, &o.PricePerDay, &o.MonthlyDiscount, &o.CreatedAt, &o.UpdatedAt,
		&tagsJSON, &o.ActiveReservations,
	); err != nil {
		return nil, err
	}

	o.ApprovalStatus = ApprovalStatus(status)
	unmarshalTags(&o, tagsJSON)
	return &o, nil
}

func scanOfficeWithTotal(rows pgx.Rows, total *int) (*Office, error) {
	var o Office
	var status string
	var tagsJSON []byte

	if err := rows.Scan(
		&o.ID, &o.UserID, &o.Title, &o.Description, &o.Lat, &o.Lng, &o.AddressLine1,
		&o.Hidden, &status, &o.PricePerDay, &o.MonthlyDiscount, &o.CreatedAt, &o.UpdatedAt,
		&tagsJSON, &o.ActiveReservations, total,
	); err != nil {
		return nil, err
	}

	o.ApprovalStatus = ApprovalStatus(status)
	unmarshalTags(&o, tagsJSON)
	return &o, nil
}

func unmarshalTags(o *Office, tagsJSON []byte) {
	if len(tagsJSON) == 0 {
		return
	}
	if err := json.Unmarshal(tagsJSON, &o.Tags); err != nil {
		log.Printf("warning: failed to unmarshal tags for office %s: %v", o.ID, err)
	}
}
