package testimonials

import (
	"context"
	"errors"
	"fmt"

	"github.com/pachgroup/pachsite/internal/store"
	"github.com/pachgroup/pachsite/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const returning = ` RETURNING id, initials, text, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var t Testimonial
	if err := row.Scan(&t.ID, &t.Initials, &t.Text, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) List(ctx context.Context) (_ []Testimonial, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "testimonialsRepo.list")
	defer func() { tracing.EndSpan(span, err) }()

	rows, err := r.db.Query(ctx, `SELECT id, initials, text, created_at FROM testimonials ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repo) Add(ctx context.Context, t *Testimonial) (_ *Testimonial, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "testimonialsRepo.add")
	defer func() { tracing.EndSpan(span, err) }()

	return scanTestimonial(r.db.QueryRow(
		ctx,
		`INSERT INTO testimonials (initials, text) VALUES ($1, $2)`+returning,
		t.Initials, t.Text,
	))
}

func (r *Repo) Update(ctx context.Context, t *Testimonial) (_ *Testimonial, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "testimonialsRepo.update")
	span.SetAttributes(attribute.String("id", t.ID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	updated, err := scanTestimonial(r.db.QueryRow(
		ctx,
		`UPDATE testimonials SET initials = $2, text = $3 WHERE id = $1`+returning,
		t.ID, t.Initials, t.Text,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTestimonialNotFound
	}
	return updated, err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (_ bool, err error) {
	if r.db == nil {
		return false, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "testimonialsRepo.delete")
	span.SetAttributes(attribute.String("id", id.String()))
	defer func() { tracing.EndSpan(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
