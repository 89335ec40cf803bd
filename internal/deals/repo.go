package deals

import (
	"context"
	"errors"
	"fmt"

	"github.com/pachgroup/pachsite/internal/resource"
	"github.com/pachgroup/pachsite/internal/store"
	"github.com/pachgroup/pachsite/internal/telemetry/tracing"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	table           = "deals"
	imageURLsColumn = "image_urls"
	baseColumns     = "id, badge, district, date_label, price_rub, note, image_url, created_at"
)

type Repo struct {
	db   *pgxpool.Pool
	caps *store.Capabilities
}

func NewRepo(db *pgxpool.Pool, caps *store.Capabilities) *Repo {
	return &Repo{
		db:   db,
		caps: caps,
	}
}

func columns(withImages bool) string {
	if withImages {
		return baseColumns + ", " + imageURLsColumn
	}
	return baseColumns
}

func scanDeal(row pgx.Row, withImages bool) (*Deal, error) {
	var (
		d         Deal
		badge     *string
		priceRub  *int64
		imageURL  *string
		imageURLs []string
	)
	dest := []any{&d.ID, &badge, &d.District, &d.DateLabel, &priceRub, &d.Note, &imageURL, &d.CreatedAt}
	if withImages {
		dest = append(dest, &imageURLs)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	d.Badge = BadgeSold
	if badge != nil && *badge != "" {
		d.Badge = Badge(*badge)
	}
	// zero price is treated as not set
	if priceRub != nil && *priceRub > 0 {
		d.PriceRub = priceRub
	}

	var single string
	if imageURL != nil {
		single = *imageURL
	}
	d.ImageURL, d.ImageURLs = resource.NormalizeImages(single, imageURLs)

	return &d, nil
}

// List returns all deals, newest first.
func (r *Repo) List(ctx context.Context) (_ []Deal, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "dealsRepo.list")
	defer func() { tracing.EndSpan(span, err) }()

	withImages := r.caps.HasColumn(table, imageURLsColumn)
	deals, err := r.list(ctx, withImages)
	if withImages && pkg.IsUndefinedColumnError(err) {
		deals, err = r.list(ctx, false)
	}
	return deals, err
}

func (r *Repo) list(ctx context.Context, withImages bool) ([]Deal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns(withImages)+` FROM deals ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := []Deal{}
	for rows.Next() {
		d, err := scanDeal(rows, withImages)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		deals = append(deals, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deals, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Add inserts d. withImages writes the image collection column; the
// returned deal carries the stored collection whenever the column exists.
func (r *Repo) Add(ctx context.Context, d *Deal, withImages bool) (_ *Deal, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}
	if withImages && !r.caps.HasColumn(table, imageURLsColumn) {
		return nil, &store.UnsupportedFieldError{Table: table, Column: imageURLsColumn}
	}

	ctx, span := tracing.Start(ctx, "dealsRepo.add")
	defer func() { tracing.EndSpan(span, err) }()

	added, err := r.readingImages(withImages, func(readImages bool) (*Deal, error) {
		return r.add(ctx, d, withImages, readImages)
	})
	if err != nil {
		return nil, store.MapError(table, err)
	}

	return added, nil
}

func (r *Repo) add(ctx context.Context, d *Deal, withImages, readImages bool) (*Deal, error) {
	query := `INSERT INTO deals (badge, district, date_label, price_rub, note, image_url) VALUES ($1, $2, $3, $4, $5, $6)`
	args := []any{string(d.Badge), d.District, d.DateLabel, d.PriceRub, d.Note, nullable(d.ImageURL)}
	if withImages {
		query = `INSERT INTO deals (badge, district, date_label, price_rub, note, image_url, image_urls) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		args = append(args, d.ImageURLs)
	}

	return scanDeal(r.db.QueryRow(ctx, query+` RETURNING `+columns(readImages), args...), readImages)
}

// Update replaces the stored deal with d in one statement.
// An empty image keeps the stored one.
func (r *Repo) Update(ctx context.Context, d *Deal, withImages bool) (_ *Deal, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}
	if withImages && !r.caps.HasColumn(table, imageURLsColumn) {
		return nil, &store.UnsupportedFieldError{Table: table, Column: imageURLsColumn}
	}

	ctx, span := tracing.Start(ctx, "dealsRepo.update")
	span.SetAttributes(attribute.String("id", d.ID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	updated, err := r.readingImages(withImages, func(readImages bool) (*Deal, error) {
		return r.update(ctx, d, withImages, readImages)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDealNotFound
		}
		return nil, store.MapError(table, err)
	}

	return updated, nil
}

func (r *Repo) update(ctx context.Context, d *Deal, withImages, readImages bool) (*Deal, error) {
	query := `UPDATE deals SET
			badge = $2, district = $3, date_label = $4, price_rub = $5, note = $6,
			image_url = COALESCE($7, image_url)`
	args := []any{d.ID, string(d.Badge), d.District, d.DateLabel, d.PriceRub, d.Note, nullable(d.ImageURL)}
	if withImages {
		var imageURLs []string
		if len(d.ImageURLs) > 0 {
			imageURLs = d.ImageURLs
		}
		query += `, image_urls = COALESCE($8, image_urls)`
		args = append(args, imageURLs)
	}
	query += ` WHERE id = $1 RETURNING ` + columns(readImages)

	return scanDeal(r.db.QueryRow(ctx, query, args...), readImages)
}

// readingImages runs write with the image collection in RETURNING when the
// column is known to exist. A write that does not touch the column is
// repeated without reading it if the schema turns out to lack it.
func (r *Repo) readingImages(withImages bool, write func(readImages bool) (*Deal, error)) (*Deal, error) {
	readImages := withImages || r.caps.HasColumn(table, imageURLsColumn)
	d, err := write(readImages)
	if readImages && !withImages && pkg.IsUndefinedColumnError(err) && pkg.UndefinedColumnName(err) == imageURLsColumn {
		return write(false)
	}
	return d, err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (_ bool, err error) {
	if r.db == nil {
		return false, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "dealsRepo.delete")
	span.SetAttributes(attribute.String("id", id.String()))
	defer func() { tracing.EndSpan(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
