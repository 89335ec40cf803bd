package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

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
	table           = "properties"
	imageURLsColumn = "image_urls"
	baseColumns     = "id, title, district, address_hint, price_rub, area_m2, rooms, status, image_url, description, features, created_at"
)

// Repo stores properties in postgres. A nil pool makes every call fail with store.ErrNotConfigured.
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

func (r *Repo) supportsImageURLs() bool {
	return r.caps.HasColumn(table, imageURLsColumn)
}

func columns(withImages bool) string {
	if withImages {
		return baseColumns + ", " + imageURLsColumn
	}
	return baseColumns
}

func scanProperty(row pgx.Row, withImages bool) (*Property, error) {
	var (
		p           Property
		status      string
		imageURL    *string
		description *string
		features    []string
		imageURLs   []string
	)
	dest := []any{
		&p.ID, &p.Title, &p.District, &p.AddressHint, &p.PriceRub, &p.AreaM2,
		&p.Rooms, &status, &imageURL, &description, &features, &p.CreatedAt,
	}
	if withImages {
		dest = append(dest, &imageURLs)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	p.Status = Status(status)
	if description != nil {
		p.Description = *description
	}
	if features == nil {
		features = []string{}
	}
	p.Features = features

	var single string
	if imageURL != nil {
		single = *imageURL
	}
	p.ImageURL, p.ImageURLs = resource.NormalizeImages(single, imageURLs)

	return &p, nil
}

// List returns the properties on sale, newest first.
func (r *Repo) List(ctx context.Context) (_ []Property, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "propertiesRepo.list")
	defer func() { tracing.EndSpan(span, err) }()

	withImages := r.supportsImageURLs()
	props, err := r.list(ctx, withImages)
	if withImages && pkg.IsUndefinedColumnError(err) {
		props, err = r.list(ctx, false)
	}
	return props, err
}

func (r *Repo) list(ctx context.Context, withImages bool) ([]Property, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+columns(withImages)+` FROM properties WHERE status = $1 ORDER BY created_at DESC`,
		string(StatusSale),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := []Property{}
	for rows.Next() {
		p, err := scanProperty(rows, withImages)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		props = append(props, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return props, nil
}

// Add inserts p. withImages writes the image collection column; the
// returned property carries the stored collection whenever the column exists.
func (r *Repo) Add(ctx context.Context, p *Property, withImages bool) (_ *Property, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}
	if withImages && !r.supportsImageURLs() {
		return nil, &store.UnsupportedFieldError{Table: table, Column: imageURLsColumn}
	}

	ctx, span := tracing.Start(ctx, "propertiesRepo.add")
	defer func() { tracing.EndSpan(span, err) }()

	cols := []string{"title", "district", "address_hint", "price_rub", "area_m2", "rooms", "status", "image_url", "description", "features"}
	args := []any{p.Title, p.District, p.AddressHint, p.PriceRub, p.AreaM2, p.Rooms, string(p.Status), p.ImageURL, p.Description, p.Features}
	if withImages {
		cols = append(cols, imageURLsColumn)
		args = append(args, p.ImageURLs)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := `INSERT INTO properties (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `) RETURNING `

	added, err := r.readingImages(withImages, func(readImages bool) (*Property, error) {
		return scanProperty(r.db.QueryRow(ctx, query+columns(readImages), args...), readImages)
	})
	if err != nil {
		return nil, store.MapError(table, err)
	}

	return added, nil
}

// Update replaces every field of the stored property with p in one statement.
// An empty status or image keeps the stored one.
func (r *Repo) Update(ctx context.Context, p *Property, withImages bool) (_ *Property, err error) {
	if r.db == nil {
		return nil, store.ErrNotConfigured
	}
	if withImages && !r.supportsImageURLs() {
		return nil, &store.UnsupportedFieldError{Table: table, Column: imageURLsColumn}
	}

	ctx, span := tracing.Start(ctx, "propertiesRepo.update")
	span.SetAttributes(attribute.String("id", p.ID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	query := `UPDATE properties SET
			title = $2, district = $3, address_hint = $4, price_rub = $5, area_m2 = $6, rooms = $7,
			status = COALESCE(NULLIF($8, ''), status),
			image_url = COALESCE(NULLIF($9, ''), image_url),
			description = $10, features = $11`
	args := []any{p.ID, p.Title, p.District, p.AddressHint, p.PriceRub, p.AreaM2, p.Rooms, string(p.Status), p.ImageURL, p.Description, p.Features}
	if withImages {
		var imageURLs []string
		if len(p.ImageURLs) > 0 {
			imageURLs = p.ImageURLs
		}
		query += `, image_urls = COALESCE($12, image_urls)`
		args = append(args, imageURLs)
	}
	query += ` WHERE id = $1 RETURNING `

	updated, err := r.readingImages(withImages, func(readImages bool) (*Property, error) {
		return scanProperty(r.db.QueryRow(ctx, query+columns(readImages), args...), readImages)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPropertyNotFound
		}
		return nil, store.MapError(table, err)
	}

	return updated, nil
}

// readingImages returns the image collection whenever the column exists,
// even when the write leaves it alone. A schema that turns out to lack the
// column gets the statement again without it.
func (r *Repo) readingImages(withImages bool, write func(readImages bool) (*Property, error)) (*Property, error) {
	readImages := withImages || r.supportsImageURLs()
	p, err := write(readImages)
	if readImages && !withImages && pkg.IsUndefinedColumnError(err) && pkg.UndefinedColumnName(err) == imageURLsColumn {
		return write(false)
	}
	return p, err
}

// Delete removes the property; the bool reports whether a row was removed.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (_ bool, err error) {
	if r.db == nil {
		return false, store.ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "propertiesRepo.delete")
	span.SetAttributes(attribute.String("id", id.String()))
	defer func() { tracing.EndSpan(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
