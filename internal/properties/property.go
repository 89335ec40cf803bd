package properties

import (
	"errors"
	"strings"
	"time"

	"github.com/pachgroup/pachsite/internal/resource"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = errors.New("property not found")

type Status string

const (
	StatusSale Status = "sale"
	StatusSold Status = "sold"
	StatusRent Status = "rent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSale, StatusSold, StatusRent:
		return true
	default:
		return false
	}
}

type Property struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	District    string    `json:"district"`
	AddressHint string    `json:"addressHint"`
	PriceRub    int64     `json:"priceRub"`
	AreaM2      float64   `json:"areaM2"`
	Rooms       int       `json:"rooms"`
	Status      Status    `json:"status"`
	ImageURL    string    `json:"imageUrl"`
	ImageURLs   []string  `json:"imageUrls"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Request is the admin form payload for creating or replacing a property.
type Request struct {
	Title       string              `json:"title"`
	District    string              `json:"district"`
	AddressHint string              `json:"addressHint"`
	PriceRub    resource.Number     `json:"priceRub"`
	AreaM2      resource.Number     `json:"areaM2"`
	Rooms       resource.Number     `json:"rooms"`
	Status      string              `json:"status"`
	ImageURL    string              `json:"imageUrl"`
	ImageURLs   []string            `json:"imageUrls"`
	Description string              `json:"description"`
	Features    resource.StringList `json:"features"`
}

// Validate checks the payload and builds the property it describes.
// An empty Status in the result means the caller decides (create: sale, update: keep).
func (req Request) Validate() (*Property, error) {
	var missing []string
	p := &Property{
		Title:       resource.RequiredText(req.Title, "title", &missing),
		District:    resource.RequiredText(req.District, "district", &missing),
		AddressHint: resource.RequiredText(req.AddressHint, "addressHint", &missing),
		Description: strings.TrimSpace(req.Description),
		Features:    resource.CleanList(req.Features),
	}
	if !req.PriceRub.Present() {
		missing = append(missing, "priceRub")
	}
	if !req.AreaM2.Present() {
		missing = append(missing, "areaM2")
	}
	if !req.Rooms.Present() {
		missing = append(missing, "rooms")
	}
	if err := resource.MissingFields(missing...); err != nil {
		return nil, err
	}

	price, err := req.PriceRub.PositiveInt("priceRub")
	if err != nil {
		return nil, err
	}
	area, err := req.AreaM2.Positive("areaM2")
	if err != nil {
		return nil, err
	}
	rooms, err := req.Rooms.PositiveInt("rooms")
	if err != nil {
		return nil, err
	}
	p.PriceRub = price
	p.AreaM2 = area
	p.Rooms = int(rooms)

	if status := Status(strings.ToLower(strings.TrimSpace(req.Status))); status != "" {
		if !status.Valid() {
			return nil, resource.Invalid("status must be one of sale, sold, rent")
		}
		p.Status = status
	}

	p.ImageURL, p.ImageURLs = resource.NormalizeImages(req.ImageURL, req.ImageURLs)

	return p, nil
}
