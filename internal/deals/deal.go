package deals

import (
	"errors"
	"strings"
	"time"

	"github.com/pachgroup/pachsite/internal/resource"

	"github.com/google/uuid"
)

var ErrDealNotFound = errors.New("deal not found")

type Badge string

const (
	BadgeSold   Badge = "Продано"
	BadgeRented Badge = "Сдано"
)

func (b Badge) Valid() bool {
	return b == BadgeSold || b == BadgeRented
}

// Deal is a closed deal shown in the "recent deals" block.
type Deal struct {
	ID        uuid.UUID `json:"id"`
	Badge     Badge     `json:"badge"`
	District  string    `json:"district"`
	DateLabel string    `json:"dateLabel"`
	PriceRub  *int64    `json:"priceRub,omitempty"`
	Note      string    `json:"note"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ImageURLs []string  `json:"imageUrls,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Request struct {
	Badge     string          `json:"badge"`
	District  string          `json:"district"`
	DateLabel string          `json:"dateLabel"`
	PriceRub  resource.Number `json:"priceRub"`
	Note      string          `json:"note"`
	ImageURL  string          `json:"imageUrl"`
	ImageURLs []string        `json:"imageUrls"`
}

// Validate checks the payload and builds the deal it describes.
// The badge defaults to BadgeSold.
func (req Request) Validate() (*Deal, error) {
	var missing []string
	d := &Deal{
		District:  resource.RequiredText(req.District, "district", &missing),
		DateLabel: resource.RequiredText(req.DateLabel, "dateLabel", &missing),
		Note:      resource.RequiredText(req.Note, "note", &missing),
		Badge:     BadgeSold,
	}
	if err := resource.MissingFields(missing...); err != nil {
		return nil, err
	}

	if req.PriceRub.Present() {
		price, err := req.PriceRub.PositiveInt("priceRub")
		if err != nil {
			return nil, err
		}
		d.PriceRub = &price
	}

	if badge := Badge(strings.TrimSpace(req.Badge)); badge != "" {
		if !badge.Valid() {
			return nil, resource.Invalid("badge must be one of %s, %s", BadgeSold, BadgeRented)
		}
		d.Badge = badge
	}

	d.ImageURL, d.ImageURLs = resource.NormalizeImages(req.ImageURL, req.ImageURLs)

	return d, nil
}
