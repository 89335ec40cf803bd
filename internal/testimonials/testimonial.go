package testimonials

import (
	"errors"
	"time"

	"github.com/pachgroup/pachsite/internal/resource"

	"github.com/google/uuid"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Initials  string    `json:"initials"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Request struct {
	Initials string `json:"initials"`
	Text     string `json:"text"`
}

func (req Request) Validate() (*Testimonial, error) {
	var missing []string
	t := &Testimonial{
		Initials: resource.RequiredText(req.Initials, "initials", &missing),
		Text:     resource.RequiredText(req.Text, "text", &missing),
	}
	if err := resource.MissingFields(missing...); err != nil {
		return nil, err
	}
	return t, nil
}
