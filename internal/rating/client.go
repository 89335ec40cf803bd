package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"github.com/pachgroup/pachsite/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrMissingApiKey  = errors.New("2GIS API key not configured")
	ErrInvalidPayload = errors.New("invalid response from 2GIS API")
)

// UpstreamError is a non 2xx answer of the catalog API.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Rating is the branch rating shown on the site.
type Rating struct {
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
	ReviewsURL   string  `json:"reviewsUrl"`
}

type catalogResponse struct {
	Meta struct {
		Code int `json:"code"`
	} `json:"meta"`
	Result struct {
		Items []struct {
			ID      string `json:"id"`
			Reviews *struct {
				GeneralRating      *float64 `json:"general_rating"`
				GeneralReviewCount *float64 `json:"general_review_count"`
				OrgRating          *float64 `json:"org_rating"`
				OrgReviewCount     *float64 `json:"org_review_count"`
			} `json:"reviews"`
		} `json:"items"`
	} `json:"result"`
}

// Client reads the branch rating from the 2GIS catalog API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	branchID   string
	reviewsURL string
}

func NewClient(httpClient *http.Client, apiURL, apiKey, branchID, reviewsURL string) *Client {
	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
		branchID:   branchID,
		reviewsURL: reviewsURL,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) Fetch(ctx context.Context) (_ *Rating, err error) {
	if !c.Configured() {
		return nil, ErrMissingApiKey
	}

	ctx, span := tracing.Start(ctx, "ratingClient.fetch")
	span.SetAttributes(attribute.String("branch.id", c.branchID))
	defer func() { tracing.EndSpan(span, err) }()

	query := url.Values{}
	query.Set("id", c.branchID)
	query.Set("fields", "items.reviews")
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read 2gis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("2gis api error: %d %s", resp.StatusCode, respBytes)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	var catalogResp catalogResponse
	if err := json.Unmarshal(respBytes, &catalogResp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}
	if catalogResp.Meta.Code != http.StatusOK || len(catalogResp.Result.Items) == 0 {
		return nil, fmt.Errorf("%w: no items found in response", ErrInvalidPayload)
	}

	var ratingRaw, countRaw float64
	if reviews := catalogResp.Result.Items[0].Reviews; reviews != nil {
		ratingRaw = firstOf(reviews.GeneralRating, reviews.OrgRating)
		countRaw = firstOf(reviews.GeneralReviewCount, reviews.OrgReviewCount)
	}

	return &Rating{
		Rating:       math.Round(ratingRaw*10) / 10,
		ReviewsCount: int(math.Trunc(countRaw)),
		ReviewsURL:   c.reviewsURL,
	}, nil
}

func firstOf(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
