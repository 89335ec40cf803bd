//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pachgroup/pachsite/internal/deals"
	"github.com/pachgroup/pachsite/internal/properties"
	"github.com/pachgroup/pachsite/internal/testimonials"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) do(client *http.Client, method, path string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) login(client *http.Client) {
	status, body := s.do(client, "POST", "/api/auth/login", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))
}

func (s *IntegrationTestSuite) TestHealth() {
	t := s.T()

	status, body := s.do(s.newClient(), "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"ok","version":"test-version-info"}`, string(body))
}

func (s *IntegrationTestSuite) TestSession() {
	t := s.T()
	client := s.newClient()

	status, body := s.do(client, "GET", "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"authenticated":false}`, string(body))

	s.login(client)
	status, body = s.do(client, "GET", "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"authenticated":true,"user":{"username":%q,"role":"admin"}}`, testUsername), string(body))

	status, _ = s.do(client, "POST", "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(client, "GET", "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestLoginRateLimited() {
	t := s.T()
	client := s.newClient()

	wrong := map[string]string{"username": testUsername, "password": "wrong"}
	for i := 0; i < loginAllowedPerMin; i++ {
		status, _ := s.do(client, "POST", "/api/auth/login", wrong)
		require.Equal(t, http.StatusUnauthorized, status, "attempt %d", i+1)
	}

	status, _ := s.do(client, "POST", "/api/auth/login", wrong)
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func (s *IntegrationTestSuite) TestPropertyLifecycle() {
	t := s.T()
	client := s.newClient()

	newProperty := map[string]any{
		"title":       gofakeit.Sentence(3),
		"district":    gofakeit.City(),
		"addressHint": gofakeit.Street(),
		"priceRub":    "12500000",
		"areaM2":      54.3,
		"rooms":       2,
		"features":    "балкон, парковка",
		"imageUrls":   []string{"https://img.example/1.jpg", "https://img.example/2.jpg", "https://img.example/3.jpg"},
	}

	status, _ := s.do(client, "POST", "/api/properties", newProperty)
	require.Equal(t, http.StatusUnauthorized, status)

	s.login(client)

	status, body := s.do(client, "POST", "/api/properties", newProperty)
	require.Equal(t, http.StatusCreated, status, string(body))
	var created properties.Property
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, properties.StatusSale, created.Status)
	assert.Equal(t, int64(12500000), created.PriceRub)
	assert.Equal(t, []string{"балкон", "парковка"}, created.Features)
	assert.Equal(t, "https://img.example/1.jpg", created.ImageURL)
	assert.Equal(t, newProperty["imageUrls"], created.ImageURLs)

	listed := s.listProperties(client)
	require.Contains(t, listed, created.ID.String())
	assert.Equal(t, created.ImageURLs, listed[created.ID.String()].ImageURLs)

	newProperty["priceRub"] = 11900000
	newProperty["status"] = "sold"
	status, body = s.do(client, "PUT", "/api/properties/"+created.ID.String(), newProperty)
	require.Equal(t, http.StatusOK, status, string(body))
	var updated properties.Property
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, int64(11900000), updated.PriceRub)
	assert.Equal(t, properties.StatusSold, updated.Status)

	// sold properties leave the public list
	assert.NotContains(t, s.listProperties(client), created.ID.String())

	status, _ = s.do(client, "DELETE", "/api/properties?id="+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	status, body = s.do(client, "DELETE", "/api/properties?id="+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))

	status, _ = s.do(client, "PUT", "/api/properties/"+created.ID.String(), newProperty)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) listProperties(client *http.Client) map[string]properties.Property {
	t := s.T()

	status, body := s.do(client, "GET", "/api/properties", nil)
	require.Equal(t, http.StatusOK, status)
	var list []properties.Property
	require.NoError(t, json.Unmarshal(body, &list))

	byID := make(map[string]properties.Property, len(list))
	for _, p := range list {
		byID[p.ID.String()] = p
	}
	return byID
}

func (s *IntegrationTestSuite) TestDeal_LegacySchemaWithoutImageCollection() {
	t := s.T()
	client := s.newClient()
	s.login(client)

	imageURLs := []string{"https://img.example/deal-1.jpg", "https://img.example/deal-2.jpg"}
	status, body := s.do(client, "POST", "/api/deals", map[string]any{
		"district":  gofakeit.City(),
		"dateLabel": "Март 2024",
		"note":      gofakeit.Sentence(6),
		"imageUrls": imageURLs,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created deals.Deal
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, deals.BadgeSold, created.Badge)
	assert.Nil(t, created.PriceRub)
	assert.Equal(t, imageURLs[0], created.ImageURL)
	assert.Equal(t, imageURLs, created.ImageURLs)

	status, body = s.do(client, "GET", "/api/deals", nil)
	require.Equal(t, http.StatusOK, status)
	var list []deals.Deal
	require.NoError(t, json.Unmarshal(body, &list))

	var found *deals.Deal
	for i := range list {
		if list[i].ID == created.ID {
			found = &list[i]
		}
	}
	require.NotNil(t, found)
	// only the canonical image survives a schema without image_urls
	assert.Equal(t, imageURLs[0], found.ImageURL)
	assert.Equal(t, []string{imageURLs[0]}, found.ImageURLs)
}

func (s *IntegrationTestSuite) TestTestimonials() {
	t := s.T()
	client := s.newClient()
	s.login(client)

	status, body := s.do(client, "POST", "/api/testimonials", map[string]string{
		"initials": "  М. К. ",
		"text":     "Всё прошло быстро.",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var created testimonials.Testimonial
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "М. К.", created.Initials)

	status, _ = s.do(client, "POST", "/api/testimonials", map[string]string{"initials": " ", "text": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(client, "GET", "/api/testimonials", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), created.ID.String())

	status, _ = s.do(client, "DELETE", "/api/testimonials/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, status)
}
