//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/pachgroup/pachsite/internal/deals"
	"github.com/pachgroup/pachsite/internal/properties"
	"github.com/pachgroup/pachsite/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestIntrospect() {
	t := s.T()

	caps, err := store.Introspect(context.Background(), s.pool, "properties", "deals", "testimonials", "missing_table")
	require.NoError(t, err)
	assert.True(t, caps.Known())
	assert.True(t, caps.HasColumn("properties", "image_urls"))
	assert.False(t, caps.HasColumn("deals", "image_urls"))
	assert.True(t, caps.HasColumn("deals", "price_rub"))
	assert.False(t, caps.HasTable("missing_table"))
}

func (s *IntegrationTestSuite) TestDealsRepo_UndefinedColumnMapsToUnsupportedField() {
	t := s.T()
	ctx := context.Background()

	// optimistic capabilities make the repo try image_urls and hit undefined_column
	repo := deals.NewRepo(s.pool, store.UnknownCapabilities())
	_, err := repo.Add(ctx, &deals.Deal{
		Badge:     deals.BadgeRented,
		District:  gofakeit.City(),
		DateLabel: "Май 2024",
		Note:      gofakeit.Sentence(4),
		ImageURL:  "https://img.example/a.jpg",
		ImageURLs: []string{"https://img.example/a.jpg"},
	}, true)

	var unsupported *store.UnsupportedFieldError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image_urls", unsupported.Column)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func (s *IntegrationTestSuite) TestPropertiesRepo_ConcurrentUpdatesLastWriteWins() {
	t := s.T()
	ctx := context.Background()

	caps, err := store.Introspect(ctx, s.pool, "properties")
	require.NoError(t, err)
	repo := properties.NewRepo(s.pool, caps)

	added, err := repo.Add(ctx, &properties.Property{
		Title:       gofakeit.Sentence(3),
		District:    gofakeit.City(),
		AddressHint: gofakeit.Street(),
		PriceRub:    1_000_000,
		AreaM2:      40,
		Rooms:       1,
		Status:      properties.StatusSale,
		ImageURL:    "https://img.example/p.jpg",
		ImageURLs:   []string{"https://img.example/p.jpg"},
	}, true)
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Update(ctx, &properties.Property{
				ID:          added.ID,
				Title:       fmt.Sprintf("title-%d", i),
				District:    fmt.Sprintf("district-%d", i),
				AddressHint: added.AddressHint,
				PriceRub:    int64(i) * 1_000_000,
				AreaM2:      float64(i) * 10,
				Rooms:       i,
			}, false)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)

	var final *properties.Property
	for i := range list {
		if list[i].ID == added.ID {
			final = &list[i]
		}
	}
	require.NotNil(t, final)

	// every field comes from the same writer
	var winner int
	_, err = fmt.Sscanf(final.Title, "title-%d", &winner)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("district-%d", winner), final.District)
	assert.Equal(t, int64(winner)*1_000_000, final.PriceRub)
	assert.Equal(t, winner, final.Rooms)
	// empty status and image keep the stored values
	assert.Equal(t, properties.StatusSale, final.Status)
	assert.Equal(t, "https://img.example/p.jpg", final.ImageURL)

	removed, err := repo.Delete(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func (s *IntegrationTestSuite) TestPropertiesRepo_UpdateWithoutImagesReturnsStoredImages() {
	t := s.T()
	ctx := context.Background()

	caps, err := store.Introspect(ctx, s.pool, "properties")
	require.NoError(t, err)
	repo := properties.NewRepo(s.pool, caps)

	images := []string{"https://img.example/1.jpg", "https://img.example/2.jpg"}
	added, err := repo.Add(ctx, &properties.Property{
		Title:       gofakeit.Sentence(3),
		District:    gofakeit.City(),
		AddressHint: gofakeit.Street(),
		PriceRub:    2_000_000,
		AreaM2:      52,
		Rooms:       2,
		Status:      properties.StatusSale,
		ImageURL:    images[0],
		ImageURLs:   images,
	}, true)
	require.NoError(t, err)

	updated, err := repo.Update(ctx, &properties.Property{
		ID:          added.ID,
		Title:       "renamed",
		District:    added.District,
		AddressHint: added.AddressHint,
		PriceRub:    2_100_000,
		AreaM2:      52,
		Rooms:       2,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, images, updated.ImageURLs)
	assert.Equal(t, images[0], updated.ImageURL)

	_, err = repo.Delete(ctx, added.ID)
	require.NoError(t, err)
}

func (s *IntegrationTestSuite) TestDealsRepo_UpdateWithoutImagesOnLegacySchema() {
	t := s.T()
	ctx := context.Background()

	// the column is assumed present, RETURNING fails once and is repeated without it
	repo := deals.NewRepo(s.pool, store.UnknownCapabilities())
	added, err := repo.Add(ctx, &deals.Deal{
		Badge:     deals.BadgeSold,
		District:  gofakeit.City(),
		DateLabel: "Июнь 2024",
		Note:      gofakeit.Sentence(4),
		ImageURL:  "https://img.example/d.jpg",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/d.jpg"}, added.ImageURLs)

	updated, err := repo.Update(ctx, &deals.Deal{
		ID:        added.ID,
		Badge:     deals.BadgeRented,
		District:  added.District,
		DateLabel: added.DateLabel,
		Note:      "updated",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Note)
	assert.Equal(t, "https://img.example/d.jpg", updated.ImageURL)
	assert.Equal(t, []string{"https://img.example/d.jpg"}, updated.ImageURLs)

	removed, err := repo.Delete(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}
