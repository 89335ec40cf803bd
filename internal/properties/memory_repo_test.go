package properties_test

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/pachgroup/pachsite/internal/properties"
	"github.com/pachgroup/pachsite/internal/store"

	"github.com/google/uuid"
)

// memoryRepo mimics the postgres repo: each write replaces the whole row at once.
type memoryRepo struct {
	mu              sync.Mutex
	items           map[uuid.UUID]properties.Property
	noImageURLs     bool
	now             time.Time
	addCalls        int
	updateCalls     int
	deleteCalls     int
	withImagesCalls []bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		items: map[uuid.UUID]properties.Property{},
		now:   time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepo) stored(p properties.Property, withImages bool) properties.Property {
	p.Features = slices.Clone(p.Features)
	if withImages {
		p.ImageURLs = slices.Clone(p.ImageURLs)
	} else {
		p.ImageURLs = []string{p.ImageURL}
	}
	return p
}

func (r *memoryRepo) List(_ context.Context) ([]properties.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := []properties.Property{}
	for _, p := range r.items {
		if p.Status == properties.StatusSale {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *memoryRepo) Add(_ context.Context, p *properties.Property, withImages bool) (*properties.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCalls++
	r.withImagesCalls = append(r.withImagesCalls, withImages)

	if withImages && r.noImageURLs {
		return nil, &store.UnsupportedFieldError{Table: "properties", Column: "image_urls"}
	}

	r.now = r.now.Add(time.Minute)
	rec := r.stored(*p, withImages)
	rec.ID = uuid.New()
	rec.CreatedAt = r.now
	r.items[rec.ID] = rec
	return &rec, nil
}

func (r *memoryRepo) Update(_ context.Context, p *properties.Property, withImages bool) (*properties.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++

	existing, ok := r.items[p.ID]
	if !ok {
		return nil, properties.ErrPropertyNotFound
	}

	rec := r.stored(*p, withImages)
	rec.CreatedAt = existing.CreatedAt
	if rec.Status == "" {
		rec.Status = existing.Status
	}
	r.items[rec.ID] = rec
	return &rec, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++

	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

func (r *memoryRepo) get(id uuid.UUID) (properties.Property, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	return p, ok
}
