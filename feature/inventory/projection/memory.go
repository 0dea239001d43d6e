package projection

import (
	"context"
	"slices"
	"sync"

	"inventory-sync/feature/inventory/models"
)

// BulkSource loads whole tables at once.
type BulkSource interface {
	AllGroups(ctx context.Context) ([]models.ProductGroup, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	AllPositiveRemains(ctx context.Context) ([]models.StoreStock, error)
}

// MemorySource answers Source queries from preloaded tables.
type MemorySource struct {
	roots    []models.ProductGroup
	children map[string][]models.ProductGroup
	products map[string][]models.Product
	remains  map[string][]models.StoreStock
}

// Preload reads the three tables concurrently and indexes them by parent.
func Preload(ctx context.Context, bulk BulkSource) (*MemorySource, error) {
	var (
		groups    []models.ProductGroup
		products  []models.Product
		remains   []models.StoreStock
		groupsErr error
		prodErr   error
		remErr    error
		wg        sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		groups, groupsErr = bulk.AllGroups(ctx)
	}()
	go func() {
		defer wg.Done()
		products, prodErr = bulk.AllProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		remains, remErr = bulk.AllPositiveRemains(ctx)
	}()
	wg.Wait()

	if groupsErr != nil {
		return nil, groupsErr
	}
	if prodErr != nil {
		return nil, prodErr
	}
	if remErr != nil {
		return nil, remErr
	}

	m := &MemorySource{
		children: make(map[string][]models.ProductGroup),
		products: make(map[string][]models.Product),
		remains:  make(map[string][]models.StoreStock),
	}
	for _, g := range groups {
		if g.ParentUID == nil {
			m.roots = append(m.roots, g)
			continue
		}
		m.children[*g.ParentUID] = append(m.children[*g.ParentUID], g)
	}
	for _, p := range products {
		m.products[p.GroupUID] = append(m.products[p.GroupUID], p)
	}
	for _, r := range remains {
		m.remains[r.ProductUID] = append(m.remains[r.ProductUID], r)
	}
	return m, nil
}

func (m *MemorySource) GroupsByParent(_ context.Context, parentUID *string, exclude []string) ([]models.ProductGroup, error) {
	groups := m.roots
	if parentUID != nil {
		groups = m.children[*parentUID]
	}
	if len(exclude) == 0 {
		return groups, nil
	}
	out := make([]models.ProductGroup, 0, len(groups))
	for _, g := range groups {
		if !slices.Contains(exclude, g.Name) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *MemorySource) ProductsByGroup(_ context.Context, groupUID string) ([]models.Product, error) {
	return m.products[groupUID], nil
}

func (m *MemorySource) PositiveRemains(_ context.Context, productUID string) ([]models.StoreStock, error) {
	return m.remains[productUID], nil
}

// PreloadBuilder builds from a fresh MemorySource on every call.
type PreloadBuilder struct {
	bulk    BulkSource
	exclude []string
}

// NewPreloadBuilder creates a builder issuing three bulk queries per build.
func NewPreloadBuilder(bulk BulkSource, exclude []string) *PreloadBuilder {
	return &PreloadBuilder{bulk: bulk, exclude: exclude}
}

// Build preloads the tables and builds with the same pruning as Builder.
func (b *PreloadBuilder) Build(ctx context.Context) (*Projection, error) {
	src, err := Preload(ctx, b.bulk)
	if err != nil {
		return nil, err
	}
	return NewBuilder(src, b.exclude).Build(ctx)
}
