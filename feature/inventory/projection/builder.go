package projection

import (
	"context"
	"time"

	"inventory-sync/feature/inventory/models"
)

// Source is the read side of the relational store the tree is built from.
type Source interface {
	// GroupsByParent lists child groups of parentUID (roots when nil), omitting excluded names.
	GroupsByParent(ctx context.Context, parentUID *string, exclude []string) ([]models.ProductGroup, error)
	// ProductsByGroup lists the products directly owned by a group.
	ProductsByGroup(ctx context.Context, groupUID string) ([]models.Product, error)
	// PositiveRemains lists the stores holding a positive count of a product.
	PositiveRemains(ctx context.Context, productUID string) ([]models.StoreStock, error)
}

// Builder assembles a pruned projection from a Source.
type Builder struct {
	source  Source
	exclude []string
	now     func() time.Time
}

// NewBuilder creates a builder that skips groups named in exclude along with their subtrees.
func NewBuilder(source Source, exclude []string) *Builder {
	return &Builder{source: source, exclude: exclude, now: time.Now}
}

// Build walks the group forest post-order. A group is kept only when it owns
// a product with positive stock or a kept subgroup.
func (b *Builder) Build(ctx context.Context) (*Projection, error) {
	groups, err := b.build(ctx, nil)
	if err != nil {
		return nil, err
	}
	return New(groups, b.now()), nil
}

func (b *Builder) build(ctx context.Context, parentUID *string) (Groups, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children, err := b.source.GroupsByParent(ctx, parentUID, b.exclude)
	if err != nil {
		return nil, err
	}

	out := Groups{}
	for _, g := range children {
		sub, err := b.build(ctx, &g.UID)
		if err != nil {
			return nil, err
		}
		products, err := b.products(ctx, g.UID)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 && len(sub) == 0 {
			continue
		}
		out = insertSorted(out, &Node{Name: g.Name, Products: products, SubGroups: sub})
	}
	return out, nil
}

func (b *Builder) products(ctx context.Context, groupUID string) (map[string]Stock, error) {
	products, err := b.source.ProductsByGroup(ctx, groupUID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Stock)
	for _, p := range products {
		remains, err := b.source.PositiveRemains(ctx, p.UID)
		if err != nil {
			return nil, err
		}
		stock := make(Stock)
		for _, r := range remains {
			if r.Count > 0 {
				stock[r.StoreName] = r.Count
			}
		}
		if len(stock) > 0 {
			out[p.Name] = stock
		}
	}
	return out, nil
}

// insertSorted keeps siblings ordered by name; a later sibling with the same
// name replaces the earlier one.
func insertSorted(groups Groups, n *Node) Groups {
	i := len(groups)
	for i > 0 && groups[i-1].Name > n.Name {
		i--
	}
	if i > 0 && groups[i-1].Name == n.Name {
		groups[i-1] = n
		return groups
	}
	groups = append(groups, nil)
	copy(groups[i+1:], groups[i:])
	groups[i] = n
	return groups
}
