package store

import (
	"context"

	"inventory-sync/feature/inventory/models"

	"gorm.io/gorm"
)

// GroupsByParent lists the direct children of a group, or the roots when
// parentUID is nil, skipping groups whose name is excluded.
func (s *Store) GroupsByParent(ctx context.Context, parentUID *string, exclude []string) ([]models.ProductGroup, error) {
	q := s.db.WithContext(ctx).Model(&models.ProductGroup{})
	if parentUID == nil {
		q = q.Where("parent_uid IS NULL")
	} else {
		q = q.Where("parent_uid = ?", *parentUID)
	}
	if len(exclude) > 0 {
		q = q.Where("name NOT IN ?", exclude)
	}

	var groups []models.ProductGroup
	if err := q.Order("name, uid").Find(&groups).Error; err != nil {
		key := "<root>"
		if parentUID != nil {
			key = *parentUID
		}
		return nil, &PersistenceError{Op: "read", Kind: KindGroup, Key: key, Err: err}
	}
	return groups, nil
}

// ProductsByGroup lists the products owned directly by a group.
func (s *Store) ProductsByGroup(ctx context.Context, groupUID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Where("group_uid = ?", groupUID).Order("name, uid").Find(&products).Error
	if err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindProduct, Key: groupUID, Err: err}
	}
	return products, nil
}

// PositiveRemains lists the stores holding a positive count of a product.
func (s *Store) PositiveRemains(ctx context.Context, productUID string) ([]models.StoreStock, error) {
	var stock []models.StoreStock
	err := s.remainsQuery(ctx).Where("pr.product_uid = ?", productUID).Scan(&stock).Error
	if err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindRemain, Key: productUID, Err: err}
	}
	return stock, nil
}

// AllGroups lists every stored group.
func (s *Store) AllGroups(ctx context.Context) ([]models.ProductGroup, error) {
	var groups []models.ProductGroup
	if err := s.db.WithContext(ctx).Order("name, uid").Find(&groups).Error; err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindGroup, Key: "*", Err: err}
	}
	return groups, nil
}

// AllProducts lists every stored product.
func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name, uid").Find(&products).Error; err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindProduct, Key: "*", Err: err}
	}
	return products, nil
}

// AllPositiveRemains lists every positive remain joined with its store name.
func (s *Store) AllPositiveRemains(ctx context.Context) ([]models.StoreStock, error) {
	var stock []models.StoreStock
	if err := s.remainsQuery(ctx).Scan(&stock).Error; err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindRemain, Key: "*", Err: err}
	}
	return stock, nil
}

func (s *Store) remainsQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("product_remains AS pr").
		Select("pr.product_uid AS product_uid, st.name AS store_name, pr.count AS count").
		Joins("JOIN stores st ON st.uid = pr.store_uid").
		Where("pr.count > 0").
		Order("st.name, st.uid")
}
