package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-sync/feature/inventory/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entity kinds as they appear in errors and logs.
const (
	KindStore   = "store"
	KindUOM     = "uom"
	KindGroup   = "product_group"
	KindProduct = "product"
	KindRemain  = "product_remain"
	KindCard    = "card"
)

// Store persists synchronized entities. Every write is an idempotent upsert
// keyed by the external uid: the latest sync wins.
type Store struct {
	db *gorm.DB
}

// New creates a store over an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates every synchronized table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate inventory tables: %w", err)
	}
	return nil
}

// UpsertStore inserts a store or renames an existing one.
func (s *Store) UpsertStore(ctx context.Context, row models.Store) (*models.Store, error) {
	return upsert(ctx, s.db, KindStore, row.UID, &row, []string{"uid"}, []string{"name", "updated_at"})
}

// UpsertUnitOfMeasure inserts a unit of measure or refreshes its name and description.
func (s *Store) UpsertUnitOfMeasure(ctx context.Context, row models.UnitOfMeasure) (*models.UnitOfMeasure, error) {
	return upsert(ctx, s.db, KindUOM, row.UID, &row, []string{"uid"}, []string{"name", "description", "updated_at"})
}

// UpsertProductGroup inserts a group or moves/renames an existing one.
func (s *Store) UpsertProductGroup(ctx context.Context, row models.ProductGroup) (*models.ProductGroup, error) {
	return upsert(ctx, s.db, KindGroup, row.UID, &row, []string{"uid"}, []string{"parent_uid", "name", "updated_at"})
}

// UpsertProduct inserts or updates a product. A product whose group is not
// stored is dropped with ErrUnresolvedReference; a unit of measure that is not
// stored is cleared instead.
func (s *Store) UpsertProduct(ctx context.Context, row models.Product) (*models.Product, error) {
	ok, err := s.exists(ctx, &models.ProductGroup{}, KindProduct, row.UID, row.GroupUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %q: group %q: %w", row.UID, row.GroupUID, ErrUnresolvedReference)
	}

	if row.UomUID != nil {
		ok, err := s.exists(ctx, &models.UnitOfMeasure{}, KindProduct, row.UID, *row.UomUID)
		if err != nil {
			return nil, err
		}
		if !ok {
			row.UomUID = nil
		}
	}

	return upsert(ctx, s.db, KindProduct, row.UID, &row, []string{"uid"},
		[]string{"group_uid", "uom_uid", "name", "buy_price", "sales_price", "updated_at"})
}

// UpsertRemain stores the stock of a product at a store. Both must already be stored.
func (s *Store) UpsertRemain(ctx context.Context, row models.ProductRemain) (*models.ProductRemain, error) {
	key := row.ProductUID + "/" + row.StoreUID
	if row.Count < 0 {
		row.Count = 0
	}

	ok, err := s.exists(ctx, &models.Product{}, KindRemain, key, row.ProductUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("remain %q: product: %w", key, ErrUnresolvedReference)
	}
	ok, err = s.exists(ctx, &models.Store{}, KindRemain, key, row.StoreUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("remain %q: store: %w", key, ErrUnresolvedReference)
	}

	return upsert(ctx, s.db, KindRemain, key, &row, []string{"product_uid", "store_uid"}, []string{"count", "updated_at"})
}

// SetCardBalance refreshes the balance of an existing card. Cards are never
// created here: an unknown number returns (nil, nil).
func (s *Store) SetCardBalance(ctx context.Context, number string, balance decimal.Decimal) (*models.Card, error) {
	res := s.db.WithContext(ctx).Model(&models.Card{}).
		Where("uid = ?", number).
		Updates(map[string]any{"balance": balance, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, &PersistenceError{Op: "update", Kind: KindCard, Key: number, Err: res.Error}
	}
	// RowsAffected is zero on MySQL when the balance is unchanged, so the
	// card's existence is read back instead.
	return s.CardByNumber(ctx, number)
}

// CardByNumber returns the card with the given number, or nil when there is none.
func (s *Store) CardByNumber(ctx context.Context, number string) (*models.Card, error) {
	var card models.Card
	err := s.db.WithContext(ctx).Where("uid = ?", number).Take(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read", Kind: KindCard, Key: number, Err: err}
	}
	return &card, nil
}

func (s *Store) exists(ctx context.Context, model any, kind, key, uid string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("uid = ?", uid).Count(&n).Error; err != nil {
		return false, &PersistenceError{Op: "lookup", Kind: kind, Key: key, Err: err}
	}
	return n > 0, nil
}

func upsert[T any](ctx context.Context, db *gorm.DB, kind, key string, row *T, conflict, update []string) (*T, error) {
	columns := make([]clause.Column, len(conflict))
	for i, name := range conflict {
		columns[i] = clause.Column{Name: name}
	}

	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: columns, DoUpdates: clause.AssignmentColumns(update)}).
		Create(row).Error
	if err != nil {
		return nil, &PersistenceError{Op: "upsert", Kind: kind, Key: key, Err: err}
	}
	return row, nil
}
