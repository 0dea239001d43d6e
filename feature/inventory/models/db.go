package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is a warehouse or shop holding stock.
type Store struct {
	UID       string    `gorm:"column:uid;primaryKey;size:64"`
	Name      string    `gorm:"column:name;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Store) TableName() string {
	return "stores"
}

// UnitOfMeasure is a measurement unit products may reference.
type UnitOfMeasure struct {
	UID         string    `gorm:"column:uid;primaryKey;size:64"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (UnitOfMeasure) TableName() string {
	return "uoms"
}

// ProductGroup is a node of the category forest. A nil ParentUID marks a root.
// The parent is a soft reference: groups of one page arrive in arbitrary order.
type ProductGroup struct {
	UID       string    `gorm:"column:uid;primaryKey;size:64"`
	ParentUID *string   `gorm:"column:parent_uid;size:64;index"`
	Name      string    `gorm:"column:name;not null;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductGroup) TableName() string {
	return "product_groups"
}

// Product belongs to exactly one group and optionally to a unit of measure.
type Product struct {
	UID       string          `gorm:"column:uid;primaryKey;size:64"`
	GroupUID  string          `gorm:"column:group_uid;size:64;not null;index"`
	UomUID    *string         `gorm:"column:uom_uid;size:64"`
	Name      string          `gorm:"column:name;not null"`
	BuyPrice  decimal.Decimal `gorm:"column:buy_price;type:decimal(14,2);not null;default:0"`
	SalePrice decimal.Decimal `gorm:"column:sales_price;type:decimal(14,2);not null;default:0"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`

	Group *ProductGroup  `gorm:"foreignKey:GroupUID;references:UID;constraint:OnDelete:CASCADE"`
	Uom   *UnitOfMeasure `gorm:"foreignKey:UomUID;references:UID;constraint:OnDelete:SET NULL"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// ProductRemain is the stock count of one product at one store.
type ProductRemain struct {
	ProductUID string    `gorm:"column:product_uid;primaryKey;size:64"`
	StoreUID   string    `gorm:"column:store_uid;primaryKey;size:64"`
	Count      int64     `gorm:"column:count;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`

	Product *Product `gorm:"foreignKey:ProductUID;references:UID;constraint:OnDelete:CASCADE"`
	Store   *Store   `gorm:"foreignKey:StoreUID;references:UID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (ProductRemain) TableName() string {
	return "product_remains"
}

// Card is a loyalty card. Cards are issued by the serving layer; the sync only
// refreshes the balance of cards that already exist.
type Card struct {
	ID        uint            `gorm:"column:id;primaryKey"`
	UID       string          `gorm:"column:uid;size:11;uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null;default:0"`
	FileID    string          `gorm:"column:file_id"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Card) TableName() string {
	return "cards"
}

// All lists every synchronized table in foreign-key dependency order.
func All() []any {
	return []any{
		&Store{},
		&UnitOfMeasure{},
		&ProductGroup{},
		&Product{},
		&ProductRemain{},
		&Card{},
	}
}

// StoreStock is a positive stock count of one product at a named store.
type StoreStock struct {
	ProductUID string `gorm:"column:product_uid"`
	StoreName  string `gorm:"column:store_name"`
	Count      int64  `gorm:"column:count"`
}
