package normalize

import (
	"encoding/json"
	"unicode/utf8"

	"inventory-sync/core/utils"
	"inventory-sync/feature/inventory/models"

	"github.com/shopspring/decimal"
)

// MaxCardNumberLength is the longest discount card number a Card can hold.
const MaxCardNumberLength = 11

// CardBalance is the balance update extracted from a counterparty.
type CardBalance struct {
	Number  string
	Balance decimal.Decimal
}

// Counterparty extracts a loyalty card balance. Rows without a card number,
// with a zero balance, or with a card number longer than MaxCardNumberLength
// are skipped.
func Counterparty(raw json.RawMessage) (CardBalance, bool) {
	var row counterpartyRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return CardBalance{}, false
	}
	if row.DiscountCardNumber == "" || row.BonusPoints.IsZero() {
		return CardBalance{}, false
	}
	if utf8.RuneCountInString(row.DiscountCardNumber) > MaxCardNumberLength {
		return CardBalance{}, false
	}
	return CardBalance{Number: row.DiscountCardNumber, Balance: row.BonusPoints}, true
}

// Store requires both an id and a name.
func Store(raw json.RawMessage) (models.Store, bool) {
	var row namedRow
	if err := json.Unmarshal(raw, &row); err != nil || row.ID == "" || row.Name == "" {
		return models.Store{}, false
	}
	return models.Store{UID: row.ID, Name: row.Name}, true
}

// UnitOfMeasure requires both an id and a name.
func UnitOfMeasure(raw json.RawMessage) (models.UnitOfMeasure, bool) {
	var row namedRow
	if err := json.Unmarshal(raw, &row); err != nil || row.ID == "" || row.Name == "" {
		return models.UnitOfMeasure{}, false
	}
	return models.UnitOfMeasure{UID: row.ID, Name: row.Name, Description: row.Description}, true
}

// ProductGroup takes its parent from productFolder.meta.href; no href means a root group.
func ProductGroup(raw json.RawMessage) (models.ProductGroup, bool) {
	var row productFolderRow
	if err := json.Unmarshal(raw, &row); err != nil || row.ID == "" || row.Name == "" {
		return models.ProductGroup{}, false
	}

	group := models.ProductGroup{UID: row.ID, Name: row.Name}
	if parent := row.ProductFolder.uid(); parent != "" {
		group.ParentUID = &parent
	}
	return group, true
}

// Product requires a group reference; the unit of measure is optional and
// missing prices default to zero.
func Product(raw json.RawMessage) (models.Product, bool) {
	var row productRow
	if err := json.Unmarshal(raw, &row); err != nil || row.ID == "" || row.Name == "" {
		return models.Product{}, false
	}

	groupUID := row.ProductFolder.uid()
	if groupUID == "" {
		return models.Product{}, false
	}

	product := models.Product{
		UID:       row.ID,
		GroupUID:  groupUID,
		Name:      row.Name,
		BuyPrice:  decimal.Zero,
		SalePrice: decimal.Zero,
	}
	if row.BuyPrice != nil {
		product.BuyPrice = row.BuyPrice.Value
	}
	if len(row.SalePrices) > 0 {
		product.SalePrice = row.SalePrices[0].Value
	}
	if uom := row.Uom.uid(); uom != "" {
		product.UomUID = &uom
	}
	return product, true
}

// StockByStore emits one remain per store entry of a stock report row. The
// product uid comes from the row's own href. Rows without stores are skipped,
// as are store entries without a store reference.
func StockByStore(raw json.RawMessage) ([]models.ProductRemain, bool) {
	var row stockRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, false
	}

	productUID := utils.LastPathSegment(row.Meta.Href)
	if productUID == "" || len(row.StockByStore) == 0 {
		return nil, false
	}

	remains := make([]models.ProductRemain, 0, len(row.StockByStore))
	for _, entry := range row.StockByStore {
		storeUID := utils.LastPathSegment(entry.Meta.Href)
		if storeUID == "" {
			continue
		}
		remains = append(remains, models.ProductRemain{
			ProductUID: productUID,
			StoreUID:   storeUID,
			Count:      utils.NonNegativeCount(entry.Stock),
		})
	}
	if len(remains) == 0 {
		return nil, false
	}
	return remains, true
}
