package normalize

import (
	"inventory-sync/core/utils"

	"github.com/shopspring/decimal"
)

// ref is an embedded entity reference: {"meta": {"href": ".../entity/<kind>/<uid>"}}.
type ref struct {
	Meta struct {
		Href string `json:"href"`
	} `json:"meta"`
}

func (r *ref) uid() string {
	if r == nil {
		return ""
	}
	return utils.LastPathSegment(r.Meta.Href)
}

type counterpartyRow struct {
	DiscountCardNumber string          `json:"discountCardNumber"`
	BonusPoints        decimal.Decimal `json:"bonusPoints"`
}

type namedRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productFolderRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ProductFolder *ref   `json:"productFolder"`
}

type priceRow struct {
	Value decimal.Decimal `json:"value"`
}

type productRow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	BuyPrice      *priceRow  `json:"buyPrice"`
	SalePrices    []priceRow `json:"salePrices"`
	ProductFolder *ref       `json:"productFolder"`
	Uom           *ref       `json:"uom"`
}

type stockRow struct {
	Meta struct {
		Href string `json:"href"`
	} `json:"meta"`
	StockByStore []struct {
		Meta struct {
			Href string `json:"href"`
		} `json:"meta"`
		Stock float64 `json:"stock"`
	} `json:"stockByStore"`
}
