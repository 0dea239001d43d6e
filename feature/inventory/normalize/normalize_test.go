package normalize_test

import (
	"encoding/json"
	"testing"

	"inventory-sync/feature/inventory/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestCounterparty(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		ok      bool
		number  string
		balance string
	}{
		{"Valid", `{"discountCardNumber": "12345", "bonusPoints": 10}`, true, "12345", "10"},
		{"EmptyCard", `{"discountCardNumber": "", "bonusPoints": 10}`, false, "", ""},
		{"TooLongCard", `{"discountCardNumber": "123456789012", "bonusPoints": 10}`, false, "", ""},
		{"ElevenChars", `{"discountCardNumber": "12345678901", "bonusPoints": 1.5}`, true, "12345678901", "1.5"},
		{"ZeroBonus", `{"discountCardNumber": "12345", "bonusPoints": 0}`, false, "", ""},
		{"MissingBonus", `{"discountCardNumber": "12345"}`, false, "", ""},
		{"NegativeBonus", `{"discountCardNumber": "777", "bonusPoints": -3}`, true, "777", "-3"},
		{"Malformed", `{"discountCardNumber": 12345}`, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, ok := normalize.Counterparty(raw(tt.row))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.number, card.Number)
				assert.Equal(t, tt.balance, card.Balance.String())
			}
		})
	}
}

func TestStoreAndUnitOfMeasure(t *testing.T) {
	store, ok := normalize.Store(raw(`{"id": "s1", "name": "Main"}`))
	require.True(t, ok)
	assert.Equal(t, "s1", store.UID)
	assert.Equal(t, "Main", store.Name)

	_, ok = normalize.Store(raw(`{"id": "s1"}`))
	assert.False(t, ok)
	_, ok = normalize.Store(raw(`{"name": "Nameless"}`))
	assert.False(t, ok)

	uom, ok := normalize.UnitOfMeasure(raw(`{"id": "u1", "name": "pcs", "description": "pieces"}`))
	require.True(t, ok)
	assert.Equal(t, "pieces", uom.Description)

	_, ok = normalize.UnitOfMeasure(raw(`[]`))
	assert.False(t, ok)
}

func TestProductGroup(t *testing.T) {
	t.Run("Root", func(t *testing.T) {
		group, ok := normalize.ProductGroup(raw(`{"id": "g1", "name": "Tea"}`))
		require.True(t, ok)
		assert.Nil(t, group.ParentUID)
	})

	t.Run("Child", func(t *testing.T) {
		group, ok := normalize.ProductGroup(raw(`{
			"id": "g2", "name": "Green",
			"productFolder": {"meta": {"href": "https://api.example/entity/productfolder/g1"}}
		}`))
		require.True(t, ok)
		require.NotNil(t, group.ParentUID)
		assert.Equal(t, "g1", *group.ParentUID)
	})

	t.Run("EmptyHref", func(t *testing.T) {
		group, ok := normalize.ProductGroup(raw(`{"id": "g3", "name": "X", "productFolder": {"meta": {}}}`))
		require.True(t, ok)
		assert.Nil(t, group.ParentUID)
	})
}

func TestProduct(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		product, ok := normalize.Product(raw(`{
			"id": "p1", "name": "Sencha",
			"buyPrice": {"value": 1200},
			"salePrices": [{"value": 2500}, {"value": 9999}],
			"productFolder": {"meta": {"href": "https://api.example/entity/productfolder/g1"}},
			"uom": {"meta": {"href": "https://api.example/entity/uom/u1"}}
		}`))
		require.True(t, ok)
		assert.Equal(t, "g1", product.GroupUID)
		require.NotNil(t, product.UomUID)
		assert.Equal(t, "u1", *product.UomUID)
		assert.Equal(t, "1200", product.BuyPrice.String())
		assert.Equal(t, "2500", product.SalePrice.String())
	})

	t.Run("DefaultsPricesAndOptionalUom", func(t *testing.T) {
		product, ok := normalize.Product(raw(`{
			"id": "p2", "name": "Oolong",
			"productFolder": {"meta": {"href": "https://api.example/entity/productfolder/g1"}}
		}`))
		require.True(t, ok)
		assert.Nil(t, product.UomUID)
		assert.True(t, product.BuyPrice.IsZero())
		assert.True(t, product.SalePrice.IsZero())
	})

	t.Run("MissingGroupSkipped", func(t *testing.T) {
		_, ok := normalize.Product(raw(`{"id": "p3", "name": "Loose"}`))
		assert.False(t, ok)
	})

	t.Run("EmptySalePrices", func(t *testing.T) {
		product, ok := normalize.Product(raw(`{
			"id": "p4", "name": "Puer", "salePrices": [],
			"productFolder": {"meta": {"href": "https://api.example/entity/productfolder/g1"}}
		}`))
		require.True(t, ok)
		assert.True(t, product.SalePrice.IsZero())
	})
}

func TestStockByStore(t *testing.T) {
	t.Run("OneRemainPerStore", func(t *testing.T) {
		remains, ok := normalize.StockByStore(raw(`{
			"meta": {"href": "https://api.example/entity/product/p1?expand=supplier"},
			"stockByStore": [
				{"meta": {"href": "https://api.example/entity/store/s1"}, "stock": 3},
				{"meta": {"href": "https://api.example/entity/store/s2"}, "stock": -2},
				{"meta": {"href": "https://api.example/entity/store/s3"}, "stock": 4.7},
				{"meta": {}, "stock": 5}
			]
		}`))
		require.True(t, ok)
		require.Len(t, remains, 3)
		assert.Equal(t, "p1", remains[0].ProductUID)
		assert.Equal(t, "s1", remains[0].StoreUID)
		assert.Equal(t, int64(3), remains[0].Count)
		assert.Equal(t, int64(0), remains[1].Count)
		assert.Equal(t, int64(4), remains[2].Count)
	})

	t.Run("NoStoresSkipped", func(t *testing.T) {
		_, ok := normalize.StockByStore(raw(`{"meta": {"href": "https://api.example/entity/product/p1"}, "stockByStore": []}`))
		assert.False(t, ok)
	})

	t.Run("NoHrefSkipped", func(t *testing.T) {
		_, ok := normalize.StockByStore(raw(`{"stockByStore": [{"meta": {"href": "https://api.example/entity/store/s1"}, "stock": 1}]}`))
		assert.False(t, ok)
	})
}
