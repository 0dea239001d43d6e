package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"inventory-sync/core/moysklad"
	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/normalize"

	"github.com/shopspring/decimal"
)

// Phase names in cycle order.
const (
	PhaseCounterparties = "counterparties"
	PhaseStores         = "stores"
	PhaseUOMs           = "uoms"
	PhaseGroups         = "groups"
	PhaseProducts       = "products"
	PhaseStock          = "stock"
)

// Phases lists every phase in the order a cycle runs them. Groups precede
// products and products precede stock so references resolve.
var Phases = []string{
	PhaseCounterparties,
	PhaseStores,
	PhaseUOMs,
	PhaseGroups,
	PhaseProducts,
	PhaseStock,
}

// Store is the write side of the relational store.
type Store interface {
	SetCardBalance(ctx context.Context, number string, balance decimal.Decimal) (*models.Card, error)
	UpsertStore(ctx context.Context, row models.Store) (*models.Store, error)
	UpsertUnitOfMeasure(ctx context.Context, row models.UnitOfMeasure) (*models.UnitOfMeasure, error)
	UpsertProductGroup(ctx context.Context, row models.ProductGroup) (*models.ProductGroup, error)
	UpsertProduct(ctx context.Context, row models.Product) (*models.Product, error)
	UpsertRemain(ctx context.Context, row models.ProductRemain) (*models.ProductRemain, error)
}

// errSkipped marks a row the normalizer or the store chose not to write.
var errSkipped = errors.New("skipped")

// rowFunc normalizes and writes one raw row, reporting each write outcome to record.
type rowFunc func(ctx context.Context, raw json.RawMessage, record func(key string, err error))

type phase struct {
	name       string
	collection string
	query      url.Values
	row        rowFunc
}

func buildPhases(st Store, counterpartyTag string) []phase {
	counterpartyQuery := url.Values{}
	if counterpartyTag != "" {
		counterpartyQuery.Set("filter", "tags="+counterpartyTag)
	}

	return []phase{
		{
			name:       PhaseCounterparties,
			collection: moysklad.CollectionCounterparty,
			query:      counterpartyQuery,
			row: one(normalize.Counterparty,
				func(c normalize.CardBalance) string { return c.Number },
				func(ctx context.Context, c normalize.CardBalance) error {
					card, err := st.SetCardBalance(ctx, c.Number, c.Balance)
					if err != nil {
						return err
					}
					if card == nil {
						return errSkipped
					}
					return nil
				}),
		},
		{
			name:       PhaseStores,
			collection: moysklad.CollectionStore,
			row:        one(normalize.Store, func(s models.Store) string { return s.UID }, discard(st.UpsertStore)),
		},
		{
			name:       PhaseUOMs,
			collection: moysklad.CollectionUOM,
			row:        one(normalize.UnitOfMeasure, func(u models.UnitOfMeasure) string { return u.UID }, discard(st.UpsertUnitOfMeasure)),
		},
		{
			name:       PhaseGroups,
			collection: moysklad.CollectionProductFolder,
			row:        one(normalize.ProductGroup, func(g models.ProductGroup) string { return g.UID }, discard(st.UpsertProductGroup)),
		},
		{
			name:       PhaseProducts,
			collection: moysklad.CollectionProduct,
			row:        one(normalize.Product, func(p models.Product) string { return p.UID }, discard(st.UpsertProduct)),
		},
		{
			name:       PhaseStock,
			collection: moysklad.CollectionStockByStore,
			query:      url.Values{"filter": {"stockMode=all"}, "groupBy": {"product"}},
			row: many(normalize.StockByStore,
				func(r models.ProductRemain) string { return r.ProductUID + "/" + r.StoreUID },
				discard(st.UpsertRemain)),
		},
	}
}

// selectPhases returns the phases named in only, in cycle order. An empty
// filter selects every phase.
func selectPhases(all []phase, only []string) ([]phase, error) {
	if len(only) == 0 {
		return all, nil
	}

	known := make(map[string]bool, len(all))
	for _, p := range all {
		known[p.name] = true
	}
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		if !known[name] {
			return nil, fmt.Errorf("unknown phase %q", name)
		}
		wanted[name] = true
	}

	var out []phase
	for _, p := range all {
		if wanted[p.name] {
			out = append(out, p)
		}
	}
	return out, nil
}

func one[T any](norm func(json.RawMessage) (T, bool), key func(T) string, write func(context.Context, T) error) rowFunc {
	return func(ctx context.Context, raw json.RawMessage, record func(string, error)) {
		v, ok := norm(raw)
		if !ok {
			record("", errSkipped)
			return
		}
		record(key(v), write(ctx, v))
	}
}

func many[T any](norm func(json.RawMessage) ([]T, bool), key func(T) string, write func(context.Context, T) error) rowFunc {
	return func(ctx context.Context, raw json.RawMessage, record func(string, error)) {
		rows, ok := norm(raw)
		if !ok {
			record("", errSkipped)
			return
		}
		for _, v := range rows {
			record(key(v), write(ctx, v))
		}
	}
}

func discard[T any](upsert func(context.Context, T) (*T, error)) func(context.Context, T) error {
	return func(ctx context.Context, v T) error {
		_, err := upsert(ctx, v)
		return err
	}
}
