package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inventory-sync/core/database"
	"inventory-sync/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	s := New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s, db
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return New(db), mock
}

func ptr(s string) *string { return &s }

func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.UpsertStore(ctx, models.Store{UID: "S1", Name: "Main"})
	require.NoError(t, err)
	_, err = s.UpsertStore(ctx, models.Store{UID: "S2", Name: "Annex"})
	require.NoError(t, err)
	_, err = s.UpsertUnitOfMeasure(ctx, models.UnitOfMeasure{UID: "U1", Name: "pcs"})
	require.NoError(t, err)
	_, err = s.UpsertProductGroup(ctx, models.ProductGroup{UID: "A", Name: "A"})
	require.NoError(t, err)
	_, err = s.UpsertProductGroup(ctx, models.ProductGroup{UID: "B", ParentUID: ptr("A"), Name: "B"})
	require.NoError(t, err)
}

func TestUpsertStore_Idempotent(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()

	_, err := s.UpsertStore(ctx, models.Store{UID: "S1", Name: "Old"})
	require.NoError(t, err)
	_, err = s.UpsertStore(ctx, models.Store{UID: "S1", Name: "Main"})
	require.NoError(t, err)
	_, err = s.UpsertStore(ctx, models.Store{UID: "S1", Name: "Main"})
	require.NoError(t, err)

	var stores []models.Store
	require.NoError(t, db.Find(&stores).Error)
	require.Len(t, stores, 1)
	assert.Equal(t, "Main", stores[0].Name)
}

func TestUpsertProductGroup_MovesGroup(t *testing.T) {
	s, _ := setupStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	_, err := s.UpsertProductGroup(ctx, models.ProductGroup{UID: "B", Name: "B"})
	require.NoError(t, err)

	roots, err := s.GroupsByParent(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	children, err := s.GroupsByParent(ctx, ptr("A"), nil)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestUpsertProduct(t *testing.T) {
	s, db := setupStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	t.Run("Updates Existing Row", func(t *testing.T) {
		_, err := s.UpsertProduct(ctx, models.Product{UID: "P1", GroupUID: "A", UomUID: ptr("U1"), Name: "Old", SalePrice: decimal.RequireFromString("10")})
		require.NoError(t, err)
		_, err = s.UpsertProduct(ctx, models.Product{UID: "P1", GroupUID: "B", UomUID: ptr("U1"), Name: "Widget", SalePrice: decimal.RequireFromString("12.5")})
		require.NoError(t, err)

		var p models.Product
		require.NoError(t, db.Where("uid = ?", "P1").Take(&p).Error)
		assert.Equal(t, "Widget", p.Name)
		assert.Equal(t, "B", p.GroupUID)
		assert.Equal(t, "12.5", p.SalePrice.String())
	})

	t.Run("Missing Group Is Rejected", func(t *testing.T) {
		row, err := s.UpsertProduct(ctx, models.Product{UID: "P2", GroupUID: "nope", Name: "Orphan"})
		assert.ErrorIs(t, err, ErrUnresolvedReference)
		assert.Nil(t, row)

		var n int64
		require.NoError(t, db.Model(&models.Product{}).Where("uid = ?", "P2").Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("Missing Unit Is Cleared", func(t *testing.T) {
		row, err := s.UpsertProduct(ctx, models.Product{UID: "P3", GroupUID: "A", UomUID: ptr("gone"), Name: "Loose"})
		require.NoError(t, err)
		assert.Nil(t, row.UomUID)

		var p models.Product
		require.NoError(t, db.Where("uid = ?", "P3").Take(&p).Error)
		assert.Nil(t, p.UomUID)
	})
}

func TestUpsertRemain(t *testing.T) {
	s, db := setupStore(t)
	seedCatalog(t, s)
	ctx := context.Background()
	_, err := s.UpsertProduct(ctx, models.Product{UID: "P1", GroupUID: "A", Name: "Widget"})
	require.NoError(t, err)

	t.Run("Composite Key Upsert", func(t *testing.T) {
		_, err := s.UpsertRemain(ctx, models.ProductRemain{ProductUID: "P1", StoreUID: "S1", Count: 3})
		require.NoError(t, err)
		_, err = s.UpsertRemain(ctx, models.ProductRemain{ProductUID: "P1", StoreUID: "S1", Count: 7})
		require.NoError(t, err)

		var remains []models.ProductRemain
		require.NoError(t, db.Find(&remains).Error)
		require.Len(t, remains, 1)
		assert.Equal(t, int64(7), remains[0].Count)
	})

	t.Run("Negative Count Is Clamped", func(t *testing.T) {
		row, err := s.UpsertRemain(ctx, models.ProductRemain{ProductUID: "P1", StoreUID: "S2", Count: -4})
		require.NoError(t, err)
		assert.Zero(t, row.Count)
	})

	t.Run("Unknown Product Or Store", func(t *testing.T) {
		_, err := s.UpsertRemain(ctx, models.ProductRemain{ProductUID: "nope", StoreUID: "S1", Count: 1})
		assert.ErrorIs(t, err, ErrUnresolvedReference)
		_, err = s.UpsertRemain(ctx, models.ProductRemain{ProductUID: "P1", StoreUID: "nope", Count: 1})
		assert.ErrorIs(t, err, ErrUnresolvedReference)
	})
}

func TestSetCardBalance(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.Card{UID: "12345678901", FileID: "f1"}).Error)

	t.Run("Existing Card", func(t *testing.T) {
		card, err := s.SetCardBalance(ctx, "12345678901", decimal.RequireFromString("150.5"))
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.Equal(t, "150.5", card.Balance.String())
		assert.Equal(t, "f1", card.FileID)
	})

	t.Run("Unknown Card Is Never Created", func(t *testing.T) {
		card, err := s.SetCardBalance(ctx, "99999999999", decimal.RequireFromString("10"))
		require.NoError(t, err)
		assert.Nil(t, card)

		var n int64
		require.NoError(t, db.Model(&models.Card{}).Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})
}

func TestSetCardBalance_UnchangedBalanceStillFound(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `cards` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `cards` WHERE uid = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "balance", "file_id"}).
			AddRow(1, "12345678901", "150.50", "f1"))

	card, err := s.SetCardBalance(context.Background(), "12345678901", decimal.RequireFromString("150.5"))
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "12345678901", card.UID)
	assert.True(t, card.Balance.Equal(decimal.RequireFromString("150.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardByNumber_NotFound(t *testing.T) {
	s, _ := setupStore(t)
	card, err := s.CardByNumber(context.Background(), "00000000000")
	assert.NoError(t, err)
	assert.Nil(t, card)
}

func TestReads(t *testing.T) {
	s, _ := setupStore(t)
	seedCatalog(t, s)
	ctx := context.Background()
	_, err := s.UpsertProductGroup(ctx, models.ProductGroup{UID: "N", Name: "NoMark"})
	require.NoError(t, err)
	_, err = s.UpsertProduct(ctx, models.Product{UID: "P1", GroupUID: "B", Name: "Widget"})
	require.NoError(t, err)
	_, err = s.UpsertProduct(ctx, models.Product{UID: "P2", GroupUID: "B", Name: "Gadget"})
	require.NoError(t, err)
	for _, r := range []models.ProductRemain{
		{ProductUID: "P1", StoreUID: "S1", Count: 5},
		{ProductUID: "P1", StoreUID: "S2", Count: 2},
		{ProductUID: "P2", StoreUID: "S1", Count: 0},
	} {
		_, err := s.UpsertRemain(ctx, r)
		require.NoError(t, err)
	}

	t.Run("Groups By Parent With Exclusion", func(t *testing.T) {
		roots, err := s.GroupsByParent(ctx, nil, []string{"NoMark"})
		require.NoError(t, err)
		require.Len(t, roots, 1)
		assert.Equal(t, "A", roots[0].UID)
	})

	t.Run("Products Ordered By Name", func(t *testing.T) {
		products, err := s.ProductsByGroup(ctx, "B")
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Gadget", products[0].Name)
		assert.Equal(t, "Widget", products[1].Name)
	})

	t.Run("Positive Remains Only", func(t *testing.T) {
		stock, err := s.PositiveRemains(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, []models.StoreStock{
			{ProductUID: "P1", StoreName: "Annex", Count: 2},
			{ProductUID: "P1", StoreName: "Main", Count: 5},
		}, stock)

		stock, err = s.PositiveRemains(ctx, "P2")
		require.NoError(t, err)
		assert.Empty(t, stock)
	})

	t.Run("Bulk Reads", func(t *testing.T) {
		groups, err := s.AllGroups(ctx)
		require.NoError(t, err)
		assert.Len(t, groups, 3)

		products, err := s.AllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		stock, err := s.AllPositiveRemains(ctx)
		require.NoError(t, err)
		assert.Len(t, stock, 2)
	})
}

func TestUpsert_WriteFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `stores`")).
		WillReturnError(errors.New("connection reset"))

	row, err := s.UpsertStore(context.Background(), models.Store{UID: "S1", Name: "Main"})
	assert.Nil(t, row)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "upsert", perr.Op)
	assert.Equal(t, KindStore, perr.Kind)
	assert.Equal(t, "S1", perr.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProduct_LookupFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `product_groups`")).
		WillReturnError(errors.New("timeout"))

	_, err := s.UpsertProduct(context.Background(), models.Product{UID: "P1", GroupUID: "A"})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "lookup", perr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema(t *testing.T) {
	t.Run("Migrated", func(t *testing.T) {
		s, _ := setupStore(t)
		report, err := s.CheckSchema(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "ok", report.Tables["products"].Status)
	})

	t.Run("Missing Tables", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		defer database.Close(db)

		report, err := New(db).CheckSchema(context.Background())
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, "missing", report.Tables["cards"].Status)
	})
}
