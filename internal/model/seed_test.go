package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Listing{}, &Order{}))
	return db
}

func TestSeedListingsFirstRun(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedListings(db))

	var listings []Listing
	require.NoError(t, db.Find(&listings).Error)
	require.Len(t, listings, 5)

	categories := make([]string, 0, len(listings))
	for _, l := range listings {
		categories = append(categories, l.Category)
	}
	assert.ElementsMatch(t,
		[]string{"Power Banks", "Speakers", "Laptops", "Chargers", "Headphones"},
		categories)
}

func TestSeedListingsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedListings(db))
	require.NoError(t, SeedListings(db))

	var count int64
	require.NoError(t, db.Model(&Listing{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestSeedListingsSkipsNonEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&Listing{Title: "Existing", Price: 10}).Error)

	require.NoError(t, SeedListings(db))

	var count int64
	require.NoError(t, db.Model(&Listing{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
