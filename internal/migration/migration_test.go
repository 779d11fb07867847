package migration

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
	userdomain "github.com/tair/ai-goat-store/internal/user/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

type counts struct {
	categories, products, users, comments int64
}

func countRows(t *testing.T, db *gorm.DB) counts {
	t.Helper()
	var c counts
	require.NoError(t, db.Model(&productdomain.Category{}).Count(&c.categories).Error)
	require.NoError(t, db.Model(&productdomain.Product{}).Count(&c.products).Error)
	require.NoError(t, db.Model(&userdomain.User{}).Count(&c.users).Error)
	require.NoError(t, db.Model(&productdomain.Comment{}).Count(&c.comments).Error)
	return c
}

func TestRunLoadsBundledFixtures(t *testing.T) {
	db := setupTestDB(t)

	report, err := New(db).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, report.Categories)
	assert.Equal(t, 50, report.Products)
	assert.Equal(t, 50, report.InStock)
	assert.Equal(t, 1, report.Users)
	assert.Equal(t, len(SampleComments), report.Comments)

	var orca productdomain.Product
	require.NoError(t, db.Preload("Categories").First(&orca, 25).Error)
	assert.Equal(t, "Orca Doll", orca.Name)
	assert.NotEmpty(t, orca.Categories)

	var user userdomain.User
	require.NoError(t, db.Where("username = ?", "babyshark").First(&user).Error)
	assert.NotEmpty(t, user.Cart)
	assert.NotNil(t, user.Recommendations)
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	migrator := New(db)

	_, err := migrator.Run(context.Background())
	require.NoError(t, err)
	first := countRows(t, db)

	report, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{}, *report)
	assert.Equal(t, first, countRows(t, db))
}

func TestRunSkipsBadRows(t *testing.T) {
	db := setupTestDB(t)
	fixtures := fstest.MapFS{
		CategoriesFile: {Data: []byte(`[
			{"id": 1, "name": "Plush", "slug": "plush"},
			{"id": 1, "name": "Plush again", "slug": "plush"}
		]`)},
		ProductsFile: {Data: []byte(`[
			{"id": 1, "name": "Bear", "price": "9.99", "regular_price": "9.99",
			 "date_created": "2024-01-01T00:00:00Z", "date_modified": "2024-01-01T00:00:00Z",
			 "manage_stock": true, "stock_quantity": 0, "stock_status": "instock",
			 "categories": [{"id": 1}, {"id": 99}]},
			{"id": 2, "name": "Broken", "price": "nope",
			 "date_created": "2024-01-01T00:00:00Z", "date_modified": "2024-01-01T00:00:00Z"},
			{"id": 3, "name": "Undated", "price": "1.00"}
		]`)},
		UsersFile: {Data: []byte(`[
			{"id": 1, "username": "babyshark", "cart": [1, 404]},
			{"id": 2, "username": "babyshark"}
		]`)},
	}

	report, err := NewWithFixtures(db, fixtures).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Categories)
	assert.Equal(t, 1, report.Products)
	assert.Zero(t, report.InStock, "managed stock at zero is not orderable")
	assert.Equal(t, 1, report.Users)
	assert.Equal(t, 1, report.Comments, "only product 1 exists for the canned comments")

	var bear productdomain.Product
	require.NoError(t, db.Preload("Categories").First(&bear, 1).Error)
	require.Len(t, bear.Categories, 1)
	assert.Equal(t, uint(1), bear.Categories[0].ID)

	var category productdomain.Category
	require.NoError(t, db.First(&category, 1).Error)
	assert.Equal(t, "Plush", category.Name)
}

func TestRunFailsOnMissingFixture(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewWithFixtures(db, fstest.MapFS{}).Run(context.Background())
	assert.Error(t, err)
}

func TestCommentsNotReseeded(t *testing.T) {
	db := setupTestDB(t)
	migrator := New(db)
	require.NoError(t, migrator.AutoMigrate())

	require.NoError(t, db.Create(&productdomain.Product{ID: 1, Name: "Bear"}).Error)
	require.NoError(t, db.Create(&productdomain.Comment{ProductID: 1, Content: "already here"}).Error)

	report, err := migrator.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Products, "products existed")
	assert.Zero(t, report.Comments)

	var total int64
	require.NoError(t, db.Model(&productdomain.Comment{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}
