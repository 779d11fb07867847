package migration

import (
	"context"
	"fmt"
	"io/fs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
	productrepo "github.com/tair/ai-goat-store/internal/product/repository"
	userrepo "github.com/tair/ai-goat-store/internal/user/repository"
	"github.com/tair/ai-goat-store/pkg/logger"
)

var tracer = otel.Tracer("migration")

// Report counts the rows inserted by one Run
type Report struct {
	Categories int
	Products   int
	// InStock counts inserted products that can be ordered
	InStock  int
	Users    int
	Comments int
}

// Migrator creates the schema and loads fixtures into an empty database
type Migrator struct {
	db       *gorm.DB
	fixtures fs.FS
}

// New creates a migrator over the bundled fixtures
func New(db *gorm.DB) *Migrator {
	return NewWithFixtures(db, DefaultFixtures())
}

// NewWithFixtures creates a migrator reading fixtures from fsys
func NewWithFixtures(db *gorm.DB, fsys fs.FS) *Migrator {
	return &Migrator{db: db, fixtures: fsys}
}

// AutoMigrate creates or updates every table
func (m *Migrator) AutoMigrate() error {
	if err := productrepo.NewGormProductRepository(m.db).AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	if err := userrepo.NewGormUserRepository(m.db).AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// Run creates the schema and loads categories, products, users and sample
// comments. An entity type that already has rows is left alone and bad rows
// are logged and skipped.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	ctx, span := tracer.Start(ctx, "migration.Run")
	defer span.End()

	logger.Info(ctx).Msg("Starting data migration")

	if err := m.AutoMigrate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &Report{}
	steps := []struct {
		name string
		run  func(context.Context) (int, error)
		dst  *int
	}{
		{"categories", m.migrateCategories, &report.Categories},
		{"products", func(ctx context.Context) (int, error) { return m.migrateProducts(ctx, report) }, &report.Products},
		{"users", m.migrateUsers, &report.Users},
		{"comments", m.migrateComments, &report.Comments},
	}
	for _, step := range steps {
		n, err := step.run(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to migrate %s: %w", step.name, err)
		}
		*step.dst = n
	}

	span.SetAttributes(
		attribute.Int("migration.categories", report.Categories),
		attribute.Int("migration.products", report.Products),
		attribute.Int("migration.in_stock", report.InStock),
		attribute.Int("migration.users", report.Users),
		attribute.Int("migration.comments", report.Comments),
	)
	logger.Info(ctx).
		Int("categories", report.Categories).
		Int("products", report.Products).
		Int("in_stock", report.InStock).
		Int("users", report.Users).
		Int("comments", report.Comments).
		Msg("Data migration completed")
	return report, nil
}

type rowCounter func(ctx context.Context) (int64, error)

func hasRows(ctx context.Context, count rowCounter) (bool, error) {
	n, err := count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *Migrator) modelCounter(model any) rowCounter {
	return func(ctx context.Context) (int64, error) {
		var count int64
		err := m.db.WithContext(ctx).Model(model).Count(&count).Error
		return count, err
	}
}

func (m *Migrator) migrateCategories(ctx context.Context) (int, error) {
	exists, err := hasRows(ctx, m.modelCounter(&productdomain.Category{}))
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Info(ctx).Msg("Categories already exist, skipping")
		return 0, nil
	}

	records, err := readFixture[categoryRecord](m.fixtures, CategoriesFile)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, record := range records {
		category := record.toDomain()
		if err := m.db.WithContext(ctx).Create(&category).Error; err != nil {
			logger.Warn(ctx).Err(err).Uint("category_id", record.ID).Msg("Skipping category")
			continue
		}
		inserted++
	}
	return inserted, nil
}

func (m *Migrator) migrateProducts(ctx context.Context, report *Report) (int, error) {
	exists, err := hasRows(ctx, productrepo.NewGormProductRepository(m.db).Count)
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Info(ctx).Msg("Products already exist, skipping")
		return 0, nil
	}

	records, err := readFixture[productRecord](m.fixtures, ProductsFile)
	if err != nil {
		return 0, err
	}

	var categories []productdomain.Category
	if err := m.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return 0, fmt.Errorf("failed to load categories: %w", err)
	}
	known := make(map[uint]productdomain.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = c
	}

	inserted := 0
	for _, record := range records {
		product, err := record.toDomain(known)
		if err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", record.ID).Msg("Skipping product")
			continue
		}
		// link existing categories without rewriting them
		if err := m.db.WithContext(ctx).Omit("Categories.*").Create(&product).Error; err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", record.ID).Msg("Skipping product")
			continue
		}
		inserted++
		if product.InStock() {
			report.InStock++
		}
	}
	return inserted, nil
}

func (m *Migrator) migrateUsers(ctx context.Context) (int, error) {
	exists, err := hasRows(ctx, userrepo.NewGormUserRepository(m.db).Count)
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Info(ctx).Msg("Users already exist, skipping")
		return 0, nil
	}

	records, err := readFixture[userRecord](m.fixtures, UsersFile)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, record := range records {
		user := record.toDomain()
		if err := m.db.WithContext(ctx).Create(&user).Error; err != nil {
			logger.Warn(ctx).Err(err).Str("username", record.Username).Msg("Skipping user")
			continue
		}
		inserted++
	}
	return inserted, nil
}

func (m *Migrator) migrateComments(ctx context.Context) (int, error) {
	exists, err := hasRows(ctx, m.modelCounter(&productdomain.Comment{}))
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Info(ctx).Msg("Comments already exist, skipping")
		return 0, nil
	}

	products := productrepo.NewGormProductRepository(m.db)
	inserted := 0
	for _, sample := range SampleComments {
		found, err := products.Exists(ctx, sample.ProductID)
		if err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", sample.ProductID).Msg("Skipping sample comment")
			continue
		}
		if !found {
			continue
		}
		comment := productdomain.Comment{Content: sample.Content, ProductID: sample.ProductID}
		if err := m.db.WithContext(ctx).Create(&comment).Error; err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", sample.ProductID).Msg("Skipping sample comment")
			continue
		}
		inserted++
	}
	return inserted, nil
}
