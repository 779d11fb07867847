package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

func init() {
	// prices are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item imported from the shop fixtures
type Product struct {
	ID                uint                `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name              string              `json:"name" gorm:"not null"`
	Slug              string              `json:"slug" gorm:"index"`
	Permalink         string              `json:"permalink"`
	DateCreated       time.Time           `json:"date_created"`
	DateModified      time.Time           `json:"date_modified"`
	Type              string              `json:"type" gorm:"default:simple"`
	Status            string              `json:"status" gorm:"default:publish"`
	Featured          bool                `json:"featured"`
	CatalogVisibility bool                `json:"catalog_visibility" gorm:"default:true"`
	Description       string              `json:"description" gorm:"type:text"`
	ShortDescription  string              `json:"short_description" gorm:"type:text"`
	SKU               string              `json:"sku"`
	Price             decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	RegularPrice      decimal.Decimal     `json:"regular_price" gorm:"type:decimal(10,2);not null;default:0"`
	SalePrice         decimal.NullDecimal `json:"sale_price" gorm:"type:decimal(10,2)"`
	OnSale            bool                `json:"on_sale"`
	Purchasable       bool                `json:"purchasable" gorm:"default:true"`
	TotalSales        int                 `json:"total_sales"`
	ManageStock       bool                `json:"manage_stock"`
	StockQuantity     *int                `json:"stock_quantity"`
	StockStatus       string              `json:"stock_status" gorm:"default:instock"`
	Backorders        string              `json:"backorders" gorm:"default:no"`
	Weight            string              `json:"weight"`
	Dimensions        map[string]string   `json:"dimensions" gorm:"serializer:json;type:text"`
	ReviewsAllowed    bool                `json:"reviews_allowed" gorm:"default:true"`
	AverageRating     float64             `json:"average_rating"`
	RatingCount       int                 `json:"rating_count"`
	ParentID          uint                `json:"parent_id"`
	Tags              []map[string]any    `json:"tags" gorm:"serializer:json;type:text"`
	Images            []map[string]any    `json:"images" gorm:"serializer:json;type:text"`
	Attributes        []map[string]any    `json:"attributes" gorm:"serializer:json;type:text"`
	DefaultAttributes []map[string]any    `json:"default_attributes" gorm:"serializer:json;type:text"`
	Variations        []uint              `json:"variations" gorm:"serializer:json;type:text"`
	GroupedProducts   []uint              `json:"grouped_products" gorm:"serializer:json;type:text"`
	MetaData          []map[string]any    `json:"meta_data" gorm:"serializer:json;type:text"`
	Categories        []Category          `json:"categories" gorm:"many2many:product_categories;"`
	Comments          []Comment           `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the product can be ordered right now
func (p *Product) InStock() bool {
	if p.ManageStock && p.StockQuantity != nil {
		return *p.StockQuantity > 0
	}
	return p.StockStatus == "instock"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
