package migration

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/shopspring/decimal"

	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
	userdomain "github.com/tair/ai-goat-store/internal/user/domain"
)

//go:embed fixtures/*.json
var embedded embed.FS

// Fixture file names inside the fixtures filesystem
const (
	CategoriesFile = "categories.json"
	ProductsFile   = "products.json"
	UsersFile      = "user_data.json"
)

// DefaultFixtures returns the fixtures bundled with the binary
func DefaultFixtures() fs.FS {
	sub, err := fs.Sub(embedded, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

// SampleComment is a canned review created on first bootstrap
type SampleComment struct {
	Content   string
	ProductID uint
}

// SampleComments are only inserted while the comments table is empty
var SampleComments = []SampleComment{
	{Content: "Great toy for kids!", ProductID: 1},
	{Content: "Very educational and fun", ProductID: 2},
	{Content: "My child loves this!", ProductID: 3},
	{Content: "Good quality product", ProductID: 5},
}

type imageRecord struct {
	ID   *uint  `json:"id"`
	Src  string `json:"src"`
	Name string `json:"name"`
	Alt  string `json:"alt"`
}

type categoryRecord struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Parent      uint         `json:"parent"`
	Description string       `json:"description"`
	Display     string       `json:"display"`
	Image       *imageRecord `json:"image"`
	MenuOrder   int          `json:"menu_order"`
	Count       int          `json:"count"`
}

func (r categoryRecord) toDomain() productdomain.Category {
	category := productdomain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Parent:      r.Parent,
		Description: r.Description,
		Display:     r.Display,
		MenuOrder:   r.MenuOrder,
		Count:       r.Count,
	}
	if category.Display == "" {
		category.Display = "default"
	}
	if r.Image != nil {
		category.ImageID = r.Image.ID
		category.ImageSrc = r.Image.Src
		category.ImageName = r.Image.Name
		category.ImageAlt = r.Image.Alt
	}
	return category
}

type categoryRef struct {
	ID uint `json:"id"`
}

// productRecord mirrors the shop export; money and ratings arrive as strings
type productRecord struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	Permalink         string            `json:"permalink"`
	DateCreated       string            `json:"date_created"`
	DateModified      string            `json:"date_modified"`
	Type              string            `json:"type"`
	Status            string            `json:"status"`
	Featured          bool              `json:"featured"`
	CatalogVisibility string            `json:"catalog_visibility"`
	Description       string            `json:"description"`
	ShortDescription  string            `json:"short_description"`
	SKU               string            `json:"sku"`
	Price             string            `json:"price"`
	RegularPrice      string            `json:"regular_price"`
	SalePrice         string            `json:"sale_price"`
	OnSale            bool              `json:"on_sale"`
	Purchasable       bool              `json:"purchasable"`
	TotalSales        int               `json:"total_sales"`
	ManageStock       bool              `json:"manage_stock"`
	StockQuantity     *int              `json:"stock_quantity"`
	StockStatus       string            `json:"stock_status"`
	Backorders        string            `json:"backorders"`
	Weight            string            `json:"weight"`
	Dimensions        map[string]string `json:"dimensions"`
	ReviewsAllowed    bool              `json:"reviews_allowed"`
	AverageRating     string            `json:"average_rating"`
	RatingCount       int               `json:"rating_count"`
	ParentID          uint              `json:"parent_id"`
	Categories        []categoryRef     `json:"categories"`
	Tags              []map[string]any  `json:"tags"`
	Images            []map[string]any  `json:"images"`
	Attributes        []map[string]any  `json:"attributes"`
	DefaultAttributes []map[string]any  `json:"default_attributes"`
	Variations        []uint            `json:"variations"`
	GroupedProducts   []uint            `json:"grouped_products"`
	MetaData          []map[string]any  `json:"meta_data"`
}

// toDomain converts the record; only categories present in known are linked
func (r productRecord) toDomain(known map[uint]productdomain.Category) (productdomain.Product, error) {
	created, err := time.Parse(time.RFC3339, r.DateCreated)
	if err != nil {
		return productdomain.Product{}, fmt.Errorf("invalid date_created: %w", err)
	}
	modified, err := time.Parse(time.RFC3339, r.DateModified)
	if err != nil {
		return productdomain.Product{}, fmt.Errorf("invalid date_modified: %w", err)
	}
	price, err := parseAmount(r.Price)
	if err != nil {
		return productdomain.Product{}, fmt.Errorf("invalid price: %w", err)
	}
	regular, err := parseAmount(r.RegularPrice)
	if err != nil {
		return productdomain.Product{}, fmt.Errorf("invalid regular_price: %w", err)
	}
	var sale decimal.NullDecimal
	if r.SalePrice != "" {
		if sale.Decimal, err = decimal.NewFromString(r.SalePrice); err != nil {
			return productdomain.Product{}, fmt.Errorf("invalid sale_price: %w", err)
		}
		sale.Valid = true
	}
	rating, err := parseAmount(r.AverageRating)
	if err != nil {
		return productdomain.Product{}, fmt.Errorf("invalid average_rating: %w", err)
	}

	product := productdomain.Product{
		ID:                r.ID,
		Name:              r.Name,
		Slug:              r.Slug,
		Permalink:         r.Permalink,
		DateCreated:       created,
		DateModified:      modified,
		Type:              r.Type,
		Status:            r.Status,
		Featured:          r.Featured,
		CatalogVisibility: r.CatalogVisibility != "hidden",
		Description:       r.Description,
		ShortDescription:  r.ShortDescription,
		SKU:               r.SKU,
		Price:             price,
		RegularPrice:      regular,
		SalePrice:         sale,
		OnSale:            r.OnSale,
		Purchasable:       r.Purchasable,
		TotalSales:        r.TotalSales,
		ManageStock:       r.ManageStock,
		StockQuantity:     r.StockQuantity,
		StockStatus:       r.StockStatus,
		Backorders:        r.Backorders,
		Weight:            r.Weight,
		Dimensions:        r.Dimensions,
		ReviewsAllowed:    r.ReviewsAllowed,
		AverageRating:     rating.InexactFloat64(),
		RatingCount:       r.RatingCount,
		ParentID:          r.ParentID,
		Tags:              r.Tags,
		Images:            r.Images,
		Attributes:        r.Attributes,
		DefaultAttributes: r.DefaultAttributes,
		Variations:        r.Variations,
		GroupedProducts:   r.GroupedProducts,
		MetaData:          r.MetaData,
	}
	for _, ref := range r.Categories {
		if category, ok := known[ref.ID]; ok {
			product.Categories = append(product.Categories, category)
		}
	}
	return product, nil
}

type userRecord struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Cart            []uint `json:"cart"`
	Recommendations []uint `json:"recommendations"`
}

func (r userRecord) toDomain() userdomain.User {
	user := userdomain.User{
		ID:              r.ID,
		Username:        r.Username,
		Cart:            r.Cart,
		Recommendations: r.Recommendations,
	}
	if user.Cart == nil {
		user.Cart = []uint{}
	}
	if user.Recommendations == nil {
		user.Recommendations = []uint{}
	}
	return user
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func readFixture[T any](fixtures fs.FS, name string) ([]T, error) {
	data, err := fs.ReadFile(fixtures, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return records, nil
}
