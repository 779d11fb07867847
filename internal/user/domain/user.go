package domain

import (
	"context"
	"errors"

	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
)

var ErrUserNotFound = errors.New("user not found")

// User is a shopper. Cart and recommendation ids are stored as given and
// never checked against the catalog.
type User struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Username        string `json:"username" gorm:"uniqueIndex;not null"`
	Cart            []uint `json:"cart" gorm:"serializer:json;type:text"`
	Recommendations []uint `json:"recommendations" gorm:"serializer:json;type:text"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	UpdateRecommendations(ctx context.Context, id uint, productIDs []uint) error
	Count(ctx context.Context) (int64, error)
}

// ProductCatalog resolves product ids for carts and recommendations
type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []uint) ([]productdomain.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
}
