package domain

import (
	"context"
	"time"
)

// Comment is a customer remark on a product
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}

// CommentRepository defines the contract for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByProduct(ctx context.Context, productID uint) ([]Comment, error)
}
