package domain

import "context"

// Category groups products. Parent is informational and not enforced.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"index"`
	Parent      uint   `json:"parent"`
	Description string `json:"description" gorm:"type:text"`
	Display     string `json:"display" gorm:"default:default"`
	ImageID     *uint  `json:"image_id"`
	ImageSrc    string `json:"image_src"`
	ImageName   string `json:"image_name"`
	ImageAlt    string `json:"image_alt"`
	MenuOrder   int    `json:"menu_order"`
	Count       int    `json:"count"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
}
