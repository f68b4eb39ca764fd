package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// Category groups products; a category may hang below a parent category
type Category struct {
	ID               int       `gorm:"column:category_id;primaryKey;autoIncrement"`
	CategoryTitle    string    `gorm:"column:category_title;size:255;not null"`
	ImageURL         string    `gorm:"column:image_url;size:255"`
	ParentCategoryID *int      `gorm:"column:parent_category_id;index"`
	ParentCategory   *Category `gorm:"foreignKey:ParentCategoryID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Product represents the product entity
type Product struct {
	ID           int       `gorm:"column:product_id;primaryKey;autoIncrement"`
	ProductTitle string    `gorm:"column:product_title;size:255;not null"`
	ImageURL     string    `gorm:"column:image_url;size:255"`
	SKU          string    `gorm:"column:sku;uniqueIndex;size:255"`
	PriceUnit    float64   `gorm:"column:price_unit;not null"`
	Quantity     int       `gorm:"column:quantity;not null;default:0"`
	CategoryRef  *int      `gorm:"column:category_id;index"`
	Category     *Category `gorm:"foreignKey:CategoryRef"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Product) TableName() string {
	return "products"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id int) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id int) error
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id int) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Delete(ctx context.Context, id int) error
	DecrementStock(ctx context.Context, id, quantity int) error
}

func (c Category) ToDTO() dto.Category {
	out := dto.Category{
		CategoryID:    c.ID,
		CategoryTitle: c.CategoryTitle,
		ImageURL:      c.ImageURL,
	}
	if c.ParentCategoryID != nil {
		out.ParentCategoryID = *c.ParentCategoryID
	}
	if c.ParentCategory != nil {
		parent := dto.Category{
			CategoryID:    c.ParentCategory.ID,
			CategoryTitle: c.ParentCategory.CategoryTitle,
			ImageURL:      c.ParentCategory.ImageURL,
		}
		out.ParentCategory = &parent
	}
	return out
}

func (p Product) ToDTO() dto.Product {
	out := dto.Product{
		ProductID:    p.ID,
		ProductTitle: p.ProductTitle,
		ImageURL:     p.ImageURL,
		SKU:          p.SKU,
		PriceUnit:    p.PriceUnit,
		Quantity:     p.Quantity,
	}
	if p.CategoryRef != nil {
		out.CategoryID = *p.CategoryRef
	}
	if p.Category != nil {
		c := p.Category.ToDTO()
		out.Category = &c
	}
	return out
}

// OptionalID turns a zero id into a NULL foreign key
func OptionalID(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}
