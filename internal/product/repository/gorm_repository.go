package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

// AutoMigrate creates the category and product tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Category{}, &domain.Product{})
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).Omit("ParentCategory").Create(category).Error
	return database.TranslateError(err, "Category", category.ID)
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).Omit("ParentCategory").Save(category).Error
	return database.TranslateError(err, "Category", category.ID)
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).Preload("ParentCategory").First(&category, "category_id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Category", id)
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Preload("ParentCategory").Order("category_id").Find(&categories).Error; err != nil {
		return nil, database.TranslateError(err, "Category", "all")
	}
	return categories, nil
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("category_id = ?", id).Delete(&domain.Category{})
	return database.RowsOrNotFound(result, "Category", id)
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := startSpan(ctx, "CreateProduct",
		attribute.String("product.title", product.ProductTitle),
		attribute.String("product.sku", product.SKU),
		attribute.Float64("product.price", product.PriceUnit),
	)
	err := r.db.WithContext(ctx).Omit("Category").Create(product).Error
	if err == nil {
		span.SetAttributes(attribute.Int("product.id", product.ID))
	}
	return endSpan(span, database.TranslateError(err, "Product", product.SKU))
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := startSpan(ctx, "UpdateProduct", attribute.Int("product.id", product.ID))
	err := r.db.WithContext(ctx).Omit("Category").Save(product).Error
	return endSpan(span, database.TranslateError(err, "Product", product.ID))
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	ctx, span := startSpan(ctx, "FindProductByID", attribute.Int("product.id", id))
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, "product_id = ?", id).Error
	if err = endSpan(span, database.TranslateError(err, "Product", id)); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := startSpan(ctx, "FindAllProducts")
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").Order("product_id").Find(&products).Error
	if err = endSpan(span, database.TranslateError(err, "Product", "all")); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int) error {
	ctx, span := startSpan(ctx, "DeleteProduct", attribute.Int("product.id", id))
	result := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&domain.Product{})
	return endSpan(span, database.RowsOrNotFound(result, "Product", id))
}

// DecrementStock lowers the quantity by n, stopping at zero
func (r *GormProductRepository) DecrementStock(ctx context.Context, id, n int) error {
	if n < 0 {
		return apperror.Validationf("stock decrement cannot be negative")
	}
	ctx, span := startSpan(ctx, "DecrementStock",
		attribute.Int("product.id", id),
		attribute.Int("stock.decrement", n),
	)
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("product_id = ?", id).
		Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", n))
	return endSpan(span, database.RowsOrNotFound(result, "Product", id))
}
