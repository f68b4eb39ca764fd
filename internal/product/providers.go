package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/query"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewSaveCategoryHandler,
	command.NewDeleteCategoryHandler,
	command.NewSaveProductHandler,
	command.NewDeleteProductHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetCategoryHandler,
	query.NewListCategoriesHandler,
	query.NewGetProductHandler,
	query.NewListProductsHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)
