package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// SaveCategoryCommand creates (ID 0) or updates a category
type SaveCategoryCommand struct {
	ID       int
	Category dto.Category
}

// SaveCategoryHandler handles category create and update commands
type SaveCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewSaveCategoryHandler(repo domain.CategoryRepository) *SaveCategoryHandler {
	return &SaveCategoryHandler{repo: repo}
}

func (h *SaveCategoryHandler) Handle(ctx context.Context, cmd SaveCategoryCommand) (*domain.Category, error) {
	parentID := cmd.Category.RefParentID()

	var parent *domain.Category
	if parentID > 0 {
		if parentID == cmd.ID {
			return nil, apperror.Validationf("category %d cannot be its own parent", parentID)
		}
		p, err := h.repo.FindByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		parent = p
	}

	category := &domain.Category{}
	if cmd.ID != 0 {
		existing, err := h.repo.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		category = existing
	}
	category.CategoryTitle = cmd.Category.CategoryTitle
	category.ImageURL = cmd.Category.ImageURL
	category.ParentCategoryID = domain.OptionalID(parentID)
	category.ParentCategory = nil

	save := h.repo.Create
	if cmd.ID != 0 {
		save = h.repo.Update
	}
	if err := save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	category.ParentCategory = parent
	return category, nil
}

type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

func (h *DeleteCategoryHandler) Handle(ctx context.Context, id int) error {
	return h.repo.Delete(ctx, id)
}
