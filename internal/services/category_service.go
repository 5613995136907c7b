package services

import (
	"context"
	"fmt"

	"bulletinboard/internal/models"
)

type CategoryFullStore interface {
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type CategoryService struct {
	Categories CategoryFullStore
	Names      *NameCache
}

func (s *CategoryService) CreateCategory(ctx context.Context, req models.CategoryRequest) (models.Category, error) {
	if req.Name == "" {
		return models.Category{}, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	taken, err := s.Categories.ExistsByName(ctx, req.Name)
	if err != nil {
		return models.Category{}, err
	}
	if taken {
		return models.Category{}, fmt.Errorf("%w: %q", models.ErrDuplicateCategoryName, req.Name)
	}
	return s.Categories.CreateCategory(ctx, models.Category{Name: req.Name, Description: req.Description})
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (models.Category, error) {
	return s.Categories.GetCategoryByID(ctx, id)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.ListCategories(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req models.CategoryRequest) (models.Category, error) {
	if req.Name == "" {
		return models.Category{}, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	current, err := s.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	if req.Name != current.Name {
		taken, err := s.Categories.ExistsByName(ctx, req.Name)
		if err != nil {
			return models.Category{}, err
		}
		if taken {
			return models.Category{}, fmt.Errorf("%w: %q", models.ErrDuplicateCategoryName, req.Name)
		}
	}
	current.Name = req.Name
	current.Description = req.Description
	updated, err := s.Categories.UpdateCategory(ctx, current)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.Names.Invalidate(ctx, "category_name", id); err != nil {
		return models.Category{}, err
	}
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.Categories.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.Names.Invalidate(ctx, "category_name", id)
}
