package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/catalog-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category

	if err := withProducts(r.db.WithContext(ctx)).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// GetByID wraps gorm.ErrRecordNotFound when no category has id.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*model.Category, error) {
	var category model.Category

	if err := withProducts(r.db.WithContext(ctx)).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}

	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int, categoryName string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", id).
		Update("category_name", categoryName)
	if res.Error != nil {
		return 0, fmt.Errorf("update category %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete category %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
