package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/catalog-api/internal/model"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func (r *ProductRepository) ExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	found := []int{}
	if len(ids) == 0 {
		return found, nil
	}

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("look up product ids: %w", err)
	}

	return found, nil
}
