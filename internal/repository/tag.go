package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/catalog-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag

	if err := withProducts(r.db.WithContext(ctx)).Order("id").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// GetByID wraps gorm.ErrRecordNotFound when no tag has id.
func (r *TagRepository) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	var tag model.Tag

	if err := withProducts(r.db.WithContext(ctx)).First(&tag, id).Error; err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}

	return &tag, nil
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Update(ctx context.Context, id int, tagName string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ?", id).
		Update("tag_name", tagName)
	if res.Error != nil {
		return 0, fmt.Errorf("update tag %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the tag. Its product_tags rows go with it (ON DELETE CASCADE).
func (r *TagRepository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Tag{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete tag %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TagRepository) AddProducts(ctx context.Context, rows []model.ProductTag) error {
	if len(rows) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("add products to tag: %w", err)
	}
	return nil
}
