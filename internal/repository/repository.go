// Package repository handles all interactions with the database.
//
// It wraps the ORM behind small per-entity stores so the service layer
// never builds queries itself, and can be handed an in-memory fake in tests.
package repository

import (
	"context"

	"github.com/deppfellow/catalog-api/internal/model"
	"gorm.io/gorm"
)

// Store is everything the catalog services need from persistence.
type Store interface {
	Categories() CategoryStore
	Tags() TagStore
	Products() ProductStore

	// Transaction runs fn against a Store bound to one database transaction.
	// It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, id int, categoryName string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type TagStore interface {
	List(ctx context.Context) ([]model.Tag, error)
	GetByID(ctx context.Context, id int) (*model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, id int, tagName string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)

	// AddProducts inserts all join rows in a single statement.
	AddProducts(ctx context.Context, rows []model.ProductTag) error
}

type ProductStore interface {
	// ExistingIDs returns which of ids exist, in no particular order.
	ExistingIDs(ctx context.Context, ids []int) ([]int, error)
}

// withProducts preloads the product projection shared by every read.
func withProducts(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Select(model.ProductColumns).Order("id")
	})
}
