package repository

import (
	"context"

	"github.com/deppfellow/catalog-api/internal/server"
	"gorm.io/gorm"
)

// Repositories is the gorm-backed Store.
type Repositories struct {
	Category *CategoryRepository
	Tag      *TagRepository
	Product  *ProductRepository

	db *gorm.DB
}

// NewRepositories builds the repositories on the server's ORM.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.ORM)
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Category: &CategoryRepository{db: db},
		Tag:      &TagRepository{db: db},
		Product:  &ProductRepository{db: db},
		db:       db,
	}
}

func (r *Repositories) Categories() CategoryStore { return r.Category }
func (r *Repositories) Tags() TagStore { return r.Tag }
func (r *Repositories) Products() ProductStore { return r.Product }

func (r *Repositories) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
