// Package category defines the request payloads of the category endpoints.
package category

import "github.com/deppfellow/catalog-api/internal/validation"

type ListCategoriesPayload struct{}

func (p *ListCategoriesPayload) Validate() error {
	return nil
}

// GetCategoryByIDPayload accepts any integer id. One matching no row is a 404.
type GetCategoryByIDPayload struct {
	ID int `param:"id" json:"-"`
}

func (p *GetCategoryByIDPayload) Validate() error {
	return validation.Struct(p)
}

type CreateCategoryPayload struct {
	CategoryName string `json:"category_name" validate:"required,notblank,max=255"`
}

func (p *CreateCategoryPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateCategoryPayload takes its id from the path. An "id" in the body is ignored.
type UpdateCategoryPayload struct {
	ID           int    `param:"id" json:"-"`
	CategoryName string `json:"category_name" validate:"required,notblank,max=255"`
}

func (p *UpdateCategoryPayload) Validate() error {
	return validation.Struct(p)
}

type DeleteCategoryPayload struct {
	ID int `param:"id" json:"-"`
}

func (p *DeleteCategoryPayload) Validate() error {
	return validation.Struct(p)
}
