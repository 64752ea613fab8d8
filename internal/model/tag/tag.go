// Package tag defines the request payloads of the tag endpoints.
package tag

import "github.com/deppfellow/catalog-api/internal/validation"

type ListTagsPayload struct{}

func (p *ListTagsPayload) Validate() error {
	return nil
}

type GetTagByIDPayload struct {
	ID int `param:"id" json:"-"`
}

func (p *GetTagByIDPayload) Validate() error {
	return validation.Struct(p)
}

// CreateTagPayload optionally links the new tag to existing products.
// Every id must exist, otherwise nothing is created.
type CreateTagPayload struct {
	TagName    string `json:"tag_name" validate:"required,notblank,max=255"`
	ProductIDs []int  `json:"productIds" validate:"omitempty,unique"`
}

func (p *CreateTagPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateTagPayload struct {
	ID      int    `param:"id" json:"-"`
	TagName string `json:"tag_name" validate:"required,notblank,max=255"`
}

func (p *UpdateTagPayload) Validate() error {
	return validation.Struct(p)
}

type DeleteTagPayload struct {
	ID int `param:"id" json:"-"`
}

func (p *DeleteTagPayload) Validate() error {
	return validation.Struct(p)
}
