package model

type Tag struct {
	ID       int       `json:"id" gorm:"primaryKey"`
	TagName  string    `json:"tag_name" gorm:"column:tag_name;size:255;not null"`
	Products []Product `json:"products" gorm:"many2many:product_tags;constraint:OnDelete:CASCADE"`
}

func (Tag) TableName() string { return "tags" }

// ProductTag is one row of the tag/product join table. The pair is the
// primary key, so a product can be tagged with the same tag once.
type ProductTag struct {
	TagID     int `json:"tag_id" gorm:"primaryKey"`
	ProductID int `json:"product_id" gorm:"primaryKey"`
}

func (ProductTag) TableName() string { return "product_tags" }

// NewProductTags builds one join row per product id, in input order.
func NewProductTags(tagID int, productIDs []int) []ProductTag {
	rows := make([]ProductTag, 0, len(productIDs))
	for _, productID := range productIDs {
		rows = append(rows, ProductTag{TagID: tagID, ProductID: productID})
	}
	return rows
}
