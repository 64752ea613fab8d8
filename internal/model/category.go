package model

type Category struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	CategoryName string    `json:"category_name" gorm:"column:category_name;size:255;not null"`
	Products     []Product `json:"products" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (Category) TableName() string { return "categories" }
