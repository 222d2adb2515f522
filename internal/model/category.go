package model

import "time"

// DefaultCategoryColor is applied to categories seeded without a color.
const DefaultCategoryColor = "#007bff"

// Category groups tasks. Categories are global reference data, not owned by a user.
type Category struct {
	ID          uint      `json:"categoryId" gorm:"column:category_id;primaryKey"`
	Name        string    `json:"categoryName" gorm:"column:category_name;uniqueIndex;size:100;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"size:7;not null;default:'#007bff'"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Tasks []Task `json:"-" gorm:"foreignKey:CategoryID;references:ID"`
}
