package model

import "time"

// Category is the top level of a tenant's menu hierarchy.
// Deleting a category removes its subcategories and items.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	ImageURL  *string   `json:"image_url,omitempty" gorm:"type:varchar(255)"`
	SortOrder int       `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// Subcategory is an optional grouping level between a category and its items.
// Its tenant always matches the parent category's tenant.
type Subcategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TenantID   uint      `json:"tenant_id" gorm:"index;not null"`
	CategoryID uint      `json:"category_id" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	SortOrder  int       `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
