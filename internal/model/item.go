package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single menu entry. It always belongs to a category; the
// subcategory is optional and, when set, must belong to the same category.
type Item struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	TenantID      uint            `json:"tenant_id" gorm:"index;not null"`
	CategoryID    uint            `json:"category_id" gorm:"index;not null"`
	SubcategoryID *uint           `json:"subcategory_id,omitempty" gorm:"index"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(8,2);not null"`
	Available     bool            `json:"available" gorm:"not null"`
	SortOrder     int             `json:"sort_order" gorm:"index;not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Category    Category     `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Subcategory *Subcategory `json:"-" gorm:"foreignKey:SubcategoryID;constraint:OnDelete:CASCADE"`
}
