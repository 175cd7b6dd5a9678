package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant represents an independent business owning its own catalog slice.
// This is the core of the multi-tenant architecture.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	OwnerID   uint           `json:"owner_id" gorm:"index;not null"`
	Active    bool           `json:"active" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
