package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"menu-service/internal/model"
	"menu-service/internal/scope"
	"menu-service/prometheus"
)

// SubcategoryStore persists subcategories within a caller's scope.
type SubcategoryStore struct {
	db *gorm.DB
}

// NewSubcategoryStore creates a scoped subcategory repository.
func NewSubcategoryStore(db *gorm.DB) *SubcategoryStore {
	return &SubcategoryStore{db: db}
}

// SubcategoryUpdate carries the fields a partial update may change.
type SubcategoryUpdate struct {
	Name       *string
	CategoryID *uint
	SortOrder  *int
}

// List returns the visible subcategories ordered by sort order, ties broken
// by name. Combine with ScopeFilter.WithCategory to list under one parent;
// a parent id belonging to another tenant yields an empty list.
func (s *SubcategoryStore) List(ctx context.Context, f scope.ScopeFilter) ([]model.Subcategory, error) {
	if f.Empty {
		return []model.Subcategory{}, nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var subcategories []model.Subcategory
	err := scoped(s.db.WithContext(ctx), f).
		Order("sort_order, name").
		Find(&subcategories).Error
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return subcategories, nil
}

// Get returns one subcategory by id within scope.
func (s *SubcategoryStore) Get(ctx context.Context, id uint, f scope.ScopeFilter) (*model.Subcategory, error) {
	if f.Empty {
		return nil, ErrNotFound
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var subcategory model.Subcategory
	err := scoped(s.db.WithContext(ctx), f).Where("id = ?", id).First(&subcategory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subcategory %d: %w", id, err)
	}
	return &subcategory, nil
}

// Create inserts a subcategory. The parent category must belong to the same
// tenant the row is stamped with.
func (s *SubcategoryStore) Create(ctx context.Context, subcategory *model.Subcategory) error {
	if strings.TrimSpace(subcategory.Name) == "" {
		return scope.Validationf("name", "name is required")
	}
	if subcategory.SortOrder < 0 {
		return scope.Validationf("sort_order", "sort_order must not be negative")
	}
	if err := tenantExists(ctx, s.db, subcategory.TenantID); err != nil {
		return err
	}
	if err := categoryInTenant(ctx, s.db, subcategory.CategoryID, subcategory.TenantID); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(subcategory).Error; err != nil {
		return fmt.Errorf("create subcategory: %w", err)
	}
	return nil
}

// Update applies a partial update to a subcategory within scope.
func (s *SubcategoryStore) Update(ctx context.Context, id uint, f scope.ScopeFilter, upd SubcategoryUpdate) (*model.Subcategory, error) {
	subcategory, err := s.Get(ctx, id, f)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, scope.Validationf("name", "name is required")
		}
		subcategory.Name = *upd.Name
	}
	if upd.CategoryID != nil {
		if err := categoryInTenant(ctx, s.db, *upd.CategoryID, subcategory.TenantID); err != nil {
			return nil, err
		}
		subcategory.CategoryID = *upd.CategoryID
	}
	if upd.SortOrder != nil {
		if *upd.SortOrder < 0 {
			return nil, scope.Validationf("sort_order", "sort_order must not be negative")
		}
		subcategory.SortOrder = *upd.SortOrder
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.WithContext(ctx).Save(subcategory).Error; err != nil {
		return nil, fmt.Errorf("update subcategory %d: %w", id, err)
	}
	return subcategory, nil
}

// Delete removes a subcategory and its items in one transaction.
func (s *SubcategoryStore) Delete(ctx context.Context, id uint, f scope.ScopeFilter) error {
	if f.Empty {
		return ErrNotFound
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subcategory model.Subcategory
		err := scoped(tx, f).Where("id = ?", id).First(&subcategory).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get subcategory %d: %w", id, err)
		}

		if err := tx.Where("subcategory_id = ?", subcategory.ID).Delete(&model.Item{}).Error; err != nil {
			return fmt.Errorf("delete items of subcategory %d: %w", id, err)
		}
		if err := tx.Delete(&subcategory).Error; err != nil {
			return fmt.Errorf("delete subcategory %d: %w", id, err)
		}
		return nil
	})
}

// Reorder applies a batch of subcategory sort-order changes atomically.
func (s *SubcategoryStore) Reorder(ctx context.Context, f scope.ScopeFilter, pairs []OrderPair) error {
	return applyReorder(ctx, s.db, &model.Subcategory{}, f, pairs)
}

// categoryInTenant verifies a parent category exists inside the given
// tenant. The failure message does not reveal whether the id exists for a
// different tenant.
func categoryInTenant(ctx context.Context, db *gorm.DB, categoryID, tenantID uint) error {
	if categoryID == 0 {
		return scope.Validationf("category_id", "category_id is required")
	}
	var count int64
	err := db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND tenant_id = ?", categoryID, tenantID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check category %d: %w", categoryID, err)
	}
	if count == 0 {
		return scope.Validationf("category_id", "category not found")
	}
	return nil
}
