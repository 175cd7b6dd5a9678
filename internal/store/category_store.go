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

// CategoryStore persists categories within a caller's scope.
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore creates a scoped category repository.
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// CategoryUpdate carries the fields a partial update may change.
type CategoryUpdate struct {
	Name      *string
	ImageURL  *string
	SortOrder *int
}

// List returns the visible categories ordered by sort order, ties broken by name.
func (s *CategoryStore) List(ctx context.Context, f scope.ScopeFilter) ([]model.Category, error) {
	if f.Empty {
		return []model.Category{}, nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var categories []model.Category
	err := scoped(s.db.WithContext(ctx), f).
		Order("sort_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get returns one category by id, or ErrNotFound when the id does not exist
// or is outside the caller's scope.
func (s *CategoryStore) Get(ctx context.Context, id uint, f scope.ScopeFilter) (*model.Category, error) {
	if f.Empty {
		return nil, ErrNotFound
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var category model.Category
	err := scoped(s.db.WithContext(ctx), f).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}

// Create inserts a category. The tenant id must already be stamped per the
// caller's scope.
func (s *CategoryStore) Create(ctx context.Context, category *model.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return scope.Validationf("name", "name is required")
	}
	if category.SortOrder < 0 {
		return scope.Validationf("sort_order", "sort_order must not be negative")
	}
	if err := tenantExists(ctx, s.db, category.TenantID); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update applies a partial update to a category within scope.
func (s *CategoryStore) Update(ctx context.Context, id uint, f scope.ScopeFilter, upd CategoryUpdate) (*model.Category, error) {
	category, err := s.Get(ctx, id, f)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, scope.Validationf("name", "name is required")
		}
		category.Name = *upd.Name
	}
	if upd.ImageURL != nil {
		category.ImageURL = upd.ImageURL
	}
	if upd.SortOrder != nil {
		if *upd.SortOrder < 0 {
			return nil, scope.Validationf("sort_order", "sort_order must not be negative")
		}
		category.SortOrder = *upd.SortOrder
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	return category, nil
}

// Delete removes a category and everything under it. The cascade runs in a
// single transaction so a failure leaves the hierarchy intact.
func (s *CategoryStore) Delete(ctx context.Context, id uint, f scope.ScopeFilter) error {
	if f.Empty {
		return ErrNotFound
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		err := scoped(tx, f).Where("id = ?", id).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get category %d: %w", id, err)
		}

		if err := tx.Where("category_id = ?", category.ID).Delete(&model.Item{}).Error; err != nil {
			return fmt.Errorf("delete items of category %d: %w", id, err)
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&model.Subcategory{}).Error; err != nil {
			return fmt.Errorf("delete subcategories of category %d: %w", id, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}

// Reorder applies a batch of category sort-order changes atomically.
func (s *CategoryStore) Reorder(ctx context.Context, f scope.ScopeFilter, pairs []OrderPair) error {
	return applyReorder(ctx, s.db, &model.Category{}, f, pairs)
}

// tenantExists rejects rows stamped with a tenant that is missing or
// inactive. Superuser-supplied tenants go through the same check.
func tenantExists(ctx context.Context, db *gorm.DB, tenantID uint) error {
	var count int64
	err := db.WithContext(ctx).Model(&model.Tenant{}).
		Where("id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check tenant %d: %w", tenantID, err)
	}
	if count == 0 {
		return scope.Validationf("tenant_id", "unknown tenant")
	}
	return nil
}
