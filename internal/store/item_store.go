package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"menu-service/internal/model"
	"menu-service/internal/scope"
	"menu-service/prometheus"
)

// ItemStore persists menu items within a caller's scope.
type ItemStore struct {
	db *gorm.DB
}

// NewItemStore creates a scoped item repository.
func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

// ItemUpdate carries the fields a partial update may change.
// ClearSubcategory detaches the item from its subcategory.
type ItemUpdate struct {
	Name             *string
	Description      *string
	Price            *decimal.Decimal
	Available        *bool
	CategoryID       *uint
	SubcategoryID    *uint
	ClearSubcategory bool
	SortOrder        *int
}

// List returns the visible items ordered by sort order, ties broken by name.
// When onlyAvailable is set, hidden items are excluded.
func (s *ItemStore) List(ctx context.Context, f scope.ScopeFilter, onlyAvailable bool) ([]model.Item, error) {
	if f.Empty {
		return []model.Item{}, nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	q := scoped(s.db.WithContext(ctx), f)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}

	var items []model.Item
	if err := q.Order("sort_order, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Get returns one item by id within scope.
func (s *ItemStore) Get(ctx context.Context, id uint, f scope.ScopeFilter) (*model.Item, error) {
	if f.Empty {
		return nil, ErrNotFound
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var item model.Item
	err := scoped(s.db.WithContext(ctx), f).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts an item. The parent category must belong to the item's
// tenant, and a subcategory, when set, must belong to that same category.
func (s *ItemStore) Create(ctx context.Context, item *model.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return scope.Validationf("name", "name is required")
	}
	if item.Price.IsNegative() {
		return scope.Validationf("price", "price must not be negative")
	}
	if item.SortOrder < 0 {
		return scope.Validationf("sort_order", "sort_order must not be negative")
	}
	if err := tenantExists(ctx, s.db, item.TenantID); err != nil {
		return err
	}
	if err := categoryInTenant(ctx, s.db, item.CategoryID, item.TenantID); err != nil {
		return err
	}
	if item.SubcategoryID != nil {
		if err := subcategoryInCategory(ctx, s.db, *item.SubcategoryID, item.CategoryID, item.TenantID); err != nil {
			return err
		}
	}
	item.Price = item.Price.Round(2)

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Update applies a partial update to an item within scope, revalidating the
// category/subcategory invariant against the resulting row.
func (s *ItemStore) Update(ctx context.Context, id uint, f scope.ScopeFilter, upd ItemUpdate) (*model.Item, error) {
	item, err := s.Get(ctx, id, f)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, scope.Validationf("name", "name is required")
		}
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return nil, scope.Validationf("price", "price must not be negative")
		}
		item.Price = upd.Price.Round(2)
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}
	if upd.CategoryID != nil {
		if err := categoryInTenant(ctx, s.db, *upd.CategoryID, item.TenantID); err != nil {
			return nil, err
		}
		item.CategoryID = *upd.CategoryID
	}
	if upd.SortOrder != nil {
		if *upd.SortOrder < 0 {
			return nil, scope.Validationf("sort_order", "sort_order must not be negative")
		}
		item.SortOrder = *upd.SortOrder
	}
	if upd.ClearSubcategory {
		item.SubcategoryID = nil
	} else if upd.SubcategoryID != nil {
		item.SubcategoryID = upd.SubcategoryID
	}
	if item.SubcategoryID != nil {
		if err := subcategoryInCategory(ctx, s.db, *item.SubcategoryID, item.CategoryID, item.TenantID); err != nil {
			return nil, err
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	return item, nil
}

// Delete removes an item within scope.
func (s *ItemStore) Delete(ctx context.Context, id uint, f scope.ScopeFilter) error {
	if f.Empty {
		return ErrNotFound
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := scoped(s.db.WithContext(ctx), f).Where("id = ?", id).Delete(&model.Item{})
	if result.Error != nil {
		return fmt.Errorf("delete item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder applies a batch of item sort-order changes atomically.
func (s *ItemStore) Reorder(ctx context.Context, f scope.ScopeFilter, pairs []OrderPair) error {
	return applyReorder(ctx, s.db, &model.Item{}, f, pairs)
}

// subcategoryInCategory verifies the subcategory sits under the given
// category and tenant.
func subcategoryInCategory(ctx context.Context, db *gorm.DB, subcategoryID, categoryID, tenantID uint) error {
	var subcategory model.Subcategory
	err := db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", subcategoryID, tenantID).
		First(&subcategory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scope.Validationf("subcategory_id", "subcategory not found")
	}
	if err != nil {
		return fmt.Errorf("check subcategory %d: %w", subcategoryID, err)
	}
	if subcategory.CategoryID != categoryID {
		return scope.Validationf("subcategory_id", "subcategory does not belong to the item's category")
	}
	return nil
}
