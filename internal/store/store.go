package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"menu-service/internal/scope"
	"menu-service/prometheus"
)

// OrderPair assigns a new sort order to one row in a reorder batch.
type OrderPair struct {
	ID        uint `json:"id"`
	SortOrder int  `json:"sort_order"`
}

// scoped applies the row-visibility filter to a query. The Empty case is
// handled by callers before any query is issued.
func scoped(q *gorm.DB, f scope.ScopeFilter) *gorm.DB {
	if f.TenantID != nil {
		q = q.Where("tenant_id = ?", *f.TenantID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		q = q.Where("subcategory_id = ?", *f.SubcategoryID)
	}
	return q
}

// applyReorder validates and applies a batch of sort-order writes for one
// entity type as a single transaction. Every referenced row must be within
// the caller's scope before any row is touched; a single miss rejects the
// whole batch.
func applyReorder(ctx context.Context, db *gorm.DB, entity interface{}, f scope.ScopeFilter, pairs []OrderPair) error {
	if len(pairs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(pairs))
	seen := make(map[uint]struct{}, len(pairs))
	for _, pair := range pairs {
		if pair.ID == 0 {
			return scope.Validationf("id", "id is required")
		}
		if pair.SortOrder < 0 {
			return scope.Validationf("sort_order", "sort_order must not be negative")
		}
		if _, dup := seen[pair.ID]; dup {
			return scope.Validationf("id", "duplicate id %d in batch", pair.ID)
		}
		seen[pair.ID] = struct{}{}
		ids = append(ids, pair.ID)
	}

	if f.Empty {
		return ErrConflict
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := scoped(tx.Model(entity), f).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return fmt.Errorf("verify batch scope: %w", err)
		}
		if count != int64(len(ids)) {
			return ErrConflict
		}

		for _, pair := range pairs {
			if err := tx.Model(entity).Where("id = ?", pair.ID).
				Update("sort_order", pair.SortOrder).Error; err != nil {
				return fmt.Errorf("update sort order for id %d: %w", pair.ID, err)
			}
		}
		return nil
	})
	return err
}
