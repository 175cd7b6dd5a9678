package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"menu-service/internal/model"
	"menu-service/internal/scope"
	"menu-service/prometheus"
)

// TenantStore persists tenant records. The gate restricts every operation
// on tenants to superusers.
type TenantStore struct {
	db *gorm.DB
}

// NewTenantStore creates a tenant repository.
func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// TenantUpdate carries the fields a partial update may change.
type TenantUpdate struct {
	Name    *string
	Slug    *string
	OwnerID *uint
	Active  *bool
}

// List returns all tenants ordered by name.
func (s *TenantStore) List(ctx context.Context) ([]model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenants []model.Tenant
	if err := s.db.WithContext(ctx).Order("name").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// Get returns one tenant by id.
func (s *TenantStore) Get(ctx context.Context, id uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant %d: %w", id, err)
	}
	return &tenant, nil
}

// Create inserts a tenant. A blank slug is derived from the display name;
// either way the slug is made unique by suffixing a counter.
func (s *TenantStore) Create(ctx context.Context, tenant *model.Tenant) error {
	if strings.TrimSpace(tenant.Name) == "" {
		return scope.Validationf("name", "name is required")
	}
	if tenant.OwnerID == 0 {
		return scope.Validationf("owner_id", "owner_id is required")
	}

	base := tenant.Slug
	if strings.TrimSpace(base) == "" {
		base = tenant.Name
	}
	uniqueSlug, err := s.uniqueSlug(ctx, slug.Make(base), 0)
	if err != nil {
		return err
	}
	tenant.Slug = uniqueSlug

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

// Update applies a partial update to a tenant.
func (s *TenantStore) Update(ctx context.Context, id uint, upd TenantUpdate) (*model.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, scope.Validationf("name", "name is required")
		}
		tenant.Name = *upd.Name
	}
	if upd.Slug != nil && slug.Make(*upd.Slug) != tenant.Slug {
		uniqueSlug, err := s.uniqueSlug(ctx, slug.Make(*upd.Slug), tenant.ID)
		if err != nil {
			return nil, err
		}
		tenant.Slug = uniqueSlug
	}
	if upd.OwnerID != nil {
		if *upd.OwnerID == 0 {
			return nil, scope.Validationf("owner_id", "owner_id is required")
		}
		tenant.OwnerID = *upd.OwnerID
	}
	if upd.Active != nil {
		tenant.Active = *upd.Active
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.WithContext(ctx).Save(tenant).Error; err != nil {
		return nil, fmt.Errorf("update tenant %d: %w", id, err)
	}
	return tenant, nil
}

// Delete removes a tenant and its whole catalog in one transaction.
func (s *TenantStore) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant model.Tenant
		err := tx.Where("id = ?", id).First(&tenant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get tenant %d: %w", id, err)
		}

		if err := tx.Where("tenant_id = ?", tenant.ID).Delete(&model.Item{}).Error; err != nil {
			return fmt.Errorf("delete items of tenant %d: %w", id, err)
		}
		if err := tx.Where("tenant_id = ?", tenant.ID).Delete(&model.Subcategory{}).Error; err != nil {
			return fmt.Errorf("delete subcategories of tenant %d: %w", id, err)
		}
		if err := tx.Where("tenant_id = ?", tenant.ID).Delete(&model.Category{}).Error; err != nil {
			return fmt.Errorf("delete categories of tenant %d: %w", id, err)
		}
		if err := tx.Delete(&tenant).Error; err != nil {
			return fmt.Errorf("delete tenant %d: %w", id, err)
		}
		return nil
	})
}

// uniqueSlug appends -2, -3, ... until the slug is free. excludeID skips the
// row being updated. The check runs unscoped: the unique index still covers
// soft-deleted rows.
func (s *TenantStore) uniqueSlug(ctx context.Context, base string, excludeID uint) (string, error) {
	if base == "" {
		return "", scope.Validationf("slug", "slug is required")
	}

	candidate := base
	for i := 2; ; i++ {
		var count int64
		q := s.db.WithContext(ctx).Unscoped().Model(&model.Tenant{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id != ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
