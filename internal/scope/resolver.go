package scope

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"menu-service/internal/model"
)

// Resolver maps an authenticated caller to at most one owned tenant.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a tenant directory backed by the given database.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveTenant computes the caller's tenant scope. Superusers are always
// unrestricted, even when they also own a tenant. Other callers resolve to
// the active tenant they own; when a caller somehow owns more than one, the
// lowest id wins. Callers owning nothing resolve to an empty scope.
func (r *Resolver) ResolveTenant(ctx context.Context, caller Caller) (TenantScope, error) {
	if caller.IsSuperuser {
		return TenantScope{Unrestricted: true}, nil
	}
	if caller.Anonymous() {
		return TenantScope{}, nil
	}

	var tenant model.Tenant
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND active = ?", caller.UserID, true).
		Order("id").
		First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TenantScope{}, nil
	}
	if err != nil {
		return TenantScope{}, fmt.Errorf("resolve tenant for user %d: %w", caller.UserID, err)
	}

	return TenantScope{Tenant: &tenant}, nil
}
