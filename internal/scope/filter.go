package scope

import "menu-service/internal/model"

// ScopeFilter is the row-visibility predicate computed once per request and
// passed to the store verbatim. A nil field means "no restriction on that
// axis"; Empty means the caller sees nothing at all.
type ScopeFilter struct {
	TenantID      *uint
	CategoryID    *uint
	SubcategoryID *uint
	Empty         bool
}

// WithCategory narrows the filter to rows under the given parent category.
func (f ScopeFilter) WithCategory(id uint) ScopeFilter {
	f.CategoryID = &id
	return f
}

// WithSubcategory narrows the filter to rows under the given parent subcategory.
func (f ScopeFilter) WithSubcategory(id uint) ScopeFilter {
	f.SubcategoryID = &id
	return f
}

// TenantScope is the result of resolving a caller against the tenant
// directory: unrestricted (superuser), a concrete tenant, or none.
type TenantScope struct {
	Unrestricted bool
	Tenant       *model.Tenant
}

// None reports whether the caller resolved to no tenant at all.
func (s TenantScope) None() bool {
	return !s.Unrestricted && s.Tenant == nil
}

// Filter converts the tenant scope into the row-visibility predicate.
func (s TenantScope) Filter() ScopeFilter {
	switch {
	case s.Unrestricted:
		return ScopeFilter{}
	case s.Tenant != nil:
		id := s.Tenant.ID
		return ScopeFilter{TenantID: &id}
	default:
		return ScopeFilter{Empty: true}
	}
}

// AssignTenant decides the tenant a new row is stamped with. A concrete
// scope overrides whatever the caller supplied; an unrestricted caller must
// supply the tenant explicitly.
func (s TenantScope) AssignTenant(requested uint) (uint, error) {
	switch {
	case s.Unrestricted:
		if requested == 0 {
			return 0, Validationf("tenant_id", "tenant_id is required")
		}
		return requested, nil
	case s.Tenant != nil:
		return s.Tenant.ID, nil
	default:
		return 0, ErrUnauthorized
	}
}
