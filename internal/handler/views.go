package handler

import (
	"github.com/shopspring/decimal"

	"menu-service/internal/model"
)

// Each entity has two explicit response shapes: the owner view, where the
// tenant is implicit, and the superuser view carrying the tenant id. The
// shape is picked by the caller's resolved scope, never by toggling fields
// at runtime.

// CategoryView is the owner-facing category shape.
type CategoryView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	ImageURL  *string `json:"image_url,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// CategoryAdminView adds the tenant id for superusers.
type CategoryAdminView struct {
	CategoryView
	TenantID uint `json:"tenant_id"`
}

func categoryView(category model.Category) CategoryView {
	return CategoryView{
		ID:        category.ID,
		Name:      category.Name,
		ImageURL:  category.ImageURL,
		SortOrder: category.SortOrder,
	}
}

func categoryResponse(category model.Category, superuser bool) interface{} {
	if superuser {
		return CategoryAdminView{CategoryView: categoryView(category), TenantID: category.TenantID}
	}
	return categoryView(category)
}

func categoryListResponse(categories []model.Category, superuser bool) interface{} {
	if superuser {
		views := make([]CategoryAdminView, 0, len(categories))
		for _, category := range categories {
			views = append(views, CategoryAdminView{CategoryView: categoryView(category), TenantID: category.TenantID})
		}
		return views
	}
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView(category))
	}
	return views
}

// SubcategoryView is the owner-facing subcategory shape.
type SubcategoryView struct {
	ID         uint   `json:"id"`
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	SortOrder  int    `json:"sort_order"`
}

// SubcategoryAdminView adds the tenant id for superusers.
type SubcategoryAdminView struct {
	SubcategoryView
	TenantID uint `json:"tenant_id"`
}

func subcategoryView(subcategory model.Subcategory) SubcategoryView {
	return SubcategoryView{
		ID:         subcategory.ID,
		CategoryID: subcategory.CategoryID,
		Name:       subcategory.Name,
		SortOrder:  subcategory.SortOrder,
	}
}

func subcategoryResponse(subcategory model.Subcategory, superuser bool) interface{} {
	if superuser {
		return SubcategoryAdminView{SubcategoryView: subcategoryView(subcategory), TenantID: subcategory.TenantID}
	}
	return subcategoryView(subcategory)
}

func subcategoryListResponse(subcategories []model.Subcategory, superuser bool) interface{} {
	if superuser {
		views := make([]SubcategoryAdminView, 0, len(subcategories))
		for _, subcategory := range subcategories {
			views = append(views, SubcategoryAdminView{SubcategoryView: subcategoryView(subcategory), TenantID: subcategory.TenantID})
		}
		return views
	}
	views := make([]SubcategoryView, 0, len(subcategories))
	for _, subcategory := range subcategories {
		views = append(views, subcategoryView(subcategory))
	}
	return views
}

// ItemView is the owner-facing item shape.
type ItemView struct {
	ID            uint            `json:"id"`
	CategoryID    uint            `json:"category_id"`
	SubcategoryID *uint           `json:"subcategory_id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Available     bool            `json:"available"`
	SortOrder     int             `json:"sort_order"`
}

// ItemAdminView adds the tenant id for superusers.
type ItemAdminView struct {
	ItemView
	TenantID uint `json:"tenant_id"`
}

func itemView(item model.Item) ItemView {
	return ItemView{
		ID:            item.ID,
		CategoryID:    item.CategoryID,
		SubcategoryID: item.SubcategoryID,
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		Available:     item.Available,
		SortOrder:     item.SortOrder,
	}
}

func itemResponse(item model.Item, superuser bool) interface{} {
	if superuser {
		return ItemAdminView{ItemView: itemView(item), TenantID: item.TenantID}
	}
	return itemView(item)
}

func itemListResponse(items []model.Item, superuser bool) interface{} {
	if superuser {
		views := make([]ItemAdminView, 0, len(items))
		for _, item := range items {
			views = append(views, ItemAdminView{ItemView: itemView(item), TenantID: item.TenantID})
		}
		return views
	}
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}
	return views
}
