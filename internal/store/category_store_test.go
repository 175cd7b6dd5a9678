package store

import (
	"context"
	"errors"
	"testing"

	"menu-service/internal/model"
	"menu-service/internal/scope"
)

func TestCategoryList_ScopedToTenant(t *testing.T) {
	db := newTestDB(t)
	mine, theirs, myFilter, allFilter := twoTenants(t, db)

	mustCreate(t, db, &model.Category{TenantID: mine.ID, Name: "Entrantes"})
	mustCreate(t, db, &model.Category{TenantID: mine.ID, Name: "Postres"})
	mustCreate(t, db, &model.Category{TenantID: theirs.ID, Name: "Bebidas"})

	categories := NewCategoryStore(db)

	got, err := categories.List(context.Background(), myFilter)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d categories, want 2", len(got))
	}
	for _, category := range got {
		if category.TenantID != mine.ID {
			t.Errorf("category %q has tenant %d, want %d", category.Name, category.TenantID, mine.ID)
		}
	}

	all, err := categories.List(context.Background(), allFilter)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unrestricted List returned %d categories, want 3", len(all))
	}

	empty, err := categories.List(context.Background(), scope.ScopeFilter{Empty: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty-scope List returned %d categories, want 0", len(empty))
	}
}

func TestCategoryList_OrderTiesBrokenByName(t *testing.T) {
	db := newTestDB(t)
	mine, _, myFilter, _ := twoTenants(t, db)

	mustCreate(t, db, &model.Category{TenantID: mine.ID, Name: "A", SortOrder: 2})
	mustCreate(t, db, &model.Category{TenantID: mine.ID, Name: "B", SortOrder: 1})
	mustCreate(t, db, &model.Category{TenantID: mine.ID, Name: "C", SortOrder: 1})

	got, err := NewCategoryStore(db).List(context.Background(), myFilter)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"B", "C", "A"}
	if len(got) != len(want) {
		t.Fatalf("List returned %d categories, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestCategoryGet_OutOfScopeIsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, theirs, myFilter, allFilter := twoTenants(t, db)

	foreign := &model.Category{TenantID: theirs.ID, Name: "Bebidas"}
	mustCreate(t, db, foreign)

	categories := NewCategoryStore(db)

	if _, err := categories.Get(context.Background(), foreign.ID, myFilter); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get foreign category: error = %v, want ErrNotFound", err)
	}
	if _, err := categories.Get(context.Background(), foreign.ID, allFilter); err != nil {
		t.Errorf("Get as superuser failed: %v", err)
	}
	if _, err := categories.Get(context.Background(), 9999, allFilter); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing id: error = %v, want ErrNotFound", err)
	}
}

func TestCategoryCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	mine, _, _, _ := twoTenants(t, db)

	categories := NewCategoryStore(db)

	var verr *scope.ValidationError
	if err := categories.Create(context.Background(), &model.Category{TenantID: mine.ID, Name: "  "}); !errors.As(err, &verr) {
		t.Errorf("blank name: error = %v, want ValidationError", err)
	}
	if err := categories.Create(context.Background(), &model.Category{TenantID: mine.ID, Name: "Entrantes", SortOrder: -1}); !errors.As(err, &verr) {
		t.Errorf("negative sort order: error = %v, want ValidationError", err)
	}
	if err := categories.Create(context.Background(), &model.Category{TenantID: 9999, Name: "Entrantes"}); !errors.As(err, &verr) {
		t.Errorf("unknown tenant: error = %v, want ValidationError", err)
	}

	category := &model.Category{TenantID: mine.ID, Name: "Entrantes"}
	if err := categories.Create(context.Background(), category); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if category.ID == 0 {
		t.Error("Create should assign an id")
	}
}

func TestCategoryUpdate_OutOfScopeIsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, theirs, myFilter, _ := twoTenants(t, db)

	foreign := &model.Category{TenantID: theirs.ID, Name: "Bebidas"}
	mustCreate(t, db, foreign)

	name := "Cócteles"
	_, err := NewCategoryStore(db).Update(context.Background(), foreign.ID, myFilter, CategoryUpdate{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update foreign category: error = %v, want ErrNotFound", err)
	}

	// The row is untouched
	var reread model.Category
	if err := db.First(&reread, foreign.ID).Error; err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if reread.Name != "Bebidas" {
		t.Errorf("foreign category name = %q, want unchanged", reread.Name)
	}
}

func TestCategoryDelete_Cascades(t *testing.T) {
	db := newTestDB(t)
	mine, _, myFilter, _ := twoTenants(t, db)

	category := &model.Category{TenantID: mine.ID, Name: "Entrantes"}
	mustCreate(t, db, category)
	subcategory := &model.Subcategory{TenantID: mine.ID, CategoryID: category.ID, Name: "Frías"}
	mustCreate(t, db, subcategory)
	mustCreate(t, db, &model.Item{TenantID: mine.ID, CategoryID: category.ID, SubcategoryID: &subcategory.ID, Name: "Gazpacho"})
	mustCreate(t, db, &model.Item{TenantID: mine.ID, CategoryID: category.ID, Name: "Croquetas"})

	if err := NewCategoryStore(db).Delete(context.Background(), category.ID, myFilter); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var categoryCount, subcategoryCount, itemCount int64
	db.Model(&model.Category{}).Count(&categoryCount)
	db.Model(&model.Subcategory{}).Count(&subcategoryCount)
	db.Model(&model.Item{}).Count(&itemCount)
	if categoryCount != 0 || subcategoryCount != 0 || itemCount != 0 {
		t.Errorf("after cascade: categories=%d subcategories=%d items=%d, want all 0",
			categoryCount, subcategoryCount, itemCount)
	}
}

func TestCategoryDelete_OutOfScopeIsNotFound(t *testing.T) {
	db := newTestDB(t)
	_, theirs, myFilter, _ := twoTenants(t, db)

	foreign := &model.Category{TenantID: theirs.ID, Name: "Bebidas"}
	mustCreate(t, db, foreign)

	if err := NewCategoryStore(db).Delete(context.Background(), foreign.ID, myFilter); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete foreign category: error = %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count != 1 {
		t.Errorf("foreign category should survive, count = %d", count)
	}
}
