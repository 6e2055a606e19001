package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/simp-lee/adminboard/internal/domain"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the Product table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, repo domain.ProductRepository, name, category string, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Category: category, Price: price, Stock: 10, Rating: 4.0}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{Name: "Laptop", Category: "electronics", Price: 999.99, Stock: 5}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero ID after Create")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Laptop" || got.Price != 999.99 {
		t.Errorf("got %+v; want Name=Laptop, Price=999.99", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountAndListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	for i := 0; i < 4; i++ {
		seedProduct(t, repo, fmt.Sprintf("Item %d", i), "misc", float64(i)*10)
	}

	total, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 4 {
		t.Errorf("Count = %d; want 4", total)
	}

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("len(ListAll) = %d; want 4", len(all))
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := seedProduct(t, repo, "Laptop", "electronics", 999.99)

	p.Price = 899.99
	p.Stock = 3
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Price != 899.99 || got.Stock != 3 {
		t.Errorf("got Price=%v Stock=%d; want 899.99, 3", got.Price, got.Stock)
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := seedProduct(t, repo, "Laptop", "electronics", 999.99)

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, 999); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteMany(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	a := seedProduct(t, repo, "A", "misc", 1)
	seedProduct(t, repo, "B", "misc", 2)
	c := seedProduct(t, repo, "C", "misc", 3)

	deleted, err := repo.DeleteMany(ctx, []uint{a.ID, c.ID, 999})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d; want 2", deleted)
	}

	total, _ := repo.Count(ctx)
	if total != 1 {
		t.Errorf("remaining = %d; want 1", total)
	}
}

func TestList_PaginationAndSort(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	for i := 0; i < 15; i++ {
		seedProduct(t, repo, fmt.Sprintf("Item %02d", i), "misc", float64(15-i))
	}

	result, err := repo.List(context.Background(), domain.PageRequest{
		Page: 2, PageSize: 10, Sort: "price:asc",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 15 {
		t.Errorf("Total = %d; want 15", result.Total)
	}
	if len(result.Items) != 5 {
		t.Errorf("len(Items) = %d; want 5 on the last page", len(result.Items))
	}
	if result.TotalPages != 2 {
		t.Errorf("TotalPages = %d; want 2", result.TotalPages)
	}
	// Ascending by price: page 2 holds the most expensive items.
	if result.Items[len(result.Items)-1].Price != 15 {
		t.Errorf("last item price = %v; want 15", result.Items[len(result.Items)-1].Price)
	}
}

func TestList_SearchDefaultsToName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, repo, "Gaming Laptop", "electronics", 1500)
	seedProduct(t, repo, "Coffee Mug", "kitchen", 9.5)

	result, err := repo.List(context.Background(), domain.PageRequest{
		Page: 1, PageSize: 10, Search: "laptop",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Gaming Laptop" {
		t.Errorf("name search returned %+v", result.Items)
	}
}

func TestList_SearchByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, repo, "Gaming Laptop", "electronics", 1500)
	seedProduct(t, repo, "Coffee Mug", "kitchen", 9.5)

	result, err := repo.List(context.Background(), domain.PageRequest{
		Page: 1, PageSize: 10, SearchField: "category", Search: "KITCHEN",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || result.Items[0].Name != "Coffee Mug" {
		t.Errorf("category search returned %+v", result.Items)
	}
}

func TestList_SearchUnknownField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	_, err := repo.List(context.Background(), domain.PageRequest{
		Page: 1, PageSize: 10, SearchField: "price", Search: "10",
	})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error for unknown search field, got %v", err)
	}
}

func TestList_Filter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	seedProduct(t, repo, "Gaming Laptop", "electronics", 1500)
	seedProduct(t, repo, "Coffee Mug", "kitchen", 9.5)

	result, err := repo.List(context.Background(), domain.PageRequest{
		Page: 1, PageSize: 10,
		Filter: map[string]string{"category": "electronics"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 1 || result.Items[0].Category != "electronics" {
		t.Errorf("filter returned %+v", result.Items)
	}
}
