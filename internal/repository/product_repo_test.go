package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

func setupTestDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	return gormDB, mock, nil
}

func TestProductRepository_GetByID(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	productID := "prod-1"

	rows := sqlmock.NewRows([]string{"id", "seller_id", "name", "price", "discount", "quantity", "status"}).
		AddRow(productID, "seller-1", "Denim Jacket", 100000, 20, 3, "available")

	mock.ExpectQuery("SELECT \\* FROM `products` WHERE id = \\?").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT \\* FROM `product_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id"}))

	product, err := repo.GetByID(context.Background(), productID)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if product == nil {
		t.Fatal("Expected product, got nil")
	}
	if product.ID != productID {
		t.Errorf("Expected product id %s, got %s", productID, product.ID)
	}
	if got := product.DiscountedPrice(); got != 80000 {
		t.Errorf("Expected discounted price 80000, got %d", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `products` WHERE id = \\?").
		WillReturnError(gorm.ErrRecordNotFound)

	product, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, utils.ErrProductNotFound) {
		t.Errorf("Expected product not found error, got %v", err)
	}
	if product != nil {
		t.Error("Expected nil product, got non-nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepository_DecrStock(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.DecrStock(context.Background(), "prod-1", 2)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepository_DecrStock_Insufficient(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	// The guarded update touches no row when stock is short.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err = repo.DecrStock(context.Background(), "prod-1", 99)
	if !errors.Is(err, utils.ErrInsufficientStock) {
		t.Errorf("Expected insufficient stock error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepository_RestoreStock(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.RestoreStock(context.Background(), "prod-1", 1)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepository_List(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewProductRepository(db)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products` WHERE status = \\?").
		WillReturnRows(countRows)

	rows := sqlmock.NewRows([]string{"id", "seller_id", "name", "price", "status"}).
		AddRow("prod-1", "seller-1", "Denim Jacket", 100000, "available").
		AddRow("prod-2", "seller-1", "Wool Sweater", 50000, "available")
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE status = \\? ORDER BY created_at DESC LIMIT \\?").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT \\* FROM `product_images`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id"}))

	products, total, err := repo.List(context.Background(), ProductListFilter{Status: model.ProductStatusAvailable}, 1, 10)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if total != 2 {
		t.Errorf("Expected total 2, got %d", total)
	}
	if len(products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestProductRepositoryInterface(t *testing.T) {
	db, _, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var _ ProductRepository = NewProductRepository(db)
}
