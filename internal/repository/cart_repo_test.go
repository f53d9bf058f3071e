package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCartRepository_GetByUserAndProduct(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewCartRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).
		AddRow("cart-1", "user-1", "prod-1", 3)

	mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE user_id = \\? AND product_id = \\?").
		WillReturnRows(rows)

	item, err := repo.GetByUserAndProduct(context.Background(), "user-1", "prod-1")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if item == nil {
		t.Fatal("Expected cart item, got nil")
	}
	if item.Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", item.Quantity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestCartRepository_GetByUserAndProduct_Missing(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewCartRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE user_id = \\? AND product_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}))

	item, err := repo.GetByUserAndProduct(context.Background(), "user-1", "prod-9")
	if err != nil {
		t.Errorf("Expected no error for missing pair, got %v", err)
	}
	if item != nil {
		t.Error("Expected nil item for missing pair")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	db, mock, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewCartRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `cart_items` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.UpdateQuantity(context.Background(), "cart-1", 5)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestCartRepositoryInterface(t *testing.T) {
	db, _, err := setupTestDB()
	if err != nil {
		t.Fatalf("Failed to setup test database: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var _ CartRepository = NewCartRepository(db)
}
