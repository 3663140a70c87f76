package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/saudecerta/storefront/internal/store"
	"github.com/shopspring/decimal"
)

func createTestUser(t *testing.T, db *sql.DB, openID, email, name string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), db, openID, email, name)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return user
}

func createTestAddress(t *testing.T, db *sql.DB, userID int64) *models.Address {
	t.Helper()
	addr, err := store.CreateAddress(context.Background(), db, models.Address{
		UserID:    userID,
		Street:    "Rua das Flores",
		Number:    "123",
		City:      "Recife",
		State:     "PE",
		ZipCode:   "52010-000",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("Create address: %v", err)
	}
	return addr
}

func createTestProduct(t *testing.T, db *sql.DB, name string, price decimal.Decimal, stock int) *models.Product {
	t.Helper()
	ctx := context.Background()

	category, err := store.CreateCategory(ctx, db, "Medicamentos "+name, "")
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	product, err := store.CreateProduct(ctx, db, store.CreateProductParams{
		Name:         name,
		Description:  "Test product",
		CategoryID:   category.ID,
		Price:        price,
		InitialStock: stock,
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}
	return product
}

func TestCreateOrderWithItems(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-order-1", "maria@example.com", "Maria Silva")
	addr := createTestAddress(t, db, user.ID)
	p1 := createTestProduct(t, db, "Dipirona 500mg", decimal.RequireFromString("29.90"), 50)
	p2 := createTestProduct(t, db, "Vitamina C", decimal.RequireFromString("69.90"), 30)

	order, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
		UserID:    user.ID,
		AddressID: addr.ID,
		Items: []store.OrderItemRequest{
			{ProductID: p1.ID, Quantity: 2, Price: p1.Price},
			{ProductID: p2.ID, Quantity: 1, Price: p2.Price},
		},
		ShippingCost: decimal.RequireFromString("5.00"),
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if order.ID == 0 {
		t.Error("Order ID should not be 0")
	}

	expectedTotal := decimal.RequireFromString("134.70")
	if !order.TotalAmount.Equal(expectedTotal) {
		t.Errorf("Expected total %s, got %s", expectedTotal, order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status %s, got %s", models.OrderStatusPending, order.Status)
	}

	fetched, err := store.GetOrder(ctx, db, order.ID)
	if err != nil {
		t.Fatalf("Get order: %v", err)
	}
	if len(fetched.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(fetched.Items))
	}
	if !fetched.Items[0].Price.Equal(p1.Price) {
		t.Errorf("Expected snapshotted price %s, got %s", p1.Price, fetched.Items[0].Price)
	}

	sales, err := store.GetDailySales(ctx, db, order.CreatedAt)
	if err != nil {
		t.Fatalf("Get daily sales: %v", err)
	}
	if sales == nil {
		t.Fatal("Expected a daily sales row for the order date")
	}
	if !sales.TotalSales.Equal(expectedTotal) {
		t.Errorf("Expected daily total %s, got %s", expectedTotal, sales.TotalSales)
	}
	if sales.OrderCount != 1 {
		t.Errorf("Expected order count 1, got %d", sales.OrderCount)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-empty", "empty@example.com", "Empty Cart")
	addr := createTestAddress(t, db, user.ID)

	_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
		UserID:    user.ID,
		AddressID: addr.ID,
	})
	if !errors.Is(err, database.ErrEmptyCart) {
		t.Fatalf("Expected ErrEmptyCart, got %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		t.Fatalf("Count orders: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no orders persisted, got %d", count)
	}
}

func TestCreateOrderForeignAddress(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	owner := createTestUser(t, db, "oid-owner", "owner@example.com", "Owner")
	intruder := createTestUser(t, db, "oid-intruder", "intruder@example.com", "Intruder")
	addr := createTestAddress(t, db, owner.ID)
	product := createTestProduct(t, db, "Protetor Solar", decimal.RequireFromString("49.90"), 10)

	_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
		UserID:    intruder.ID,
		AddressID: addr.ID,
		Items: []store.OrderItemRequest{
			{ProductID: product.ID, Quantity: 1, Price: product.Price},
		},
	})
	if !errors.Is(err, database.ErrAddressNotFound) {
		t.Fatalf("Expected ErrAddressNotFound, got %v", err)
	}

	sales, err := store.GetDailySales(ctx, db, time.Now())
	if err != nil {
		t.Fatalf("Get daily sales: %v", err)
	}
	if sales != nil {
		t.Error("Expected no daily sales row after a rolled back order")
	}
}

func TestConcurrentOrdersSharedRollup(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-conc", "conc@example.com", "Concurrent")
	addr := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "Soro Fisiologico", decimal.RequireFromString("10.00"), 100)

	const workers = 8

	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
				UserID:    user.ID,
				AddressID: addr.ID,
				Items: []store.OrderItemRequest{
					{ProductID: product.ID, Quantity: 1, Price: product.Price},
				},
			})
			errCh <- err
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			t.Fatalf("Concurrent create order: %v", err)
		}
	}

	sales, err := store.GetDailySales(ctx, db, time.Now())
	if err != nil {
		t.Fatalf("Get daily sales: %v", err)
	}
	if sales == nil {
		t.Fatal("Expected a daily sales row")
	}
	if sales.OrderCount != workers {
		t.Errorf("Expected order count %d, got %d", workers, sales.OrderCount)
	}

	expectedTotal := decimal.RequireFromString("10.00").Mul(decimal.NewFromInt(workers))
	if !sales.TotalSales.Equal(expectedTotal) {
		t.Errorf("Expected daily total %s, got %s", expectedTotal, sales.TotalSales)
	}
}

func TestListOrdersCursor(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-cursor", "cursor@example.com", "Cursor User")
	addr := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "Algodao", decimal.RequireFromString("7.50"), 100)

	for i := 0; i < 5; i++ {
		_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
			UserID:    user.ID,
			AddressID: addr.ID,
			Items: []store.OrderItemRequest{
				{ProductID: product.ID, Quantity: i + 1, Price: product.Price},
			},
		})
		if err != nil {
			t.Fatalf("Create order %d: %v", i, err)
		}
	}

	seen := 0
	cursor := ""
	for page := 0; page < 10; page++ {
		result, err := store.ListOrdersCursor(ctx, db, user.ID, cursor, 2)
		if err != nil {
			t.Fatalf("List orders: %v", err)
		}
		orders, ok := result.Items.([]models.Order)
		if !ok {
			t.Fatalf("Unexpected page items type %T", result.Items)
		}
		seen += len(orders)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	if seen != 5 {
		t.Errorf("Expected to page through 5 orders, got %d", seen)
	}
}

func TestOrderHistoryGroupsItems(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-hist", "hist@example.com", "History User")
	addr := createTestAddress(t, db, user.ID)
	p1 := createTestProduct(t, db, "Esparadrapo", decimal.RequireFromString("12.00"), 50)
	p2 := createTestProduct(t, db, "Gaze", decimal.RequireFromString("8.00"), 50)

	for i := 0; i < 2; i++ {
		_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
			UserID:    user.ID,
			AddressID: addr.ID,
			Items: []store.OrderItemRequest{
				{ProductID: p1.ID, Quantity: 1, Price: p1.Price},
				{ProductID: p2.ID, Quantity: 2, Price: p2.Price},
			},
		})
		if err != nil {
			t.Fatalf("Create order %d: %v", i, err)
		}
	}

	orders, err := store.ListOrdersWithItems(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("List orders with items: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	for _, order := range orders {
		if len(order.Items) != 2 {
			t.Errorf("Order %d: expected 2 items, got %d", order.ID, len(order.Items))
		}
		expected := decimal.RequireFromString("28.00")
		if !order.TotalAmount.Equal(expected) {
			t.Errorf("Order %d: expected total %s, got %s", order.ID, expected, order.TotalAmount)
		}
	}
}

func TestSalesRangeReport(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := createTestUser(t, db, "oid-report", "report@example.com", "Report User")
	addr := createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "Termometro", decimal.RequireFromString("25.00"), 20)

	for i := 0; i < 3; i++ {
		_, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
			UserID:    user.ID,
			AddressID: addr.ID,
			Items: []store.OrderItemRequest{
				{ProductID: product.ID, Quantity: 1, Price: product.Price},
			},
		})
		if err != nil {
			t.Fatalf("Create order %d: %v", i, err)
		}
	}

	now := time.Now()
	sales, err := store.ListDailySales(ctx, db, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("List daily sales: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("Expected one rollup row, got %d", len(sales))
	}
	if sales[0].OrderCount != 3 {
		t.Errorf("Expected order count 3, got %d", sales[0].OrderCount)
	}
	if !sales[0].TotalSales.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("Expected total 75.00, got %s", sales[0].TotalSales)
	}

	monthly, err := store.ListMonthlySales(ctx, db, fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month())))
	if err != nil {
		t.Fatalf("List monthly sales: %v", err)
	}
	if len(monthly) != 1 {
		t.Errorf("Expected one rollup row for the month, got %d", len(monthly))
	}
}
