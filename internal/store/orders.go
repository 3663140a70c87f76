package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	UserID    int64
	AddressID int64
	Items     []OrderItemRequest
	// ShippingCost is added on top of the item subtotal. Zero for the
	// card flow, where the hosted checkout charges items only.
	ShippingCost decimal.Decimal
}

type OrderItemRequest struct {
	ProductID int64
	Quantity  int
	// Price is the unit price at purchase time, snapshotted into the
	// order item.
	Price decimal.Decimal
}

// Subtotal sums price times quantity over all items, decimal-exact.
func Subtotal(items []OrderItemRequest) decimal.Decimal {
	var sum decimal.Decimal
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// ValidateItems rejects a cart before anything touches the database:
// it must have at least one line and every quantity must be >= 1.
func ValidateItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return database.ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("product %d: %w", item.ProductID, database.ErrInvalidQuantity)
		}
	}
	return nil
}

// CreateOrder persists the order header, its items, and the daily
// sales increment as one serializable transaction. Either everything
// lands or nothing does; a header without items is never observable.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (*models.Order, error) {
	if err := ValidateItems(req.Items); err != nil {
		return nil, err
	}

	totalAmount := Subtotal(req.Items).Add(req.ShippingCost)

	var order *models.Order

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM user_addresses WHERE id = $1 AND user_id = $2)",
			req.AddressID, req.UserID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check address exists: %w", err)
		}
		if !exists {
			return database.ErrAddressNotFound
		}

		order = &models.Order{
			UserID:      req.UserID,
			TotalAmount: totalAmount,
			Status:      models.OrderStatusPending,
			AddressID:   req.AddressID,
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, total_amount, status, address_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW())
			 RETURNING id, created_at, updated_at`,
			req.UserID, totalAmount, models.OrderStatusPending, req.AddressID).Scan(
			&order.ID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range req.Items {
			var created models.OrderItem
			err = tx.QueryRowContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				order.ID, item.ProductID, item.Quantity, item.Price).Scan(&created.ID)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			created.OrderID = order.ID
			created.ProductID = item.ProductID
			created.Quantity = item.Quantity
			created.Price = item.Price
			order.Items = append(order.Items, created)
		}

		return IncrementDailySales(ctx, tx, order.CreatedAt, totalAmount)
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, user_id, total_amount, status, address_id, created_at, updated_at
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.AddressID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

// ListOrdersCursor pages through a user's order history, newest first.
func ListOrdersCursor(ctx context.Context, db *sql.DB, userID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT id, user_id, total_amount, status, address_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		  AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	rows, err := db.QueryContext(ctx, query, userID, cursorData.CreatedAt, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.Status,
			&order.AddressID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: lastOrder.CreatedAt,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// ListOrdersWithItems loads a user's full order history including line
// items, for the order-history page.
func ListOrdersWithItems(ctx context.Context, db *sql.DB, userID int64) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total_amount, o.status, o.address_id, o.created_at, o.updated_at,
		       i.id, i.product_id, i.quantity, i.price
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, i.id`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders with items: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var item models.OrderItem

		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.Status,
			&order.AddressID,
			&order.CreatedAt,
			&order.UpdatedAt,
			&item.ID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		item.OrderID = order.ID
		if n := len(orders); n > 0 && orders[n-1].ID == order.ID {
			orders[n-1].Items = append(orders[n-1].Items, item)
		} else {
			order.Items = []models.OrderItem{item}
			orders = append(orders, order)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// calendarDay truncates a timestamp to its UTC calendar date, the key
// of the daily sales rollup.
func calendarDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
