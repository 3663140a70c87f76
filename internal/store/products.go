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

type CreateProductParams struct {
	Name        string
	Description string
	CategoryID  int64
	Price       decimal.Decimal
	Image       string
	// InitialStock seeds the inventory row when > 0.
	InitialStock int
}

func CreateProduct(ctx context.Context, db *sql.DB, params CreateProductParams) (*models.Product, error) {
	product := &models.Product{}

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		query := `
			INSERT INTO products (name, description, category_id, price, image, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
			RETURNING id, name, description, category_id, price, image, active, created_at, updated_at`

		err := tx.QueryRowContext(ctx, query,
			params.Name, params.Description, params.CategoryID, params.Price, params.Image).Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.CategoryID,
			&product.Price,
			&product.Image,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		if params.InitialStock > 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO inventory (product_id, quantity, updated_at) VALUES ($1, $2, NOW())`,
				product.ID, params.InitialStock)
			if err != nil {
				return fmt.Errorf("create inventory: %w", err)
			}
			product.Inventory = params.InitialStock
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct loads an active product together with its stock quantity
// and any promotions currently in their active window. Deactivated
// products read as not found.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*models.Product, error) {
	product := &models.Product{}

	query := `
		SELECT p.id, p.name, p.description, p.category_id, p.price, p.image, p.active,
		       p.created_at, p.updated_at, COALESCE(i.quantity, 0)
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id = $1 AND p.active`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.CategoryID,
		&product.Price,
		&product.Image,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Inventory,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	promotions, err := ListActivePromotions(ctx, db, id)
	if err != nil {
		return nil, err
	}
	product.Promotions = promotions

	return product, nil
}

func ListProducts(ctx context.Context, db *sql.DB, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, name, description, category_id, price, image, active, created_at, updated_at
		FROM products
		WHERE active
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.CategoryID,
			&product.Price,
			&product.Image,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

type UpdateProductParams struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Active      bool
}

func UpdateProduct(ctx context.Context, db *sql.DB, params UpdateProductParams) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, image = $4, active = $5, updated_at = NOW()
		 WHERE id = $6`,
		params.Name, params.Description, params.Price, params.Image, params.Active, params.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

// DeactivateProduct soft-deletes: the product stays referenced by past
// order items but drops out of listings.
func DeactivateProduct(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrProductNotFound
	}

	return nil
}

func GetInventory(ctx context.Context, db *sql.DB, productID int64) (*models.Inventory, error) {
	inv := &models.Inventory{}

	query := `
		SELECT id, product_id, quantity, updated_at
		FROM inventory
		WHERE product_id = $1`

	err := db.QueryRowContext(ctx, query, productID).Scan(
		&inv.ID,
		&inv.ProductID,
		&inv.Quantity,
		&inv.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}

	return inv, nil
}

func UpsertInventory(ctx context.Context, db *sql.DB, productID int64, quantity int) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory (product_id, quantity, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (product_id) DO UPDATE
		 SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		productID, quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}

	return nil
}

func ListActivePromotions(ctx context.Context, db *sql.DB, productID int64) ([]models.Promotion, error) {
	query := `
		SELECT id, product_id, discount_percent, start_date, end_date, active, created_at
		FROM promotions
		WHERE product_id = $1
		  AND active
		  AND start_date <= CURRENT_DATE
		  AND end_date >= CURRENT_DATE
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []models.Promotion
	for rows.Next() {
		var p models.Promotion
		err := rows.Scan(
			&p.ID,
			&p.ProductID,
			&p.DiscountPercent,
			&p.StartDate,
			&p.EndDate,
			&p.Active,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return promotions, nil
}

func CreatePromotion(ctx context.Context, db *sql.DB, productID int64, discountPercent decimal.Decimal, startDate, endDate time.Time) (*models.Promotion, error) {
	promo := &models.Promotion{}

	query := `
		INSERT INTO promotions (product_id, discount_percent, start_date, end_date, active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		RETURNING id, product_id, discount_percent, start_date, end_date, active, created_at`

	err := db.QueryRowContext(ctx, query, productID, discountPercent, startDate, endDate).Scan(
		&promo.ID,
		&promo.ProductID,
		&promo.DiscountPercent,
		&promo.StartDate,
		&promo.EndDate,
		&promo.Active,
		&promo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	return promo, nil
}

func DeactivatePromotion(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE promotions SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate promotion: %w", err)
	}

	return nil
}

func ListCategories(ctx context.Context, db *sql.DB) ([]models.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

func CreateCategory(ctx context.Context, db *sql.DB, name, description string) (*models.Category, error) {
	category := &models.Category{}

	query := `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, name, description, created_at`

	err := db.QueryRowContext(ctx, query, name, description).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}
