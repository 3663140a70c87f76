package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saudecerta/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// IncrementDailySales adds one order of the given amount to the day's
// rollup. The upsert is a single statement so concurrent checkouts on
// the same date cannot lose updates; both counters only move up.
func IncrementDailySales(ctx context.Context, tx *sql.Tx, at time.Time, amount decimal.Decimal) error {
	day := calendarDay(at)

	_, err := tx.ExecContext(ctx,
		`INSERT INTO daily_sales (date, total_sales, order_count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (date) DO UPDATE
		 SET total_sales = daily_sales.total_sales + EXCLUDED.total_sales,
		     order_count = daily_sales.order_count + 1`,
		day, amount)
	if err != nil {
		return fmt.Errorf("increment daily sales: %w", err)
	}

	return nil
}

// GetDailySales returns the rollup row for a calendar day, or nil when
// no order was placed that day.
func GetDailySales(ctx context.Context, db *sql.DB, date time.Time) (*models.DailySales, error) {
	sales := &models.DailySales{}

	query := `
		SELECT id, date, total_sales, order_count
		FROM daily_sales
		WHERE date = $1`

	err := db.QueryRowContext(ctx, query, calendarDay(date)).Scan(
		&sales.ID,
		&sales.Date,
		&sales.TotalSales,
		&sales.OrderCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily sales: %w", err)
	}

	return sales, nil
}

func ListDailySales(ctx context.Context, db *sql.DB, start, end time.Time) ([]models.DailySales, error) {
	query := `
		SELECT id, date, total_sales, order_count
		FROM daily_sales
		WHERE date >= $1 AND date <= $2
		ORDER BY date`

	rows, err := db.QueryContext(ctx, query, calendarDay(start), calendarDay(end))
	if err != nil {
		return nil, fmt.Errorf("list daily sales: %w", err)
	}
	defer rows.Close()

	var sales []models.DailySales
	for rows.Next() {
		var s models.DailySales
		if err := rows.Scan(&s.ID, &s.Date, &s.TotalSales, &s.OrderCount); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return sales, nil
}

// ListMonthlySales returns all rollup rows of a month given as
// "2006-01".
func ListMonthlySales(ctx context.Context, db *sql.DB, yearMonth string) ([]models.DailySales, error) {
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, fmt.Errorf("parse month %q: %w", yearMonth, err)
	}
	end := start.AddDate(0, 1, -1)

	return ListDailySales(ctx, db, start, end)
}
