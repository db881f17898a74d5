package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
)

func (m *MySQLAdapter) AddFavorite(ctx context.Context, consumerID, productID int64) error {
	var exists int64
	err := m.db.QueryRowContext(ctx,
		`SELECT product_id FROM products WHERE product_id = ?`, productID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("query product: %w", err)
	}

	// duplicate favorites are a silent no-op
	_, err = m.db.ExecContext(ctx,
		`INSERT IGNORE INTO favorites (consumer_id, product_id) VALUES (?, ?)`,
		consumerID, productID)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) RemoveFavorite(ctx context.Context, consumerID, productID int64) error {
	res, err := m.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE consumer_id = ? AND product_id = ?`, consumerID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (m *MySQLAdapter) ListFavorites(ctx context.Context, consumerID int64) ([]domain.FavoriteProduct, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT f.product_id, p.name, p.price, p.quantity, p.taluk_id, COALESCE(t.name, ''), p.producer_id, f.added_at
		FROM favorites f
		JOIN products p ON f.product_id = p.product_id
		LEFT JOIN taluks t ON p.taluk_id = t.taluk_id
		WHERE f.consumer_id = ?
		ORDER BY f.added_at DESC`, consumerID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favs []domain.FavoriteProduct
	for rows.Next() {
		var f domain.FavoriteProduct
		err := rows.Scan(&f.ProductID, &f.Name, &f.Price, &f.Quantity, &f.TalukID, &f.TalukName, &f.ProducerID, &f.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}
