package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
)

const cartLineSelect = `
	SELECT ci.cart_item_id, ci.product_id, ci.quantity,
		p.name, p.price, p.quantity, p.producer_id, COALESCE(t.name, '')
	FROM cart_items ci
	JOIN carts c ON ci.cart_id = c.cart_id
	JOIN products p ON ci.product_id = p.product_id
	LEFT JOIN taluks t ON p.taluk_id = t.taluk_id`

func scanCartLine(row interface{ Scan(...any) error }) (*domain.CartLine, error) {
	var l domain.CartLine
	err := row.Scan(
		&l.CartItemID, &l.ProductID, &l.Quantity,
		&l.ProductName, &l.Price, &l.ProductStock, &l.ProducerID, &l.TalukName,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (m *MySQLAdapter) GetProductStock(ctx context.Context, productID int64) (int, error) {
	var stock int
	err := m.db.QueryRowContext(ctx,
		`SELECT quantity FROM products WHERE product_id = ?`, productID,
	).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query product stock: %w", err)
	}
	return stock, nil
}

func (m *MySQLAdapter) ListLines(ctx context.Context, consumerID int64) ([]domain.CartLine, error) {
	rows, err := m.db.QueryContext(ctx, cartLineSelect+` WHERE c.consumer_id = ?`, consumerID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, *l)
	}
	return lines, rows.Err()
}

func (m *MySQLAdapter) GetLine(ctx context.Context, consumerID, cartItemID int64) (*domain.CartLine, error) {
	row := m.db.QueryRowContext(ctx,
		cartLineSelect+` WHERE ci.cart_item_id = ? AND c.consumer_id = ?`,
		cartItemID, consumerID)
	l, err := scanCartLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart line: %w", err)
	}
	return l, nil
}

// getOrCreateCart returns the consumer's most recent cart, creating one when
// none exists.
func (m *MySQLAdapter) getOrCreateCart(ctx context.Context, consumerID int64) (int64, error) {
	var cartID int64
	err := m.db.QueryRowContext(ctx,
		`SELECT cart_id FROM carts WHERE consumer_id = ? ORDER BY created_at DESC, cart_id DESC LIMIT 1`,
		consumerID,
	).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query cart: %w", err)
	}

	res, err := m.db.ExecContext(ctx, `INSERT INTO carts (consumer_id) VALUES (?)`, consumerID)
	if err != nil {
		return 0, fmt.Errorf("create cart: %w", err)
	}
	return res.LastInsertId()
}

func (m *MySQLAdapter) UpsertLine(ctx context.Context, consumerID, productID int64, quantity int) (*domain.CartItem, bool, error) {
	cartID, err := m.getOrCreateCart(ctx, consumerID)
	if err != nil {
		return nil, false, err
	}

	var item domain.CartItem
	err = m.db.QueryRowContext(ctx,
		`SELECT cart_item_id, quantity FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID,
	).Scan(&item.ID, &item.Quantity)

	switch {
	case err == nil:
		item.ProductID = productID
		item.Quantity += quantity
		_, err = m.db.ExecContext(ctx,
			`UPDATE cart_items SET quantity = ? WHERE cart_item_id = ?`, item.Quantity, item.ID)
		if err != nil {
			return nil, false, fmt.Errorf("update cart item: %w", err)
		}
		return &item, false, nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := m.db.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)`,
			cartID, productID, quantity)
		if err != nil {
			return nil, false, fmt.Errorf("insert cart item: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("insert cart item: %w", err)
		}
		return &domain.CartItem{ID: id, ProductID: productID, Quantity: quantity}, true, nil

	default:
		return nil, false, fmt.Errorf("query cart item: %w", err)
	}
}

func (m *MySQLAdapter) SetLineQuantity(ctx context.Context, cartItemID int64, quantity int) (*domain.CartItem, error) {
	_, err := m.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE cart_item_id = ?`, quantity, cartItemID)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	var item domain.CartItem
	err = m.db.QueryRowContext(ctx,
		`SELECT cart_item_id, product_id, quantity FROM cart_items WHERE cart_item_id = ?`,
		cartItemID,
	).Scan(&item.ID, &item.ProductID, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart item: %w", err)
	}
	return &item, nil
}

func (m *MySQLAdapter) DeleteLine(ctx context.Context, cartItemID int64) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_item_id = ?`, cartItemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}
