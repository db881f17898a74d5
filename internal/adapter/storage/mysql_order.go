package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/trichyfresh/connect/internal/core/domain"
)

// checkoutLine is a cart item joined with its product's locked stock and
// price, valid only inside the checkout transaction.
type checkoutLine struct {
	cartItemID int64
	productID  int64
	quantity   int
	stock      int
	unitPrice  decimal.Decimal
}

// CheckoutCart converts a cart into an order inside a single transaction.
// The locking read on the cart items and their product rows serializes
// concurrent checkouts that touch the same products, so stock can never go
// negative: the loser re-reads post-commit stock and fails validation if the
// winner drained it.
func (m *MySQLAdapter) CheckoutCart(ctx context.Context, consumerID, cartID int64) (*domain.Receipt, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if cartID == 0 {
		err = tx.QueryRowContext(ctx,
			`SELECT cart_id FROM carts WHERE consumer_id = ? ORDER BY created_at DESC, cart_id DESC LIMIT 1`,
			consumerID,
		).Scan(&cartID)
	} else {
		// an explicit cart id must belong to the caller
		err = tx.QueryRowContext(ctx,
			`SELECT cart_id FROM carts WHERE cart_id = ? AND consumer_id = ?`,
			cartID, consumerID,
		).Scan(&cartID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT ci.cart_item_id, ci.product_id, ci.quantity, p.quantity, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.product_id
		WHERE ci.cart_id = ?
		FOR UPDATE`, cartID)
	if err != nil {
		return nil, fmt.Errorf("lock cart items: %w", err)
	}

	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		if err := rows.Scan(&l.cartItemID, &l.productID, &l.quantity, &l.stock, &l.unitPrice); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("lock cart items: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock cart items: %w", err)
	}

	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.quantity > l.stock {
			return nil, &domain.InsufficientStockError{ProductID: l.productID}
		}
		total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (consumer_id, total_amount) VALUES (?, ?)`, consumerID, total)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, l := range lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`,
			orderID, l.productID, l.quantity, l.unitPrice)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET quantity = quantity - ? WHERE product_id = ?`,
			l.quantity, l.productID)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return nil, fmt.Errorf("clear cart items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE cart_id = ?`, cartID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return &domain.Receipt{OrderID: orderID, TotalAmount: total}, nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context, consumerID int64) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT order_id, total_amount, order_date FROM orders WHERE consumer_id = ? ORDER BY order_date DESC, order_id DESC`,
		consumerID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, consumerID, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx,
		`SELECT order_id, total_amount, order_date FROM orders WHERE order_id = ? AND consumer_id = ?`,
		orderID, consumerID,
	).Scan(&o.ID, &o.TotalAmount, &o.OrderDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query order: %w", err)
	}

	items, err := m.orderItems(ctx, orderID, 0)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

// orderItems lists an order's item snapshots with product names; a non-zero
// producerID restricts the lines to that producer's products.
func (m *MySQLAdapter) orderItems(ctx context.Context, orderID, producerID int64) ([]domain.OrderItem, error) {
	query := `
		SELECT oi.order_item_id, oi.product_id, oi.quantity, oi.unit_price, p.name, p.producer_id
		FROM order_items oi
		JOIN products p ON oi.product_id = p.product_id
		WHERE oi.order_id = ?`
	args := []any{orderID}
	if producerID != 0 {
		query += ` AND p.producer_id = ?`
		args = append(args, producerID)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.ProductName, &it.ProducerID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
