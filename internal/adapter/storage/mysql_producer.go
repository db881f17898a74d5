package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/trichyfresh/connect/internal/core/domain"
)

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.ProducerID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.CategoryID, &p.ExpiryTypeID, &p.TalukID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const ownProductSelect = `
	SELECT product_id, producer_id, name, COALESCE(description, ''), price, quantity,
		category_id, expiry_type_id, taluk_id, created_at
	FROM products`

func (m *MySQLAdapter) getOwnProduct(ctx context.Context, producerID, productID int64) (*domain.Product, error) {
	row := m.db.QueryRowContext(ctx,
		ownProductSelect+` WHERE product_id = ? AND producer_id = ?`, productID, producerID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO products (producer_id, name, description, price, quantity, category_id, expiry_type_id, taluk_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ProducerID, p.Name, p.Description, p.Price, p.Quantity, p.CategoryID, p.ExpiryTypeID, p.TalukID)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return m.getOwnProduct(ctx, p.ProducerID, id)
}

func (m *MySQLAdapter) ListProducts(ctx context.Context, producerID int64) ([]domain.ProductView, error) {
	rows, err := m.db.QueryContext(ctx,
		productSelect+` WHERE p.producer_id = ? ORDER BY p.product_id DESC`, producerID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var views []domain.ProductView
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (m *MySQLAdapter) GetOwnProduct(ctx context.Context, producerID, productID int64) (*domain.ProductView, error) {
	row := m.db.QueryRowContext(ctx,
		productSelect+` WHERE p.product_id = ? AND p.producer_id = ?`, productID, producerID)
	v, err := scanProductView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return v, nil
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, producerID, productID int64, upd domain.ProductUpdate) (*domain.Product, error) {
	if _, err := m.getOwnProduct(ctx, producerID, productID); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.CategoryID != nil {
		add("category_id", *upd.CategoryID)
	}
	if upd.ExpiryTypeID != nil {
		add("expiry_type_id", *upd.ExpiryTypeID)
	}
	if upd.TalukID != nil {
		add("taluk_id", *upd.TalukID)
	}

	args = append(args, productID, producerID)
	query := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE product_id = ? AND producer_id = ?`
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return m.getOwnProduct(ctx, producerID, productID)
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, producerID, productID int64) error {
	res, err := m.db.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = ? AND producer_id = ?`, productID, producerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (m *MySQLAdapter) SetProductQuantity(ctx context.Context, producerID, productID int64, quantity int) (*domain.Product, error) {
	if _, err := m.getOwnProduct(ctx, producerID, productID); err != nil {
		return nil, err
	}
	_, err := m.db.ExecContext(ctx,
		`UPDATE products SET quantity = ? WHERE product_id = ? AND producer_id = ?`,
		quantity, productID, producerID)
	if err != nil {
		return nil, fmt.Errorf("update quantity: %w", err)
	}
	return m.getOwnProduct(ctx, producerID, productID)
}

func (m *MySQLAdapter) ListProducerOrders(ctx context.Context, producerID int64) ([]domain.ProducerOrder, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT DISTINCT o.order_id, o.order_date, o.total_amount, o.consumer_id,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.product_id
		LEFT JOIN users u ON o.consumer_id = u.user_id
		WHERE p.producer_id = ?
		ORDER BY o.order_date DESC
		LIMIT 200`, producerID)
	if err != nil {
		return nil, fmt.Errorf("query producer orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.ProducerOrder
	for rows.Next() {
		var o domain.ProducerOrder
		err := rows.Scan(&o.ID, &o.OrderDate, &o.TotalAmount, &o.ConsumerID, &o.ConsumerName, &o.ConsumerEmail)
		if err != nil {
			return nil, fmt.Errorf("scan producer order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (m *MySQLAdapter) GetProducerOrder(ctx context.Context, producerID, orderID int64) (*domain.ProducerOrder, []domain.OrderItem, error) {
	var o domain.ProducerOrder
	err := m.db.QueryRowContext(ctx,
		`SELECT order_id, order_date, total_amount, consumer_id FROM orders WHERE order_id = ?`,
		orderID,
	).Scan(&o.ID, &o.OrderDate, &o.TotalAmount, &o.ConsumerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query order: %w", err)
	}

	items, err := m.orderItems(ctx, orderID, producerID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		// the order exists but holds nothing of this producer's
		return nil, nil, domain.ErrForbidden
	}

	err = m.db.QueryRowContext(ctx,
		`SELECT name, email FROM users WHERE user_id = ?`, o.ConsumerID,
	).Scan(&o.ConsumerName, &o.ConsumerEmail)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("query consumer: %w", err)
	}
	return &o, items, nil
}

func (m *MySQLAdapter) ListProducerFavorites(ctx context.Context, producerID int64) ([]domain.ProducerFavorite, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT DISTINCT f.consumer_id, u.name, u.email, f.product_id, p.name, f.added_at
		FROM favorites f
		JOIN products p ON f.product_id = p.product_id
		JOIN users u ON f.consumer_id = u.user_id
		WHERE p.producer_id = ?
		ORDER BY f.added_at DESC
		LIMIT 500`, producerID)
	if err != nil {
		return nil, fmt.Errorf("query producer favorites: %w", err)
	}
	defer rows.Close()

	var favs []domain.ProducerFavorite
	for rows.Next() {
		var f domain.ProducerFavorite
		err := rows.Scan(&f.ConsumerID, &f.ConsumerName, &f.ConsumerEmail, &f.ProductID, &f.ProductName, &f.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("scan producer favorite: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (m *MySQLAdapter) Dashboard(ctx context.Context, producerID int64) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE producer_id = ?`, producerID,
	).Scan(&s.ProductCount)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	err = m.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT o.order_id)
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.product_id
		WHERE p.producer_id = ?`, producerID,
	).Scan(&s.OrdersCount)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	err = m.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT f.consumer_id)
		FROM favorites f
		JOIN products p ON f.product_id = p.product_id
		WHERE p.producer_id = ?`, producerID,
	).Scan(&s.FavoriteCount)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	return &s, nil
}
