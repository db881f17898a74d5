package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
)

const productSelect = `
	SELECT
		p.product_id, p.producer_id, p.name, COALESCE(p.description, ''),
		p.price, p.quantity, p.category_id, p.expiry_type_id, p.taluk_id, p.created_at,
		COALESCE(pc.name, ''), COALESCE(et.name, ''), COALESCE(t.name, ''),
		COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM products p
	LEFT JOIN product_categories pc ON p.category_id = pc.category_id
	LEFT JOIN expiry_types et ON p.expiry_type_id = et.expiry_type_id
	LEFT JOIN taluks t ON p.taluk_id = t.taluk_id
	LEFT JOIN users u ON p.producer_id = u.user_id`

func scanProductView(row interface{ Scan(...any) error }) (*domain.ProductView, error) {
	var v domain.ProductView
	err := row.Scan(
		&v.ID, &v.ProducerID, &v.Name, &v.Description,
		&v.Price, &v.Quantity, &v.CategoryID, &v.ExpiryTypeID, &v.TalukID, &v.CreatedAt,
		&v.CategoryName, &v.ExpiryName, &v.TalukName,
		&v.ProducerName, &v.ProducerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (m *MySQLAdapter) SearchProducts(ctx context.Context, consumerID int64, f domain.ProductFilter) ([]domain.ProductView, error) {
	where := " WHERE p.quantity > 0"
	var args []any

	if f.TalukID != 0 {
		where += " AND p.taluk_id = ?"
		args = append(args, f.TalukID)
	}
	if f.Query != "" {
		where += " AND (p.name LIKE ? OR p.description LIKE ?)"
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}
	if f.CategoryID != 0 {
		where += " AND p.category_id = ?"
		args = append(args, f.CategoryID)
	}
	if f.ExpiryTypeID != 0 {
		where += " AND p.expiry_type_id = ?"
		args = append(args, f.ExpiryTypeID)
	}

	orderBy := " ORDER BY p.product_id DESC"
	switch f.Sort {
	case domain.SortPriceAsc:
		orderBy = " ORDER BY p.price ASC"
	case domain.SortPriceDesc:
		orderBy = " ORDER BY p.price DESC"
	}

	query := productSelect + where + orderBy + " LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	if err := m.annotateConsumerFlags(ctx, consumerID, views); err != nil {
		return nil, err
	}
	return views, nil
}

// annotateConsumerFlags fills IsFavorite and InCartQuantity for a result page.
func (m *MySQLAdapter) annotateConsumerFlags(ctx context.Context, consumerID int64, views []domain.ProductView) error {
	if len(views) == 0 {
		return nil
	}

	args := make([]any, 0, len(views)+1)
	args = append(args, consumerID)
	for _, v := range views {
		args = append(args, v.ID)
	}
	in := placeholders(len(views))

	favRows, err := m.db.QueryContext(ctx,
		`SELECT product_id FROM favorites WHERE consumer_id = ? AND product_id IN (`+in+`)`, args...)
	if err != nil {
		return fmt.Errorf("query favorites: %w", err)
	}
	defer favRows.Close()

	favs := make(map[int64]bool)
	for favRows.Next() {
		var id int64
		if err := favRows.Scan(&id); err != nil {
			return fmt.Errorf("scan favorite: %w", err)
		}
		favs[id] = true
	}
	if err := favRows.Err(); err != nil {
		return fmt.Errorf("query favorites: %w", err)
	}

	cartRows, err := m.db.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.cart_id
		WHERE c.consumer_id = ? AND ci.product_id IN (`+in+`)`, args...)
	if err != nil {
		return fmt.Errorf("query cart quantities: %w", err)
	}
	defer cartRows.Close()

	inCart := make(map[int64]int)
	for cartRows.Next() {
		var id int64
		var qty int
		if err := cartRows.Scan(&id, &qty); err != nil {
			return fmt.Errorf("scan cart quantity: %w", err)
		}
		inCart[id] = qty
	}
	if err := cartRows.Err(); err != nil {
		return fmt.Errorf("query cart quantities: %w", err)
	}

	for i := range views {
		views[i].IsFavorite = favs[views[i].ID]
		views[i].InCartQuantity = inCart[views[i].ID]
	}
	return nil
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, consumerID, productID int64) (*domain.ProductView, error) {
	row := m.db.QueryRowContext(ctx, productSelect+` WHERE p.product_id = ?`, productID)
	v, err := scanProductView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	var favCount int
	err = m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE consumer_id = ? AND product_id = ?`,
		consumerID, productID,
	).Scan(&favCount)
	if err != nil {
		return nil, fmt.Errorf("query favorite flag: %w", err)
	}
	v.IsFavorite = favCount > 0

	err = m.db.QueryRowContext(ctx, `
		SELECT IFNULL(SUM(ci.quantity), 0)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.cart_id
		WHERE c.consumer_id = ? AND ci.product_id = ?`,
		consumerID, productID,
	).Scan(&v.InCartQuantity)
	if err != nil {
		return nil, fmt.Errorf("query cart quantity: %w", err)
	}

	return v, nil
}

func (m *MySQLAdapter) GetProducerContact(ctx context.Context, productID int64) (*domain.ProducerContact, error) {
	var c domain.ProducerContact
	err := m.db.QueryRowContext(ctx, `
		SELECT u.user_id, u.name, u.email, COALESCE(t.taluk_id, 0), COALESCE(t.name, '')
		FROM products p
		JOIN users u ON p.producer_id = u.user_id
		LEFT JOIN taluks t ON p.taluk_id = t.taluk_id
		WHERE p.product_id = ?`, productID,
	).Scan(&c.ProducerID, &c.ProducerName, &c.ProducerEmail, &c.TalukID, &c.TalukName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query producer contact: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) listLookup(ctx context.Context, query string) ([]domain.Lookup, error) {
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	var out []domain.Lookup
	for rows.Next() {
		var l domain.Lookup
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan lookup: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) ListCategories(ctx context.Context) ([]domain.Lookup, error) {
	return m.listLookup(ctx, `SELECT category_id, name FROM product_categories ORDER BY name`)
}

func (m *MySQLAdapter) ListExpiryTypes(ctx context.Context) ([]domain.Lookup, error) {
	return m.listLookup(ctx, `SELECT expiry_type_id, name FROM expiry_types ORDER BY name`)
}

func (m *MySQLAdapter) ListTaluks(ctx context.Context) ([]domain.Lookup, error) {
	return m.listLookup(ctx, `SELECT taluk_id, name FROM taluks ORDER BY name`)
}
