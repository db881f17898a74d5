package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
)

func (m *MySQLAdapter) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	var existing int64
	err := m.db.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE email = ?`, u.Email).Scan(&existing)
	if err == nil {
		return 0, domain.ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query user: %w", err)
	}

	var taluk any
	if u.TalukID != 0 {
		taluk = u.TalukID
	}
	res, err := m.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, role, taluk_id) VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Role, taluk)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var taluk sql.NullInt64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &taluk, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.TalukID = taluk.Int64
	return &u, nil
}

const userSelect = `SELECT user_id, name, email, password_hash, role, taluk_id, created_at FROM users`

func (m *MySQLAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(m.db.QueryRowContext(ctx, userSelect+` WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (m *MySQLAdapter) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(m.db.QueryRowContext(ctx, userSelect+` WHERE user_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (m *MySQLAdapter) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := m.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE user_id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
