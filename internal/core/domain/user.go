package domain

import "time"

type Role string

const (
	RoleConsumer Role = "Consumer"
	RoleProducer Role = "Producer"
)

type User struct {
	ID           int64     `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	TalukID      int64     `json:"taluk_id,omitempty"` // 0 when the user has no region
	CreatedAt    time.Time `json:"created_at,omitzero"`
}
