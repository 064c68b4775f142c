package models

import "time"

type Category struct {
	ID          int64     `db:"id"`
	UserID      *int64    `db:"user_id"`
	ParentID    *int64    `db:"parent_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
