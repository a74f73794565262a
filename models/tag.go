package models

import "time"

// DefaultTagColor is applied when a tag is created without one.
const DefaultTagColor = "#3B82F6"

type Tag struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
