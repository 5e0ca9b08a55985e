package models

import "time"

type Employee struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Position  string    `db:"position" json:"position"`
	Salary    float64   `db:"salary" json:"salary"`
	Currency  string    `db:"currency" json:"currency"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
