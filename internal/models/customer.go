package models

import "time"

type Customer struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	NameNormalized string    `db:"name_normalized" json:"-"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	TaxNo          string    `db:"tax_no" json:"tax_no"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxNo   string `json:"tax_no"`
}
