package models

import "time"

type Tenant struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug            string    `gorm:"type:varchar(100);unique;not null" json:"slug"`
	DefaultCurrency string    `gorm:"type:varchar(8);not null;default:'IDR'" json:"default_currency"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
