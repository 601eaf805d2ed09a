package models

import "time"

// PortfolioItem is a single holding in a user's portfolio. PurchasePrice is
// stored in minor currency units (cents) exactly as submitted; quantity is a
// whole share count. Rows are only ever read or written with a user_id
// predicate, enforcing per-user isolation at the query level.
type PortfolioItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	Symbol        string    `gorm:"not null" json:"symbol"`
	Name          string    `gorm:"not null" json:"name"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	PurchasePrice int64     `gorm:"type:bigint;not null" json:"purchasePrice"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName keeps the historical table name, singular.
func (PortfolioItem) TableName() string { return "portfolio" }
