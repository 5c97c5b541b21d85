package domain

// Wallet Model
type Wallet struct {
	ID        uint    `gorm:"primaryKey"`           // Primary key
	UserID    uint    `gorm:"uniqueIndex"`          // Foreign key to Account
	Balance   float64 `gorm:"not null;default:0"`   // Spendable balance, never driven negative
	CreatedAt int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
