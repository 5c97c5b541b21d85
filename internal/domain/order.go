package domain

// Order status values. Orders start pending and are advanced by the
// fulfillment side; they never move back.
const (
	OrderStatusPending   = "pending"
	OrderStatusFulfilled = "fulfilled"
	OrderStatusFailed    = "failed"
	OrderStatusExpired   = "expired"
)

// Order Model
type Order struct {
	ID        uint    `gorm:"primaryKey"`            // Primary key
	PublicID  string  `gorm:"uniqueIndex;size:36"`   // External order id (uuid)
	UserID    uint    `gorm:"index;not null"`        // Foreign key to Account
	Service   string  `gorm:"not null"`              // Rented service identifier
	Country   string  `gorm:"not null"`              // Number country
	Duration  int     `gorm:"not null"`              // Rental duration in minutes
	Price     float64 `gorm:"not null"`              // Derived price, never user-supplied
	Status    string  `gorm:"default:pending;index"` // Order status
	CreatedAt int64   `gorm:"autoCreateTime:milli"`  // Timestamp of creation in milliseconds
	ExpiresAt int64   `gorm:"not null"`              // CreatedAt + Duration in milliseconds
}
