package domain

// Activity action kinds recorded by the workflows.
const (
	ActivitySignup  = "signup"
	ActivityLogin   = "login"
	ActivityOrder   = "order"
	ActivityPayment = "payment"
)

// ActivityRecord Model. Append-only audit entry; never updated or deleted.
type ActivityRecord struct {
	ID        uint   `gorm:"primaryKey"`           // Primary key
	UserID    uint   `gorm:"index;not null"`       // Foreign key to Account
	Action    string `gorm:"not null"`             // Action kind
	Details   string // Human-readable description
	IP        string // Origin address of the request
	UserAgent string // Client descriptor
	CreatedAt int64  `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
