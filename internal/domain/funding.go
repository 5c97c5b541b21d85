package domain

// Funding request status values.
const (
	FundingStatusPending  = "pending"
	FundingStatusApproved = "approved"
	FundingStatusRejected = "rejected"
)

// Accepted payment methods for funding requests.
const (
	FundingMethodUPI    = "upi"
	FundingMethodBank   = "bank"
	FundingMethodCrypto = "crypto"
)

// FundingRequest Model. A claim of an off-platform payment awaiting manual
// verification; creating one never moves money.
type FundingRequest struct {
	ID        uint    `gorm:"primaryKey"`            // Primary key
	PublicID  string  `gorm:"uniqueIndex;size:36"`   // External request id (uuid)
	UserID    uint    `gorm:"index;not null"`        // Foreign key to Account
	Amount    float64 `gorm:"not null"`              // Requested credit amount
	Method    string  `gorm:"not null"`              // Payment method: upi, bank, crypto
	Reference string  // Optional transaction reference (e.g. UTR) for manual matching
	Status    string  `gorm:"default:pending;index"` // Request status
	CreatedAt int64   `gorm:"autoCreateTime:milli"`  // Timestamp of creation in milliseconds
}
