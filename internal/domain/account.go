package domain

// Account Model
type Account struct {
	ID          uint    `gorm:"primaryKey"`           // Primary key
	Email       string  `gorm:"unique;not null"`      // Unique login email
	Password    string  `gorm:"not null" json:"-"`    // Hashed password, never serialized
	FullName    string  // Display name
	Phone       string  // Contact phone
	Role        string  `gorm:"default:user"`         // Role: user or admin
	IsActive    bool    `gorm:"default:true"`         // Account enabled flag
	TotalSpent  float64 `gorm:"not null;default:0"`   // Lifetime spend accumulator
	TotalOTPs   int     `gorm:"column:total_otps;not null;default:0"` // OTPs received counter
	NumbersUsed int     `gorm:"not null;default:0"`   // Numbers rented counter
	LastLogin   int64   // Timestamp of last login in milliseconds
	LastLoginIP string  // Origin address of last login
	CreatedAt   int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
	Wallet      Wallet  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // One-to-one relationship with Wallet
}
