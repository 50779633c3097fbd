package domain

import "time"

type User struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(80);not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"type:varchar(120);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(120);not null"`
	FirstName    string    `json:"firstName" gorm:"type:varchar(50);not null"`
	LastName     string    `json:"lastName" gorm:"type:varchar(50);not null"`
	Address      string    `json:"address,omitempty" gorm:"type:text"`
	Phone        string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
}

// Principal is the authenticated identity for one request. It is passed
// explicitly into every service call; there is no ambient current user.
type Principal struct {
	UserID  uint64
	Email   string
	IsAdmin bool
}
