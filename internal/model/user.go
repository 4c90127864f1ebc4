package model

import "time"

// User is a registered account owning zero or more wishlist items.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserName     string    `json:"user_name" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Items []Item `json:"items,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
