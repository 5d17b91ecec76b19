package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       uint64    `gorm:"not null;index" json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT" json:"role"`
}

// Can reports whether the user's role grants the capability.
// The Role relation must be loaded.
func (u User) Can(capability Capability) bool {
	return u.Role.Grants(capability)
}
