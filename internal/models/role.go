package models

// Role is a named permission group. The "admin" role is built in.
type Role struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(200)" json:"description"`
}

// Grants reports whether holders of the role have the capability.
func (r Role) Grants(capability Capability) bool {
	for _, c := range roleCapabilities[r.Name] {
		if c == capability {
			return true
		}
	}
	return false
}
