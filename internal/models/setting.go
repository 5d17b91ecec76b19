package models

// Setting is a named preference value. A nil UserID marks a global setting.
// (Name, UserID, Category) identifies a row.
type Setting struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_scope,priority:1" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	UserID      *uint64 `gorm:"uniqueIndex:idx_settings_scope,priority:2" json:"user_id"`
	Category    string  `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_settings_scope,priority:3" json:"category"`
	Value       string  `gorm:"type:text" json:"value"`
}
