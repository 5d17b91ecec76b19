package dto

import (
	"encoding/json"

	"github.com/yukikurage/todo-tracker/internal/models"
)

// OptionDTO represents a stored setting in API responses
type OptionDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UserID      *uint64 `json:"user_id"`
	Category    string  `json:"category"`
	Value       string  `json:"value"`
}

// ResolvedOptionDTO is the effective value of an option for the caller
type ResolvedOptionDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Value    string `json:"value"`
}

// ResolveOptionQuery is the query of GET /api/options/resolve
type ResolveOptionQuery struct {
	Name     string `form:"name" binding:"required,max=100"`
	Category string `form:"category" binding:"max=50"`
	Default  string `form:"default"`
}

// CreateOptionRequest is the body of POST /api/options/
type CreateOptionRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	UserID      *uint64 `json:"user_id"`
	Category    string  `json:"category" binding:"max=50"`
	Value       string  `json:"value"`
}

// UpdateOptionRequest is the body of PUT /api/options/:id. A null user_id
// makes the option global.
type UpdateOptionRequest struct {
	Name        *string        `json:"name" binding:"omitempty,max=100"`
	Description *string        `json:"description"`
	UserID      OptionalUserID `json:"user_id" swaggertype:"integer"`
	Category    *string        `json:"category" binding:"omitempty,max=50"`
	Value       *string        `json:"value"`
}

// OptionalUserID distinguishes an omitted user_id from an explicit null.
type OptionalUserID struct {
	Set   bool
	Value *uint64
}

// UnmarshalJSON records that the field was present
func (o *OptionalUserID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uint64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// ToOptionDTO converts a Setting model to OptionDTO
func ToOptionDTO(setting models.Setting) OptionDTO {
	return OptionDTO{
		ID:          setting.ID,
		Name:        setting.Name,
		Description: setting.Description,
		UserID:      setting.UserID,
		Category:    setting.Category,
		Value:       setting.Value,
	}
}

// ToOptionDTOs converts a slice of settings
func ToOptionDTOs(settings []models.Setting) []OptionDTO {
	items := make([]OptionDTO, len(settings))
	for i, setting := range settings {
		items[i] = ToOptionDTO(setting)
	}
	return items
}
