package models

import "time"

// Setting is a key-value pair for application preferences. Values are stored
// as text; booleans and JSON structures are decoded on read.
type Setting struct {
	Key       string    `json:"key" db:"setting_key" binding:"required"`
	Value     *string   `json:"value,omitempty" db:"setting_value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
