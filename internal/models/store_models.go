package models

import "time"

// Store is a point-of-sale location. IDs are short strings ("main", ...)
// chosen by the user or generated at creation time.
type Store struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	IsMain    bool      `json:"isMain" db:"is_main"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
