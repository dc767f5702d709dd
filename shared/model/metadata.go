package model

import "time"

// Timestamps is embedded by rows that track creation and modification time.
// UpdatedAt stays nil until the first update.
type Timestamps struct {
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}
