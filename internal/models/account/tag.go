package models

import "time"

// Tag is a user-defined label, many-to-many with entries.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
