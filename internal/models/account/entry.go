package models

import "time"

// Entry is a journal entry row. UserID is nil when the entry was created
// without a token.
type Entry struct {
	ID          int64     `json:"id"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	UserID      *int64    `json:"user_id"`
	CreatedAt   time.Time `json:"createdAt"`
}
