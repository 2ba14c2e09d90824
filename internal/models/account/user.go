package models

import "time"

// User is a registered account row. PasswordHash is the bcrypt digest and is
// never serialized into API responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
