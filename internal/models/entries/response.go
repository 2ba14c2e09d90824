package models

// EntryResponse is the wire shape of an entry; Date is formatted as
// "YYYY-MM-DD HH:MM:SS".
type EntryResponse struct {
	ID          int64  `json:"id"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
	UserID      *int64 `json:"user_id"`
}

type CreateEntryResponse struct {
	ID int64 `json:"id"`
}
