package models

type CreateEntryRequest struct {
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// UpdateEntryRequest is a partial update: nil fields keep their current values.
type UpdateEntryRequest struct {
	Location    *string `json:"location"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

type AttachTagRequest struct {
	TagID int64 `json:"tag_id"`
}
