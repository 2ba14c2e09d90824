package models

import "time"

// Photo is a URL reference to externally hosted media, owned by one entry.
type Photo struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	EntryID    int64     `json:"entry_id"`
	UploadedAt time.Time `json:"uploadedAt"`
}
