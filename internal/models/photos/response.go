package models

type PhotoResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}
