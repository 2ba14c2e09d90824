package models

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
