package models

type CreateTagRequest struct {
	Name string `json:"name"`
}
