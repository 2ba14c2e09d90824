package models

type AddPhotoRequest struct {
	URL string `json:"url"`
}
