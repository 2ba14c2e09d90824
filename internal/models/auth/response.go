package models

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ProfileResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
