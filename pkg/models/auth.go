package models

// UserRead is the public view of an account
type UserRead struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DeleteResponse is returned by DELETE /posts/:id
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
