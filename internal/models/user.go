package models

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Age          int    `json:"age"`
}

// AuthResult is the outcome of the authenticate procedure. There is no
// session token: on success the caller adopts the echoed email as its
// subject identifier and keeps it client-side for as long as it likes.
type AuthResult struct {
	Success bool   `json:"success"`
	Email   string `json:"email,omitempty"`
	Error   string `json:"error,omitempty"`
}
