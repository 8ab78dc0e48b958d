package models

import "time"

// User owns all financial data. Authentication is handled upstream;
// the API only needs the identity to scope queries.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
