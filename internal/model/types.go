package model

// User represents an account in the system. PasswordHash is never serialized
// in API responses; it only crosses the store boundary.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Image        string   `json:"image"`
	Dreams       []string `json:"dreams"`
}

// Dream is a user-owned record. Creator and Image are immutable after
// creation; only Title and Description may change.
type Dream struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Creator     string `json:"creator"`
}
