// Package model defines the records the blog stores: users, posts and comments.
//
// Records are plain data. They carry no behaviour beyond construction and
// never validate their own fields; the service layer decides what is allowed.
//
// IDENTIFIERS:
// Every record has an int64 ID assigned by storage on first persistence.
// Zero means "not persisted yet": every backend starts numbering at 1, so a
// stored record never has ID 0.
//
// The `json:"..."` tags define the API wire format; the `db:"..."` tags map
// columns for sqlx and pgx row scanning.
package model

// User is an account that can author posts and comments.
type User struct {
	ID       int64  `json:"id"       db:"id"`
	Username string `json:"username" db:"username"` // unique
	Email    string `json:"email"    db:"email"`    // unique
}

// NewUser builds a User that has not been stored yet.
func NewUser(username, email string) User {
	return User{Username: username, Email: email}
}
