// internal/domain/user.go
package domain

// User represents a registered user of the banking API.
type User struct {
	ID           int64  `db:"id" json:"id"`             // Primary key, BIGSERIAL in DB
	Username     string `db:"username" json:"username"` // Unique username
	Email        string `db:"email" json:"email"`       // Unique email
	PasswordHash string `db:"password_hash" json:"-"`   // bcrypt hash, never serialized
}

// NewUser creates a new User instance with an already-hashed credential.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
