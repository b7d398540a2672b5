package domain

import "time"

// User is the credential record for an account. Looked up by email on every
// login and on every token verification; never mutated after registration.
type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}
