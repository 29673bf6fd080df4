package model

import "time"

// User is referenced by id from bookings. Profile management lives in the
// identity service; this service only reads users to resolve requester
// names and the admin notification target. PasswordHash is excluded from
// JSON so a user loaded here can never leak credentials through a response.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	IsAdmin      bool      `json:"is_admin" bson:"is_admin"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
