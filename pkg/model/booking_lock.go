package model

import "time"

// RoomLock is an advisory lock serializing booking creation per room. The
// lock id is derived from the room id, so two concurrent proposals for the
// same room contend on the same document regardless of their intervals.
// A TTL index on expires_at reaps locks left behind by crashed requests.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
