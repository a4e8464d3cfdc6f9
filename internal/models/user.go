package models

import "time"

// Role values stored on User and carried in token claims.
const (
	RolePatient    = 0
	RoleResearcher = 1
)

// User represents a platform account. IDs are integers allocated from the
// counters collection so they stay compatible with token claims and with
// clients that address users by numeric id.
type User struct {
	ID             int64     `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	HashedPassword string    `bson:"hashedPassword" json:"-"`
	Name           string    `bson:"name,omitempty" json:"name,omitempty"`
	Role           int       `bson:"role" json:"role"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	HasOnboarded   bool      `bson:"hasOnboarded" json:"hasOnboarded"`
}
