package models

import "time"

// Content kinds a favourite can point at.
const (
	ContentTrial       = "trial"
	ContentExpert      = "expert"
	ContentPublication = "publication"
)

// Favourite is a user's bookmark of a trial, expert or publication.
// The (userId, contentType, contentId) triple is unique.
type Favourite struct {
	ID          int64     `bson:"_id" json:"id"`
	UserID      int64     `bson:"userId" json:"-"`
	ContentType string    `bson:"contentType" json:"content_type"`
	ContentID   int64     `bson:"contentId" json:"content_id"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}
