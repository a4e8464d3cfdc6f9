package models

// ResearcherProfile holds researcher onboarding answers. Tags are stored as
// a comma-joined string and split on the way out, matching the API shape.
type ResearcherProfile struct {
	ID        int64  `bson:"_id" json:"id"`
	UserID    int64  `bson:"userId" json:"user_id"`
	Condition string `bson:"condition" json:"condition"`
	Location  string `bson:"location,omitempty" json:"location,omitempty"`
	Tags      string `bson:"tags,omitempty" json:"-"`
}

// PatientProfile holds patient onboarding answers.
type PatientProfile struct {
	ID        int64  `bson:"_id" json:"id"`
	UserID    int64  `bson:"userId" json:"user_id"`
	Condition string `bson:"condition" json:"condition"`
	Location  string `bson:"location,omitempty" json:"location,omitempty"`
}
