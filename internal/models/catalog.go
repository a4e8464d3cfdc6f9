package models

import "time"

// Contact details attached to trials and experts.
type Contact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Trial is a clinical trial listing.
type Trial struct {
	ID          int64    `bson:"_id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Phase       string   `bson:"phase,omitempty" json:"phase,omitempty"`
	Location    string   `bson:"location,omitempty" json:"location,omitempty"`
	Summary     string   `bson:"summary,omitempty" json:"summary,omitempty"`
	Recruiting  bool     `bson:"recruiting" json:"recruiting"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Eligibility []string `bson:"eligibility,omitempty" json:"eligibility"`
	Contact     *Contact `bson:"contact,omitempty" json:"contact,omitempty"`
	Institution string   `bson:"institution,omitempty" json:"institution,omitempty"`
	Enrollment  string   `bson:"enrollment,omitempty" json:"enrollment,omitempty"`
	Status      string   `bson:"status" json:"status"`
}

// Expert is a domain-expert listing.
type Expert struct {
	ID           int64     `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Specialty    string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Institution  string    `bson:"institution,omitempty" json:"institution,omitempty"`
	Expertise    []string  `bson:"expertise,omitempty" json:"expertise"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Education    []string  `bson:"education,omitempty" json:"education"`
	Publications int       `bson:"publications" json:"publications"`
	Contact      *Contact  `bson:"contact,omitempty" json:"contact,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}

// Publication is a research publication listing. PDFKey points at the
// attached full text in object storage when one has been uploaded.
type Publication struct {
	ID           int64     `bson:"_id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Authors      string    `bson:"authors,omitempty" json:"authors,omitempty"`
	Journal      string    `bson:"journal,omitempty" json:"journal,omitempty"`
	Year         string    `bson:"year,omitempty" json:"year,omitempty"`
	Abstract     string    `bson:"abstract,omitempty" json:"abstract,omitempty"`
	Tags         []string  `bson:"tags,omitempty" json:"tags"`
	DOI          string    `bson:"doi,omitempty" json:"doi,omitempty"`
	FullAbstract string    `bson:"fullAbstract,omitempty" json:"fullAbstract,omitempty"`
	Methodology  string    `bson:"methodology,omitempty" json:"methodology,omitempty"`
	Results      string    `bson:"results,omitempty" json:"results,omitempty"`
	Conclusion   string    `bson:"conclusion,omitempty" json:"conclusion,omitempty"`
	UserID       int64     `bson:"userId" json:"user_id"`
	PDFKey       string    `bson:"pdfKey,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}
