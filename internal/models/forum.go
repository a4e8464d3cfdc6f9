package models

import "time"

// ForumCategory groups forum posts. Names are unique.
type ForumCategory struct {
	ID   int64  `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// ForumPost is a discussion thread. Replies holds the reply count and is
// maintained by the forum repository when replies are added or removed.
type ForumPost struct {
	ID         int64     `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Author     string    `bson:"author" json:"author"`
	Role       string    `bson:"role" json:"role"`
	CategoryID int64     `bson:"categoryId" json:"category_id"`
	Replies    int       `bson:"replies" json:"replies"`
	Preview    string    `bson:"preview,omitempty" json:"preview,omitempty"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// ForumReply is a reply within a post's thread.
type ForumReply struct {
	ID        int64     `bson:"_id" json:"id"`
	PostID    int64     `bson:"postId" json:"post_id"`
	Author    string    `bson:"author" json:"author"`
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
