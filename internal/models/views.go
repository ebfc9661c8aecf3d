package models

import "time"

// UserSummary is the author identity embedded in comment views.
type UserSummary struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserListItem is one row of the user list, carrying counts aggregated over
// the user's photos.
type UserListItem struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ID           string `json:"_id"`
	PhotoCount   int64  `json:"photoCount"`
	CommentCount int64  `json:"commentCount"`
}

// CommentView is a comment as returned to clients. When the author resolves,
// User is set and UserID is dropped; otherwise UserID is kept as stored.
type CommentView struct {
	ID       string       `json:"_id"`
	Comment  string       `json:"comment"`
	DateTime time.Time    `json:"date_time"`
	UserID   string       `json:"user_id,omitempty"`
	User     *UserSummary `json:"user,omitempty"`
}

// PhotoView is a photo with its comments' authors resolved.
type PhotoView struct {
	ID       string        `json:"_id"`
	FileName string        `json:"file_name"`
	DateTime time.Time     `json:"date_time"`
	UserID   string        `json:"user_id"`
	Comments []CommentView `json:"comments"`
}

// UserComment is a comment flattened out of one of a user's photos.
type UserComment struct {
	PhotoID string       `json:"photoId"`
	Text    string       `json:"text"`
	Date    time.Time    `json:"date"`
	User    *UserSummary `json:"user,omitempty"`
}

// CollectionCounts reports document counts per collection.
type CollectionCounts struct {
	User       int64 `json:"user"`
	Photo      int64 `json:"photo"`
	SchemaInfo int64 `json:"schemaInfo"`
}
