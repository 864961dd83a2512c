package domain

import "time"

type ID string

// Comment links a responder to a post by id only; neither side is checked
// to exist.
type Comment struct {
	ID          ID        `json:"id"`
	PostID      string    `json:"postId"`
	ResponderID string    `json:"responderId"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
