package domain

import "time"

type ID string

type Post struct {
	ID        ID        `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
