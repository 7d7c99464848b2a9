package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

// Book is a catalog entry. Books have no owner and are hard-deleted.
type Book struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Author    string    `json:"author" bson:"author"`
	Category  string    `json:"category" bson:"category"`
	Rating    int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
