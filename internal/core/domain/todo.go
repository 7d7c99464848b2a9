package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")

// Todo is an owned task item. Valid implements soft deletion: deleted todos
// keep their document but are hidden from every read path.
type Todo struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Priority    int       `json:"priority" bson:"priority"`
	Complete    bool      `json:"complete" bson:"complete"`
	Valid       bool      `json:"-" bson:"valid"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
