package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the task workflow state. Any state may be reassigned to any
// other; there is no enforced transition graph.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses lists every allowed status value.
func Statuses() []string {
	return []string{string(StatusTodo), string(StatusDoing), string(StatusDone)}
}

// Task is a domain entity owned by exactly one user. Titles are unique
// across all tasks regardless of owner.
type Task struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Content   string
	Status    Status
	Deadline  *time.Time
	CreatedAt time.Time
}
