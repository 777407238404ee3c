package events

import "time"

const (
	RoutingKeyTaskCreated = "task.created"
	RoutingKeyTaskDeleted = "task.deleted"
)

// TaskCreated is published after a task row is written.
type TaskCreated struct {
	TaskID    int       `json:"task_id"`
	OwnerID   int       `json:"owner_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDeleted is published after a task row is removed by its owner.
type TaskDeleted struct {
	TaskID    int       `json:"task_id"`
	OwnerID   int       `json:"owner_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
