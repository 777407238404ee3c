package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/events"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/pkg/metrics"
)

// DeleteResult classifies the outcome of a delete attempt. Denied and
// NotFound stay externally silent; the distinction exists for logging and
// metrics.
type DeleteResult int

const (
	DeleteResultDeleted DeleteResult = iota
	DeleteResultDenied
	DeleteResultNotFound
)

func (r DeleteResult) String() string {
	switch r {
	case DeleteResultDeleted:
		return "deleted"
	case DeleteResultDenied:
		return "denied"
	case DeleteResultNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// TaskStore is the persistence surface the task service needs.
type TaskStore interface {
	Insert(ctx context.Context, t *model.Task) error
	ListByOwner(ctx context.Context, ownerID int) ([]model.Task, error)
	OwnerOf(ctx context.Context, taskID int) (int, error)
	Delete(ctx context.Context, taskID int) error
}

type TaskService struct {
	tasks     TaskStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTaskService(tasks TaskStore, publisher events.Publisher, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, publisher: publisher, logger: logger}
}

// Create inserts a new task owned by ownerID. The owner id must come from an
// authenticated principal, never from client-supplied input alone.
func (s *TaskService) Create(ctx context.Context, ownerID int, title, description string) (*model.Task, error) {
	t := &model.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}
	if err := s.tasks.Insert(ctx, t); err != nil {
		return nil, err
	}

	metrics.IncrementTaskOp("create")
	if err := s.publisher.Publish(events.RoutingKeyTaskCreated, events.TaskCreated{
		TaskID:    t.ID,
		OwnerID:   t.OwnerID,
		Title:     t.Title,
		CreatedAt: time.Now(),
	}); err != nil {
		s.logger.Warn("Failed to publish task.created event",
			zap.Error(err),
			zap.Int("task_id", t.ID),
		)
	}
	return t, nil
}

// ListByOwner returns all tasks owned by ownerID in stable order.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID int) ([]model.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// OwnerOf returns the owner id of the task, or repository.ErrNotFound.
func (s *TaskService) OwnerOf(ctx context.Context, taskID int) (int, error) {
	return s.tasks.OwnerOf(ctx, taskID)
}

// Delete removes the task only when requesterID matches the task's recorded
// owner id. A mismatch is reported as Denied, a missing task as NotFound;
// neither is an error.
func (s *TaskService) Delete(ctx context.Context, taskID, requesterID int) (DeleteResult, error) {
	ownerID, err := s.tasks.OwnerOf(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DeleteResultNotFound, nil
		}
		return DeleteResultNotFound, err
	}

	if ownerID != requesterID {
		s.logger.Warn("Delete denied: requester does not own task",
			zap.Int("task_id", taskID),
			zap.Int("owner_id", ownerID),
			zap.Int("requester_id", requesterID),
		)
		metrics.IncrementTaskOp("delete_denied")
		return DeleteResultDenied, nil
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted out from under us between the owner check and here.
			return DeleteResultNotFound, nil
		}
		return DeleteResultNotFound, err
	}

	metrics.IncrementTaskOp("delete")
	if err := s.publisher.Publish(events.RoutingKeyTaskDeleted, events.TaskDeleted{
		TaskID:    taskID,
		OwnerID:   ownerID,
		DeletedAt: time.Now(),
	}); err != nil {
		s.logger.Warn("Failed to publish task.deleted event",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
	}
	return DeleteResultDeleted, nil
}
