package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int("owner_id", t.OwnerID),
		zap.String("title", t.Title),
	)
	query := `
        INSERT INTO task (owner_id, title, description, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, t.OwnerID, t.Title, t.Description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("owner_id", t.OwnerID),
		)
		return err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("owner_id", t.OwnerID),
	)
	return nil
}

// ListByOwner returns all tasks owned by ownerID, oldest first. Ordering by
// id keeps the listing stable across requests.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int) ([]model.Task, error) {
	query := `
        SELECT id, owner_id, title, description, created_at
        FROM task
        WHERE owner_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Error(err),
			zap.Int("owner_id", ownerID),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID,
			&t.OwnerID,
			&t.Title,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan task row",
				zap.Error(err),
				zap.Int("owner_id", ownerID),
			)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// OwnerOf returns the owner id of the task, or ErrNotFound.
func (r *TaskRepository) OwnerOf(ctx context.Context, taskID int) (int, error) {
	query := `SELECT owner_id FROM task WHERE id = $1`
	var ownerID int
	err := r.db.QueryRow(ctx, query, taskID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		r.logger.Error("Failed to query task owner",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return 0, err
	}
	return ownerID, nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM task WHERE id = $1`, taskID)
	if err != nil {
		r.logger.Error("Failed to delete task",
			zap.Error(err),
			zap.Int("task_id", taskID),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Info("Task deleted",
		zap.Int("task_id", taskID),
	)
	return nil
}
