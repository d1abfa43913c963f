package repo

import (
	"context"

	"github.com/BuzzLyutic/task-ticker/internal/model"
)

// TaskRepository загружает и сохраняет список задач целиком
type TaskRepository interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}
