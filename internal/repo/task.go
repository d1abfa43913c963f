package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-ticker/internal/model"
	"github.com/BuzzLyutic/task-ticker/internal/storage"
)

const DefaultKey = "tasks"

var ErrMalformed = errors.New("malformed stored tasks")

type TaskRepo struct { // Список задач лежит одной записью под фиксированным ключом
	storage storage.Storage
	key     string
	logger  *zap.Logger
}

func NewTaskRepo(s storage.Storage, key string, logger *zap.Logger) *TaskRepo {
	if key == "" {
		key = DefaultKey
	}
	return &TaskRepo{
		storage: s,
		key:     key,
		logger:  logger,
	}
}

// Load reads the stored list. A missing entry and an unparseable one both
// yield an empty list; the latter is only logged.
func (r *TaskRepo) Load(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := r.storage.GetItem(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", r.key, err)
	}
	if !ok {
		return []model.Task{}, nil
	}

	tasks, err := decode(raw)
	if err != nil {
		r.logger.Error("Error loading tasks from storage", zap.String("key", r.key), zap.Error(err))
		return []model.Task{}, nil
	}
	return tasks, nil
}

func (r *TaskRepo) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	raw, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	if err := r.storage.SetItem(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save %q: %w", r.key, err)
	}
	return nil
}

func decode(raw []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tasks == nil { // JSON null
		return nil, fmt.Errorf("%w: null list", ErrMalformed)
	}

	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: task without id", ErrMalformed)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}
