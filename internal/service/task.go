package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-ticker/internal/model"
	"github.com/BuzzLyutic/task-ticker/internal/repo"
)

var (
	ErrNotHydrated = errors.New("task store is not hydrated")
)

// TaskStore owns the authoritative task list, newest first. Every
// mutation is followed by a full save of the list.
type TaskStore struct {
	repo   repo.TaskRepository
	logger *zap.Logger
	newID  func() string

	phase atomic.Int32

	mu    sync.Mutex
	tasks []model.Task
}

func NewTaskStore(repo repo.TaskRepository, logger *zap.Logger) *TaskStore {
	return &TaskStore{
		repo:   repo,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (s *TaskStore) Phase() model.Phase {
	return model.Phase(s.phase.Load())
}

// Hydrate loads the persisted list once. Later calls return nil without
// touching storage. On a storage failure the store stays in Hydrating.
func (s *TaskStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.phase.CompareAndSwap(int32(model.Uninitialized), int32(model.Hydrating)) {
		return nil
	}

	tasks, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}
	s.tasks = tasks

	s.phase.Store(int32(model.Ready))
	s.logger.Info("Task store hydrated", zap.Int("tasks", len(tasks)))
	return nil
}

// Add prepends a task with the trimmed text. Blank text is rejected
// without a save.
func (s *TaskStore) Add(ctx context.Context, text string) (model.Task, model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase() != model.Ready {
		return model.Task{}, 0, ErrNotHydrated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, model.RejectedEmpty, nil
	}

	task := model.Task{ID: s.uniqueID(), Text: text}
	s.tasks = append([]model.Task{task}, s.tasks...)

	return task, model.Applied, s.save(ctx)
}

func (s *TaskStore) Toggle(ctx context.Context, id string) (model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase() != model.Ready {
		return 0, ErrNotHydrated
	}

	res := model.NotFound
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
		res = model.Applied
	}
	return res, s.save(ctx)
}

func (s *TaskStore) Delete(ctx context.Context, id string) (model.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase() != model.Ready {
		return 0, ErrNotHydrated
	}

	res := model.NotFound
	if i := s.indexOf(id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		res = model.Applied
	}
	return res, s.save(ctx)
}

// List returns a copy of the current list. Before hydration it is empty.
func (s *TaskStore) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Snapshot returns the phase together with the list. It does not wait
// for a running hydration.
func (s *TaskStore) Snapshot() (model.Phase, []model.Task) {
	if p := s.Phase(); p != model.Ready {
		return p, nil
	}
	return model.Ready, s.List()
}

func (s *TaskStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.PendingCount(s.tasks)
}

func (s *TaskStore) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		s.logger.Error("failed to persist tasks", zap.Int("tasks", len(s.tasks)), zap.Error(err))
		return err
	}
	return nil
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) uniqueID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}
