package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// StoreOptions configures a task store
type StoreOptions struct {
	// Key is the storage key the collection is persisted under
	Key          string
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	// Clock supplies creation timestamps for ids. Defaults to time.Now.
	Clock  func() time.Time
	Logger *log.Logger
	Config *config.Config
}

// StoreOptionsFromConfig derives store options from the application configuration
func StoreOptionsFromConfig(cfg *config.Config, logger *log.Logger) StoreOptions {
	return StoreOptions{
		Key:          cfg.Storage.Key,
		QueryTimeout: cfg.GetQueryTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		Logger:       logger,
		Config:       cfg,
	}
}

// taskStoreImpl implements the TaskStore interface
type taskStoreImpl struct {
	mu            sync.Mutex
	repo          repository.KeyValueStore
	opts          StoreOptions
	mapper        *domain.TaskMapper
	taskValidator *validation.TaskValidator
	logger        *log.Logger

	tasks  []domain.Task
	lastID int64
}

// NewTaskStore creates an empty TaskStore backed by repo. Call Load to hydrate it.
func NewTaskStore(repo repository.KeyValueStore, opts StoreOptions) TaskStore {
	if opts.Key == "" {
		opts.Key = config.DefaultStorageKey
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	taskValidator := validation.NewTaskValidator()
	if opts.Config != nil {
		taskValidator = validation.NewTaskValidatorWithConfig(opts.Config)
	}
	return &taskStoreImpl{
		repo:          repo,
		opts:          opts,
		mapper:        domain.NewTaskMapper(),
		taskValidator: taskValidator,
		logger:        logger.WithPrefix("store"),
		tasks:         make([]domain.Task, 0),
	}
}

func (s *taskStoreImpl) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Load reads the collection stored under the configured key
func (s *taskStoreImpl) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readCtx, cancel := s.withTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	data, found, err := s.repo.Get(readCtx, s.opts.Key)
	if err != nil {
		return LoadResult{}, asStorageError("load tasks", err)
	}

	if !found {
		s.replace(nil)
		logging.Debugf("no tasks stored under %q\n", s.opts.Key)
		return LoadResult{}, nil
	}

	tasks, decodeErr := s.decode(data)
	if decodeErr != nil {
		warning := errors.NewCorruptDataError(s.opts.Key, decodeErr)
		s.logger.Warn("saved tasks could not be read, starting empty", "key", s.opts.Key, "err", decodeErr)
		s.replace(nil)
		return LoadResult{Warning: warning}, nil
	}

	s.replace(tasks)
	logging.Debugf("loaded %d tasks from %q\n", len(tasks), s.opts.Key)
	return LoadResult{Count: len(tasks)}, nil
}

// decode turns a persisted document into tasks, rejecting anything that
// would break the collection invariants
func (s *taskStoreImpl) decode(data []byte) ([]domain.Task, error) {
	if err := validation.ValidateTasksDocument(data); err != nil {
		return nil, err
	}

	var records []domain.TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks, err := s.mapper.FromRecordSlice(records)
	if err != nil {
		return nil, err
	}

	if err := s.taskValidator.ValidateCollection(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskStoreImpl) replace(tasks []domain.Task) {
	s.tasks = make([]domain.Task, 0, len(tasks))
	s.tasks = append(s.tasks, tasks...)
	s.lastID = 0
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

// persist writes the whole collection. Caller holds s.mu.
func (s *taskStoreImpl) persist(ctx context.Context) error {
	data, err := json.Marshal(s.mapper.ToRecordSlice(s.tasks))
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}

	writeCtx, cancel := s.withTimeout(ctx, s.opts.WriteTimeout)
	defer cancel()

	if err := s.repo.Set(writeCtx, s.opts.Key, data); err != nil {
		s.logger.Error("failed to save tasks", "key", s.opts.Key, "err", err)
		return asStorageError("save tasks", err)
	}
	return nil
}

// nextID returns the creation timestamp in milliseconds, bumped past the
// last issued id so ids stay strictly increasing
func (s *taskStoreImpl) nextID() int64 {
	id := s.opts.Clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Add appends a new task built from draft
func (s *taskStoreImpl) Add(ctx context.Context, draft domain.Draft) (domain.Task, bool, error) {
	if !validation.NewValidator().IsNonEmptyString(draft.Name) {
		return domain.Task{}, false, nil
	}
	if err := s.taskValidator.ValidateDraft(draft); err != nil {
		return domain.Task{}, false, errors.NewValidationError("invalid task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := draft.ToTask(s.nextID())
	s.tasks = append(s.tasks, task)
	logging.Debugf("added task %d %q\n", task.ID, task.Name)

	if err := s.persist(ctx); err != nil {
		return task, true, err
	}
	return task, true, nil
}

// Remove deletes the task with id
func (s *taskStoreImpl) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	logging.Debugf("removed task %d\n", id)

	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Update replaces a single field of the task with id
func (s *taskStoreImpl) Update(ctx context.Context, id int64, update domain.FieldUpdate) (domain.Task, bool, error) {
	if update == nil {
		return domain.Task{}, false, errors.NewInvalidInputError("update", nil, "no field update given")
	}
	if err := s.taskValidator.ValidateUpdate(update); err != nil {
		return domain.Task{}, false, errors.NewValidationError("invalid update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Task{}, false, nil
	}

	s.tasks[idx] = domain.Apply(s.tasks[idx], update)
	updated := s.tasks[idx]
	logging.Debugf("set %s of task %d to %q\n", update.Field(), id, update.Value())

	if err := s.persist(ctx); err != nil {
		return updated, true, err
	}
	return updated, true, nil
}

// Tasks returns a copy of the collection
func (s *taskStoreImpl) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns a copy of the task with id
func (s *taskStoreImpl) Get(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *taskStoreImpl) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// asStorageError keeps typed errors from the repository and wraps anything else
func asStorageError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewStorageError(operation, err)
}
