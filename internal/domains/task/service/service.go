package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/database"
	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/model"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/model/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/internal/domains/task/repository"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/cache"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/constant"
	gDto "github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/failure"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/timezone"
)

const msgNoFieldsToUpdate = "No fields to update"

type Task interface {
	Create(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetTasksResponse, error)
	Get(ctx context.Context, id int64) (dto.TaskResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo     repository.Task
	sessions database.SessionFactory
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(repo repository.Task, sessions database.SessionFactory, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Task {
	return &serviceImpl{
		repo:     repo,
		sessions: sessions,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func notFound(id int64) error {
	return failure.NotFound(fmt.Sprintf("Task %d not found", id)) //nolint:wrapcheck
}

func cacheKey(id int64) string {
	return shared.BuildCacheKey(model.EntityName, id)
}

// versionKey holds a token that every committed write replaces, so a reader
// can tell whether a write landed while it was loading the row.
func versionKey(id int64) string {
	return shared.BuildCacheKey(model.EntityName, id, "version")
}

func (s *serviceImpl) begin(ctx context.Context) (database.Session, error) {
	session, err := s.sessions.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin session")

		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	return session, nil
}

func (s *serviceImpl) evict(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("failed to evict cached task")
	}
}

func (s *serviceImpl) version(ctx context.Context, id int64) (string, error) {
	var token string

	err := s.cache.Get(ctx, versionKey(id), &token)
	if errors.Is(err, cache.Nil) {
		return "", nil
	}

	return token, err //nolint:wrapcheck
}

// invalidate runs after a write commits: the version moves first, then the
// cached row goes.
func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Save(ctx, versionKey(id), uuid.NewString(), s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("failed to bump cached task version")
	}

	s.evict(ctx, id)
}

// store caches res, then drops it again if the version differs from seen,
// the token observed before res was loaded.
func (s *serviceImpl) store(ctx context.Context, id int64, seen string, res dto.TaskResponse) {
	key := cacheKey(id)

	if err := s.cache.Save(ctx, key, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache task")

		return
	}

	current, err := s.version(ctx, id)
	if err != nil || current != seen {
		s.evict(ctx, id)
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session, err := s.begin(ctx)
	if err != nil {
		return res, err
	}
	defer session.Close() //nolint:errcheck

	task, err := s.repo.Create(ctx, session, req.ToModel(timezone.Now().Truncate(time.Microsecond)))
	if err != nil {
		log.Error().Err(err).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	if err = session.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit task creation")

		return res, fmt.Errorf("failed to commit task creation: %w", err)
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session, err := s.begin(ctx)
	if err != nil {
		return res, err
	}
	defer session.Close() //nolint:errcheck

	total, err := s.repo.Count(ctx, session)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tasks")

		return res, fmt.Errorf("failed to count tasks: %w", err)
	}

	tasks, err := s.repo.GetAll(ctx, session, params.Skip, params.Limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tasks")

		return res, fmt.Errorf("failed to get tasks: %w", err)
	}

	res.FromModels(tasks, total)

	return res, nil
}

// Get reads through the cache. Cache failures only cost a database read.
// A row is cached only if no write was committed while it was being read.
func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := cacheKey(id)

	err = s.cache.Get(ctx, key, &res)
	if err == nil {
		return res, nil
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached task")
	}

	seen, versionErr := s.version(ctx, id)

	session, err := s.begin(ctx)
	if err != nil {
		return res, err
	}
	defer session.Close() //nolint:errcheck

	task, found, err := s.repo.Get(ctx, session, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get task")

		return res, fmt.Errorf("failed to get task: %w", err)
	}

	if !found {
		return res, notFound(id)
	}

	res = dto.TaskResponse{}
	res.FromModel(task)

	if versionErr == nil {
		s.store(ctx, id, seen, res)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return res, failure.BadRequestFromString(msgNoFieldsToUpdate) //nolint:wrapcheck
	}

	if err = req.Validate(); err != nil {
		return res, err
	}

	session, err := s.begin(ctx)
	if err != nil {
		return res, err
	}
	defer session.Close() //nolint:errcheck

	task, found, err := s.repo.Update(ctx, session, id, req.ToFields())
	if err != nil {
		log.Error().Err(err).Msg("failed to update task")

		return res, fmt.Errorf("failed to update task: %w", err)
	}

	if !found {
		return res, notFound(id)
	}

	if err = session.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit task update")

		return res, fmt.Errorf("failed to commit task update: %w", err)
	}

	s.invalidate(ctx, id)
	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer session.Close() //nolint:errcheck

	deleted, err := s.repo.Delete(ctx, session, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete task")

		return fmt.Errorf("failed to delete task: %w", err)
	}

	if !deleted {
		return notFound(id)
	}

	if err = session.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit task deletion")

		return fmt.Errorf("failed to commit task deletion: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}
