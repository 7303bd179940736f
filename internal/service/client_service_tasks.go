package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/MKhiriev/go-task-client/models"
	"golang.org/x/sync/errgroup"
)

// assignableUsersPageSize bounds the user list loaded next to the board.
const assignableUsersPageSize = 100

type clientTaskService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientTaskService(serverAdapter adapter.ServerAdapter, validator validators.Validator, logger *logger.Logger) TaskService {
	return &clientTaskService{adapter: serverAdapter, validator: validator, logger: logger}
}

func (s *clientTaskService) List(ctx context.Context, filter models.TaskFilter) (models.Page[models.Task], error) {
	if err := s.validate(ctx, filter); err != nil {
		return models.Page[models.Task]{}, err
	}

	page, err := s.adapter.ListTasks(ctx, filter)
	if err != nil {
		return models.Page[models.Task]{}, mapAdapterError(err)
	}
	return page, nil
}

func (s *clientTaskService) Get(ctx context.Context, taskID int64) (models.Task, error) {
	task, err := s.adapter.GetTask(ctx, taskID)
	if err != nil {
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) Create(ctx context.Context, task models.NewTask) (models.Task, error) {
	if err := s.validate(ctx, task); err != nil {
		return models.Task{}, err
	}

	created, err := s.adapter.CreateTask(ctx, task)
	if err != nil {
		return models.Task{}, mapAdapterError(err)
	}
	s.logger.Debug().Int64("task_id", created.ID).Msg("task created")
	return created, nil
}

func (s *clientTaskService) Update(ctx context.Context, taskID int64, update models.UpdateTask) (models.Task, error) {
	if err := s.validate(ctx, update); err != nil {
		return models.Task{}, err
	}

	task, err := s.adapter.UpdateTask(ctx, taskID, update)
	if err != nil {
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) UpdateStatus(ctx context.Context, taskID int64, status models.TaskStatus) (models.Task, error) {
	if err := s.validate(ctx, models.StatusChange{Status: status}); err != nil {
		return models.Task{}, err
	}

	task, err := s.adapter.UpdateTaskStatus(ctx, taskID, status)
	if err != nil {
		return models.Task{}, mapAdapterError(err)
	}
	return task, nil
}

func (s *clientTaskService) Delete(ctx context.Context, taskID int64) error {
	return mapAdapterError(s.adapter.DeleteTask(ctx, taskID))
}

func (s *clientTaskService) Board(ctx context.Context, filter models.TaskFilter, withUsers bool) (models.Board, error) {
	var (
		tasks models.Page[models.Task]
		users models.Page[models.User]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.List(gctx, filter)
		return err
	})
	if withUsers {
		g.Go(func() error {
			var err error
			users, err = s.adapter.ListUsers(gctx, models.UserQuery{Size: assignableUsersPageSize, Sort: "fullName,asc"})
			if err != nil {
				return fmt.Errorf("load assignable users: %w", mapAdapterError(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Board{}, err
	}

	return models.Board{
		Columns:    models.GroupByStatus(tasks.Items),
		Pagination: tasks.Pagination,
		Users:      users.Items,
	}, nil
}

func (s *clientTaskService) validate(ctx context.Context, obj any) error {
	if err := s.validator.Validate(ctx, obj); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
