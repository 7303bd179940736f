package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/MKhiriev/go-task-client/models"
)

type clientUserService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
}

func NewClientUserService(serverAdapter adapter.ServerAdapter, validator validators.Validator) UserService {
	return &clientUserService{adapter: serverAdapter, validator: validator}
}

func (s *clientUserService) List(ctx context.Context, query models.UserQuery) (models.Page[models.User], error) {
	if err := s.validator.Validate(ctx, query); err != nil {
		return models.Page[models.User]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	page, err := s.adapter.ListUsers(ctx, query)
	if err != nil {
		return models.Page[models.User]{}, mapAdapterError(err)
	}
	return page, nil
}

func (s *clientUserService) Get(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.adapter.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	return user, nil
}

func (s *clientUserService) Update(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := s.adapter.UpdateUser(ctx, userID, req)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	return user, nil
}

func (s *clientUserService) Delete(ctx context.Context, userID int64) error {
	return mapAdapterError(s.adapter.DeleteUser(ctx, userID))
}

func (s *clientUserService) Roles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.adapter.Roles(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return roles, nil
}
