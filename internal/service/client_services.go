package service

import (
	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/jonboulle/clockwork"
)

type ClientServices struct {
	AuthService     AuthService
	TaskService     TaskService
	UserService     UserService
	BoardRefreshJob BoardRefreshJob
}

func NewClientServices(serverAdapter adapter.ServerAdapter, sessions adapter.TokenStore, clock clockwork.Clock, logger *logger.Logger) *ClientServices {
	validator := validators.NewStructValidator()
	taskSvc := NewClientTaskService(serverAdapter, validator, logger)

	return &ClientServices{
		AuthService:     NewClientAuthService(serverAdapter, sessions, validator, logger),
		TaskService:     taskSvc,
		UserService:     NewClientUserService(serverAdapter, validator),
		BoardRefreshJob: NewBoardRefreshJob(taskSvc, clock),
	}
}
