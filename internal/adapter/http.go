package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/models"
)

type httpServerAdapter struct {
	client *AuthClient
	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter]
// on top of client.
func NewHTTPServerAdapter(client *AuthClient, logger *logger.Logger) ServerAdapter {
	return &httpServerAdapter{client: client, logger: logger}
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /auth/login without a bearer token. The response is not wrapped in
// an envelope.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	var auth models.AuthResponse
	if _, err := h.client.PostNoAuth(ctx, "/auth/login", WithBody(credentials), WithResult(&auth)); err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	return auth, nil
}

// Signup implements [ServerAdapter] via POST /users/auth/signup.
func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) error {
	if _, err := h.client.PostNoAuth(ctx, "/users/auth/signup", WithBody(req)); err != nil {
		return fmt.Errorf("signup request: %w", err)
	}
	return nil
}

// VerifyToken implements [ServerAdapter] via POST /auth/verify-token.
func (h *httpServerAdapter) VerifyToken(ctx context.Context, req models.VerifyTokenRequest) error {
	if _, err := h.client.PostNoAuth(ctx, "/auth/verify-token", WithBody(req)); err != nil {
		return fmt.Errorf("verify token request: %w", err)
	}
	return nil
}

// ResendToken implements [ServerAdapter] via POST /auth/resend-token.
func (h *httpServerAdapter) ResendToken(ctx context.Context, req models.ResendTokenRequest) error {
	if _, err := h.client.PostNoAuth(ctx, "/auth/resend-token", WithBody(req)); err != nil {
		return fmt.Errorf("resend token request: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	var env models.Envelope[models.User]
	if _, err := h.client.Get(ctx, "/auth/current", WithResult(&env)); err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if _, err := h.client.Put(ctx, "/users/auth/update-password", WithBody(req)); err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	if _, err := h.client.Put(ctx, "/users/notifications/preferences", WithBody(prefs)); err != nil {
		return fmt.Errorf("notification preferences request: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) UpdatePrivacyPreferences(ctx context.Context, prefs models.PrivacyPreferences) error {
	if _, err := h.client.Put(ctx, "/users/privacy/preferences", WithBody(prefs)); err != nil {
		return fmt.Errorf("privacy preferences request: %w", err)
	}
	return nil
}

// ListTasks implements [ServerAdapter] via GET /tasks. Only the non-zero
// filter fields are sent.
func (h *httpServerAdapter) ListTasks(ctx context.Context, filter models.TaskFilter) (models.Page[models.Task], error) {
	var env models.Envelope[[]models.Task]
	if _, err := h.client.Get(ctx, "/tasks", WithQuery(filter.Query()), WithResult(&env)); err != nil {
		return models.Page[models.Task]{}, fmt.Errorf("list tasks request: %w", err)
	}
	return models.Page[models.Task]{Items: env.Payload, Pagination: env.Pagination()}, nil
}

func (h *httpServerAdapter) GetTask(ctx context.Context, taskID int64) (models.Task, error) {
	var env models.Envelope[models.Task]
	if _, err := h.client.Get(ctx, taskPath(taskID), WithResult(&env)); err != nil {
		return models.Task{}, fmt.Errorf("get task %d request: %w", taskID, err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) CreateTask(ctx context.Context, task models.NewTask) (models.Task, error) {
	var env models.Envelope[models.Task]
	if _, err := h.client.Post(ctx, "/tasks", WithBody(task), WithResult(&env)); err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) UpdateTask(ctx context.Context, taskID int64, update models.UpdateTask) (models.Task, error) {
	var env models.Envelope[models.Task]
	if _, err := h.client.Put(ctx, taskPath(taskID), WithBody(update), WithResult(&env)); err != nil {
		return models.Task{}, fmt.Errorf("update task %d request: %w", taskID, err)
	}
	return env.Payload, nil
}

// UpdateTaskStatus implements [ServerAdapter] via PATCH /tasks/{id}/status.
func (h *httpServerAdapter) UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) (models.Task, error) {
	var env models.Envelope[models.Task]
	_, err := h.client.Patch(ctx, taskPath(taskID)+"/status",
		WithBody(models.StatusChange{Status: status}), WithResult(&env))
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %d status request: %w", taskID, err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := h.client.Delete(ctx, taskPath(taskID)); err != nil {
		return fmt.Errorf("delete task %d request: %w", taskID, err)
	}
	return nil
}

// ListUsers implements [ServerAdapter] via GET /users.
func (h *httpServerAdapter) ListUsers(ctx context.Context, query models.UserQuery) (models.Page[models.User], error) {
	var env models.Envelope[[]models.User]
	if _, err := h.client.Get(ctx, "/users", WithQuery(query.Query()), WithResult(&env)); err != nil {
		return models.Page[models.User]{}, fmt.Errorf("list users request: %w", err)
	}
	return models.Page[models.User]{Items: env.Payload, Pagination: env.Pagination()}, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var env models.Envelope[models.User]
	if _, err := h.client.Get(ctx, userPath(userID), WithResult(&env)); err != nil {
		return models.User{}, fmt.Errorf("get user %d request: %w", userID, err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error) {
	var env models.Envelope[models.User]
	if _, err := h.client.Put(ctx, userPath(userID), WithBody(req), WithResult(&env)); err != nil {
		return models.User{}, fmt.Errorf("update user %d request: %w", userID, err)
	}
	return env.Payload, nil
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := h.client.Delete(ctx, userPath(userID)); err != nil {
		return fmt.Errorf("delete user %d request: %w", userID, err)
	}
	return nil
}

func (h *httpServerAdapter) Roles(ctx context.Context) ([]models.Role, error) {
	var env models.Envelope[[]models.Role]
	if _, err := h.client.Get(ctx, "/users/auth/roles", WithResult(&env)); err != nil {
		return nil, fmt.Errorf("roles request: %w", err)
	}
	return env.Payload, nil
}

func taskPath(taskID int64) string {
	return "/tasks/" + strconv.FormatInt(taskID, 10)
}

func userPath(userID int64) string {
	return "/users/auth/" + strconv.FormatInt(userID, 10)
}
