// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter returns a ServerAdapter logged in as an admin of a fresh
// fake backend.
func newTestAdapter(t *testing.T) (*httpServerAdapter, *testEnv) {
	t.Helper()
	env := newTestEnv(t, time.Hour)

	admin, err := env.api.AddUser(models.User{
		Email:    "root@example.com",
		FullName: "Root Admin",
		Roles:    []string{models.RoleAdmin},
	}, "rootpass")
	require.NoError(t, err)
	session, err := env.api.IssueSession(admin.UserID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, env.store.SaveSession(context.Background(), session))

	return NewHTTPServerAdapter(env.client, nil).(*httpServerAdapter), env
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	a, _ := newTestAdapter(t)

	auth, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "Bearer", auth.TokenType)
	require.NotNil(t, auth.CurrentUser)
	assert.Equal(t, "Alice Smith", auth.CurrentUser.DisplayName())
}

func TestLogin_WrongPasswordIsNotRefreshed(t *testing.T) {
	a, env := newTestAdapter(t)

	_, err := a.Login(context.Background(), models.Credentials{Email: "alice@example.com", Password: "bad"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, env.api.RefreshCalls())
}

func TestSignupVerifyResend(t *testing.T) {
	a, env := newTestAdapter(t)
	ctx := context.Background()
	req := models.SignupRequest{FullName: "Bobby Tables", Email: "bob@example.com", Username: "bob", Contact: "123", Password: "secret"}

	require.NoError(t, a.Signup(ctx, req))
	assert.ErrorIs(t, a.Signup(ctx, req), ErrConflict)

	require.NoError(t, a.ResendToken(ctx, models.ResendTokenRequest{Email: req.Email}))
	token := env.api.VerificationToken(req.Email)

	err := a.VerifyToken(ctx, models.VerifyTokenRequest{Email: req.Email, Token: "wrong"})
	assert.ErrorIs(t, err, ErrBadRequest)
	require.NoError(t, a.VerifyToken(ctx, models.VerifyTokenRequest{Email: req.Email, Token: token}))

	reqs := env.api.RequestsTo(http.MethodPost, "/api/users/auth/signup")
	require.NotEmpty(t, reqs)
	assert.Empty(t, reqs[0].Token)
}

func TestCurrentUserAndPreferences(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	user, err := a.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", user.Email)
	assert.True(t, user.IsAdmin())

	require.NoError(t, a.UpdateNotificationPreferences(ctx, models.NotificationPreferences{EmailNotifications: true}))
	require.NoError(t, a.UpdatePrivacyPreferences(ctx, models.PrivacyPreferences{ProfileVisible: true}))
}

func TestChangePassword(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	err := a.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrBadRequest)

	require.NoError(t, a.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: "rootpass", NewPassword: "newpass"}))
	_, err = a.Login(ctx, models.Credentials{Email: "root@example.com", Password: "newpass"})
	assert.NoError(t, err)
}

// ── Tasks ───────────────────────────────────────────────────────────────────

func TestTaskLifecycle(t *testing.T) {
	a, env := newTestAdapter(t)
	ctx := context.Background()

	created, err := a.CreateTask(ctx, models.NewTask{
		Title:      "Write docs",
		Priority:   models.PriorityHigh,
		AssigneeID: env.user.UserID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusTodo, created.Status)
	assert.Equal(t, "Alice Smith", created.AssigneeName())

	got, err := a.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	title := "Write better docs"
	updated, err := a.UpdateTask(ctx, created.ID, models.UpdateTask{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, models.PriorityHigh, updated.Priority)

	moved, err := a.UpdateTaskStatus(ctx, created.ID, models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, moved.Status)

	require.NoError(t, a.DeleteTask(ctx, created.ID))
	_, err = a.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTasks_SendsOnlySetFilterFields(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Envelope[[]models.Task]{
			Status:        "OK",
			Payload:       []models.Task{{ID: 1, Title: "a"}},
			TotalPages:    3,
			TotalElements: 21,
			CurrentPage:   1,
			PageSize:      10,
		})
	}))
	defer srv.Close()

	env := newTestEnv(t, time.Hour)
	env.client.client.SetBaseURL(srv.URL + "/api")
	a := NewHTTPServerAdapter(env.client, nil)

	page, err := a.ListTasks(context.Background(), models.TaskFilter{
		Priority: models.PriorityHigh,
		Page:     1,
		Size:     10,
		Sort:     "dueDate,asc",
	})

	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"priority": {"HIGH"},
		"page":     {"1"},
		"size":     {"10"},
		"sort":     {"dueDate,asc"},
	}, query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext())
	assert.True(t, page.Pagination.HasPrev())
}

func TestListTasks_Filtered(t *testing.T) {
	a, env := newTestAdapter(t)
	env.api.AddTask(models.Task{Title: "fix login", Status: models.StatusTodo, Priority: models.PriorityCritical})
	env.api.AddTask(models.Task{Title: "ship", Status: models.StatusDone, Priority: models.PriorityLow})

	page, err := a.ListTasks(context.Background(), models.TaskFilter{Search: "LOGIN"})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "fix login", page.Items[0].Title)
	assert.Equal(t, int64(1), page.Pagination.TotalElements)
}

// ── Users ───────────────────────────────────────────────────────────────────

func TestUserAdministration(t *testing.T) {
	a, env := newTestAdapter(t)
	ctx := context.Background()

	page, err := a.ListUsers(ctx, models.UserQuery{Size: 10, Sort: "fullName,asc"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alice Smith", page.Items[0].FullName)

	user, err := a.GetUser(ctx, env.user.UserID)
	require.NoError(t, err)
	assert.Equal(t, env.user.Email, user.Email)

	updated, err := a.UpdateUser(ctx, env.user.UserID, models.UpdateUserRequest{FullName: "Alice Jones", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Alice Jones", updated.FullName)
	assert.True(t, updated.IsAdmin())

	roles, err := a.Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	require.NoError(t, a.DeleteUser(ctx, env.user.UserID))
	_, err = a.GetUser(ctx, env.user.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_ForbiddenForRegularUser(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	a := NewHTTPServerAdapter(env.client, nil)

	_, err := a.ListUsers(context.Background(), models.UserQuery{})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, env.api.RefreshCalls())
}
