// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/mock"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserSvc(t *testing.T) (UserService, *mock.MockServerAdapter) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
	return NewClientUserService(mockAdapter, validators.NewStructValidator()), mockAdapter
}

func TestClientUserService_List(t *testing.T) {
	svc, mockAdapter := newTestUserSvc(t)
	ctx := context.Background()
	query := models.UserQuery{Page: 1, Size: 5, Sort: "email,desc", Search: "ali"}

	mockAdapter.EXPECT().ListUsers(ctx, query).Return(models.Page[models.User]{Items: []models.User{alice}}, nil)

	page, err := svc.List(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, []models.User{alice}, page.Items)

	_, err = svc.List(ctx, models.UserQuery{Page: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClientUserService_List_ForbiddenForRegularUser(t *testing.T) {
	svc, mockAdapter := newTestUserSvc(t)
	ctx := context.Background()

	mockAdapter.EXPECT().ListUsers(ctx, gomock.Any()).Return(models.Page[models.User]{},
		statusFailure(http.StatusForbidden, adapter.ErrForbidden, app.MsgAccessDenied))

	_, err := svc.List(ctx, models.UserQuery{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestClientUserService_GetUpdateDelete(t *testing.T) {
	svc, mockAdapter := newTestUserSvc(t)
	ctx := context.Background()
	req := models.UpdateUserRequest{FullName: "Alice Jones", Role: models.RoleAdmin}
	updated := alice
	updated.FullName = req.FullName

	gomock.InOrder(
		mockAdapter.EXPECT().GetUser(ctx, alice.UserID).Return(alice, nil),
		mockAdapter.EXPECT().UpdateUser(ctx, alice.UserID, req).Return(updated, nil),
		mockAdapter.EXPECT().DeleteUser(ctx, alice.UserID).Return(nil),
		mockAdapter.EXPECT().GetUser(ctx, alice.UserID).Return(models.User{},
			statusFailure(http.StatusNotFound, adapter.ErrNotFound, app.MsgUserNotFound)),
	)

	got, err := svc.Get(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	got, err = svc.Update(ctx, alice.UserID, req)
	require.NoError(t, err)
	assert.Equal(t, "Alice Jones", got.FullName)

	require.NoError(t, svc.Delete(ctx, alice.UserID))

	_, err = svc.Get(ctx, alice.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientUserService_Update_Invalid(t *testing.T) {
	svc, _ := newTestUserSvc(t)

	_, err := svc.Update(context.Background(), 1, models.UpdateUserRequest{Email: "nope"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestClientUserService_Roles(t *testing.T) {
	svc, mockAdapter := newTestUserSvc(t)
	ctx := context.Background()
	roles := []models.Role{{ID: 1, Name: models.RoleUser}, {ID: 2, Name: models.RoleAdmin}}

	mockAdapter.EXPECT().Roles(ctx).Return(roles, nil)

	got, err := svc.Roles(ctx)

	require.NoError(t, err)
	assert.Equal(t, roles, got)
}
