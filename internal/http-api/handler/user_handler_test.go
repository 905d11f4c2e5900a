package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/http-api/dto"
	"recipehub/internal/http-api/handler"
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id, viewerID string) (*service.UserProfile, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserProfile), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, page, pageSize int, viewerID string) ([]service.UserProfile, int64, error) {
	args := m.Called(ctx, page, pageSize, viewerID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]service.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) SetAvatar(ctx context.Context, userID, imageData string) (string, error) {
	args := m.Called(ctx, userID, imageData)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) DeleteAvatar(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*service.AuthorProfile, error) {
	args := m.Called(ctx, userID, authorID, recipesLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthorProfile), args.Error(1)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockSubscriptionService) List(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]service.AuthorProfile, int64, error) {
	args := m.Called(ctx, userID, page, pageSize, recipesLimit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]service.AuthorProfile), args.Get(1).(int64), args.Error(2)
}

const authorID = "22222222-2222-2222-2222-222222222222"

func setupUserRouter(viewerID string) (*gin.Engine, *MockUserService, *MockSubscriptionService) {
	gin.SetMode(gin.TestMode)
	users := new(MockUserService)
	subs := new(MockSubscriptionService)
	h := handler.NewUserHandler(users, subs, 6, 100)

	r := gin.New()
	identity := asUser(viewerID, "user")
	h.RegisterRoutes(r.Group("/api/users"), identity, identity)
	return r, users, subs
}

func sampleProfile() *service.UserProfile {
	return &service.UserProfile{
		User: models.User{
			ID:        authorID,
			Email:     "anna@example.com",
			Username:  "chef_anna",
			FirstName: "Anna",
			LastName:  "Smith",
		},
		IsSubscribed: true,
	}
}

func TestUserMe(t *testing.T) {
	r, users, _ := setupUserRouter(testViewerID)

	profile := sampleProfile()
	profile.User.ID = testViewerID
	profile.IsSubscribed = false
	users.On("GetByID", mock.Anything, testViewerID, testViewerID).Return(profile, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, testViewerID, body.ID)
	assert.Equal(t, "chef_anna", body.Username)
	users.AssertExpectations(t)
}

func TestUserGet_NotFound(t *testing.T) {
	r, users, _ := setupUserRouter("")

	users.On("GetByID", mock.Anything, "nope", "").Return(nil, service.ErrUserNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/users/nope", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserSubscribe_Created(t *testing.T) {
	r, _, subs := setupUserRouter(testViewerID)

	subs.On("Subscribe", mock.Anything, testViewerID, authorID, 2).
		Return(&service.AuthorProfile{
			User:         sampleProfile().User,
			IsSubscribed: true,
			Recipes:      []models.Recipe{{ID: 1, Name: "Pancakes"}},
			RecipesCount: 5,
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/users/"+authorID+"/subscribe?recipes_limit=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body dto.AuthorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.IsSubscribed)
	assert.EqualValues(t, 5, body.RecipesCount)
	require.Len(t, body.Recipes, 1)
	assert.Equal(t, "Pancakes", body.Recipes[0].Name)
	subs.AssertExpectations(t)
}

func TestUserSubscribe_Self(t *testing.T) {
	r, _, subs := setupUserRouter(testViewerID)

	subs.On("Subscribe", mock.Anything, testViewerID, testViewerID, 0).
		Return(nil, service.ErrSelfSubscription)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/users/"+testViewerID+"/subscribe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserUnsubscribe_NotSubscribed(t *testing.T) {
	r, _, subs := setupUserRouter(testViewerID)

	subs.On("Unsubscribe", mock.Anything, testViewerID, authorID).
		Return(service.ErrNotSubscribed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/users/"+authorID+"/subscribe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserSubscriptions_List(t *testing.T) {
	r, _, subs := setupUserRouter(testViewerID)

	subs.On("List", mock.Anything, testViewerID, 1, 6, 0).
		Return([]service.AuthorProfile{{User: sampleProfile().User, IsSubscribed: true}}, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/users/subscriptions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.SubscriptionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "chef_anna", body.Items[0].Username)
}

func TestUserAvatar_Put(t *testing.T) {
	r, users, _ := setupUserRouter(testViewerID)

	users.On("SetAvatar", mock.Anything, testViewerID, "data:image/png;base64,aGVsbG8=").
		Return("media/avatar.png", nil)

	w := putJSON(r, "/api/users/me/avatar", dto.AvatarRequest{Avatar: "data:image/png;base64,aGVsbG8="})

	assert.Equal(t, http.StatusOK, w.Code)

	var body dto.AvatarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "media/avatar.png", body.Avatar)
}

func TestUserAvatar_Delete(t *testing.T) {
	r, users, _ := setupUserRouter(testViewerID)

	users.On("DeleteAvatar", mock.Anything, testViewerID).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/users/me/avatar", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
