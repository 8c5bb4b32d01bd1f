package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
	"docket/internal/handler"
	"docket/internal/service"
	"docket/mocks"
)

func TestUserHandler_Create(t *testing.T) {
	svc := new(mocks.MockUserService)
	h := handler.NewUserHandler(svc)
	svc.On("Create", mock.Anything, &service.CreateUserInput{Name: "Dana Reyes"}).
		Return(&domain.User{ID: uuid.New(), Name: "Dana Reyes"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/users", map[string]string{"name": "Dana Reyes"})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_Create_MissingName(t *testing.T) {
	svc := new(mocks.MockUserService)
	h := handler.NewUserHandler(svc)

	c, w := newContext(http.MethodPost, "/api/v1/users", map[string]string{})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
