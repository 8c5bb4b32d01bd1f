package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docket/internal/domain"
	"docket/internal/handler"
	"docket/internal/service"
	"docket/mocks"
)

func newMatterHandler() (*handler.MatterHandler, *mocks.MockMatterService) {
	mockSvc := new(mocks.MockMatterService)
	return handler.NewMatterHandler(mockSvc), mockSvc
}

func TestMatterHandler_Create_Success(t *testing.T) {
	h, mockSvc := newMatterHandler()
	actor := testActor()
	expected := &domain.Matter{ID: uuid.New(), Description: "Smith v. Jones"}

	mockSvc.On("Create", mock.Anything, actor, mock.MatchedBy(func(in *service.CreateMatterInput) bool {
		return in.Description == "Smith v. Jones"
	})).Return(expected, nil)

	c, w := newContext(http.MethodPost, "/api/v1/matters", map[string]string{"description": "Smith v. Jones"})
	setActor(c, actor)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(w).Success)
	mockSvc.AssertExpectations(t)
}

func TestMatterHandler_Create_NoActor(t *testing.T) {
	h, mockSvc := newMatterHandler()

	c, w := newContext(http.MethodPost, "/api/v1/matters", map[string]string{"description": "Doe"})

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatterHandler_Create_MissingDescription(t *testing.T) {
	h, _ := newMatterHandler()

	c, w := newContext(http.MethodPost, "/api/v1/matters", map[string]string{})
	setActor(c, testActor())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(w).Error.Code)
}

func TestMatterHandler_Create_Duplicate(t *testing.T) {
	h, mockSvc := newMatterHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*service.CreateMatterInput")).
		Return(nil, domain.ErrDuplicateMatter)

	c, w := newContext(http.MethodPost, "/api/v1/matters", map[string]string{"description": "Doe"})
	setActor(c, testActor())

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_MATTER", decode(w).Error.Code)
}

func TestMatterHandler_List(t *testing.T) {
	h, mockSvc := newMatterHandler()
	matters := []domain.Matter{{ID: uuid.New(), Description: "Doe"}}
	mockSvc.On("List", mock.Anything, true, 10, 5).Return(matters, 11, nil)

	c, w := newContext(http.MethodGet, "/api/v1/matters?include_deleted=true&offset=10&limit=5", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(w)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestMatterHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newMatterHandler()

	c, w := newContext(http.MethodGet, "/api/v1/matters/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatterHandler_Restore(t *testing.T) {
	h, mockSvc := newMatterHandler()
	actor := testActor()
	id := uuid.New()
	mockSvc.On("Restore", mock.Anything, actor, id).Return(&domain.Matter{ID: id}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/matters/"+id.String()+"/restore", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActor(c, actor)

	h.Restore(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestMatterHandler_Delete_NotFound(t *testing.T) {
	h, mockSvc := newMatterHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, mock.Anything, id).Return(nil, domain.ErrMatterNotFound)

	c, w := newContext(http.MethodDelete, "/api/v1/matters/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActor(c, testActor())

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
