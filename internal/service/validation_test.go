package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	"docket/internal/service"
	"docket/mocks"
)

func newValidator() (service.ResourceValidator, *mocks.MockMatterRepo, *mocks.MockDocumentRepo, *mocks.MockRevisionRepo) {
	matterRepo := new(mocks.MockMatterRepo)
	docRepo := new(mocks.MockDocumentRepo)
	revRepo := new(mocks.MockRevisionRepo)
	return service.NewResourceValidator(matterRepo, docRepo, revRepo), matterRepo, docRepo, revRepo
}

func TestValidateGuid(t *testing.T) {
	v, _, _, _ := newValidator()

	assert.NoError(t, v.ValidateGuid("matterId", uuid.New()))

	err := v.ValidateGuid("matterId", uuid.Nil)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "matterId", ve.Field)
}

func TestValidateStringNotEmpty(t *testing.T) {
	v, _, _, _ := newValidator()

	assert.NoError(t, v.ValidateStringNotEmpty("description", "Smith v. Jones"))
	assert.ErrorIs(t, v.ValidateStringNotEmpty("description", "   "), domain.ErrValidation)
	assert.ErrorIs(t, v.ValidateStringNotEmpty("description", ""), domain.ErrValidation)
}

func TestValidateNotNull(t *testing.T) {
	v, _, _, _ := newValidator()

	assert.NoError(t, v.ValidateNotNull("actor", testActor()))
	assert.ErrorIs(t, v.ValidateNotNull("actor", nil), domain.ErrValidation)
}

func TestValidateMatterExists_NilIDSkipsRepo(t *testing.T) {
	v, matterRepo, _, _ := newValidator()

	_, err := v.ValidateMatterExists(context.Background(), uuid.Nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	matterRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestValidateDocumentExists_NotFound(t *testing.T) {
	v, _, docRepo, _ := newValidator()
	id := uuid.New()
	docRepo.On("GetByID", context.Background(), id).Return(nil, domain.ErrDocumentNotFound)

	_, err := v.ValidateDocumentExists(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateDocumentInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input service.CreateDocumentInput
		field string
	}{
		{"nil matter", service.CreateDocumentInput{FileName: "brief", Extension: "pdf"}, "matter_id"},
		{"blank file name", service.CreateDocumentInput{MatterID: uuid.New(), FileName: "  ", Extension: "pdf"}, "file_name"},
		{"separator in file name", service.CreateDocumentInput{MatterID: uuid.New(), FileName: "a/b", Extension: "pdf"}, "file_name"},
		{"traversal extension", service.CreateDocumentInput{MatterID: uuid.New(), FileName: "brief", Extension: "../x"}, "extension"},
		{"missing extension", service.CreateDocumentInput{MatterID: uuid.New(), FileName: "brief"}, "extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			err := in.Validate()

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	ok := service.CreateDocumentInput{MatterID: uuid.New(), FileName: " brief ", Extension: "pdf"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "brief", ok.FileName)
}
