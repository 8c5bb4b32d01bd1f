package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	"docket/internal/service"
	"docket/mocks"
)

func TestHistoryService_MatterHistory(t *testing.T) {
	matterRepo := new(mocks.MockMatterRepo)
	records := new(mocks.MockActivityRecordRepo)
	svc := service.NewHistoryService(records, service.NewResourceValidator(matterRepo, new(mocks.MockDocumentRepo), new(mocks.MockRevisionRepo)))
	ctx := context.Background()
	matterID := uuid.New()
	views := []domain.ActivityRecordView{{
		ActivityRecord: domain.ActivityRecord{ID: uuid.New(), Kind: domain.AuditMatter, SubjectID: matterID},
		ActivityName:   domain.ActivityCreated,
		UserName:       "Dana Reyes",
	}}

	matterRepo.On("GetByID", ctx, matterID).Return(&domain.Matter{ID: matterID}, nil)
	records.On("ListBySubject", ctx, domain.AuditMatter, matterID, 0, 20).Return(views, 1, nil)

	got, total, err := svc.MatterHistory(ctx, matterID, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, domain.ActivityCreated, got[0].ActivityName)
}

func TestHistoryService_DocumentHistory_NotFound(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	records := new(mocks.MockActivityRecordRepo)
	svc := service.NewHistoryService(records, service.NewResourceValidator(new(mocks.MockMatterRepo), docRepo, new(mocks.MockRevisionRepo)))
	ctx := context.Background()
	docID := uuid.New()

	docRepo.On("GetByID", ctx, docID).Return(nil, domain.ErrDocumentNotFound)

	_, _, err := svc.DocumentHistory(ctx, docID, 0, 20)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	records.AssertNotCalled(t, "ListBySubject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryService_TransferHistory(t *testing.T) {
	docRepo := new(mocks.MockDocumentRepo)
	records := new(mocks.MockActivityRecordRepo)
	svc := service.NewHistoryService(records, service.NewResourceValidator(new(mocks.MockMatterRepo), docRepo, new(mocks.MockRevisionRepo)))
	ctx := context.Background()
	docID := uuid.New()
	from := domain.ActivityRecordView{ActivityRecord: domain.ActivityRecord{Kind: domain.AuditMatterDocumentFrom}, ActivityName: domain.ActivityMoved}
	to := domain.ActivityRecordView{ActivityRecord: domain.ActivityRecord{Kind: domain.AuditMatterDocumentTo}, ActivityName: domain.ActivityMoved}

	docRepo.On("GetByID", ctx, docID).Return(&domain.Document{ID: docID}, nil)
	records.On("ListTransfers", ctx, docID).Return([]domain.ActivityRecordView{from, to}, nil)

	got, err := svc.TransferHistory(ctx, docID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.AuditMatterDocumentFrom, got[0].Kind)
	assert.Equal(t, domain.AuditMatterDocumentTo, got[1].Kind)
}
