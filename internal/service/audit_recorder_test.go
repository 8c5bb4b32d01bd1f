package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	"docket/internal/service"
	"docket/mocks"
)

func TestAuditRecorder_Record(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	ctx := context.Background()
	actor := testActor()
	docID := uuid.New()
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyDocument, Name: domain.ActivitySaved}

	repo.On("Exists", ctx, domain.AuditDocument, docID).Return(true, nil)
	repo.On("AttachExisting", ctx, activity, actor).Return(nil)
	repo.On("Create", ctx, mock.MatchedBy(func(r *domain.ActivityRecord) bool {
		return r.ID != uuid.Nil &&
			r.Kind == domain.AuditDocument &&
			r.SubjectID == docID &&
			r.DocumentID == nil &&
			r.ActivityID == activity.ID &&
			r.UserID == actor.ID &&
			r.CreatedAt.Location() == time.UTC
	})).Return(nil)

	err := rec.Record(ctx, domain.AuditDocument, docID, activity, actor)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuditRecorder_Record_MissingSubjectIsSkipped(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	ctx := context.Background()
	matterID := uuid.New()
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyMatter, Name: domain.ActivityDeleted}

	repo.On("Exists", ctx, domain.AuditMatter, matterID).Return(false, nil)

	err := rec.Record(ctx, domain.AuditMatter, matterID, activity, testActor())

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "AttachExisting", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuditRecorder_Record_RejectsBadArguments(t *testing.T) {
	docActivity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyDocument, Name: domain.ActivityCreated}
	movedActivity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityMoved}

	tests := []struct {
		name     string
		kind     domain.AuditKind
		subject  uuid.UUID
		activity *domain.Activity
		actor    *domain.User
	}{
		{"family mismatch", domain.AuditRevision, uuid.New(), docActivity, testActor()},
		{"transfer kind", domain.AuditMatterDocumentFrom, uuid.New(), movedActivity, testActor()},
		{"unknown kind", domain.AuditKind("folder"), uuid.New(), docActivity, testActor()},
		{"nil subject", domain.AuditDocument, uuid.Nil, docActivity, testActor()},
		{"nil activity", domain.AuditDocument, uuid.New(), nil, testActor()},
		{"nil actor", domain.AuditDocument, uuid.New(), docActivity, nil},
		{"actor without id", domain.AuditDocument, uuid.New(), docActivity, &domain.User{Name: "ghost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockActivityRecordRepo)
			rec := service.NewAuditRecorder(repo)

			err := rec.Record(context.Background(), tt.kind, tt.subject, tt.activity, tt.actor)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuditRecorder_Record_AttachFailure(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	ctx := context.Background()
	actor := testActor()
	revID := uuid.New()
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyRevision, Name: domain.ActivityCreated}

	repo.On("Exists", ctx, domain.AuditRevision, revID).Return(true, nil)
	repo.On("AttachExisting", ctx, activity, actor).Return(domain.ErrUserNotFound)

	err := rec.Record(ctx, domain.AuditRevision, revID, activity, actor)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuditRecorder_RecordTransfer(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	ctx := context.Background()
	actor := testActor()
	matterID, docID := uuid.New(), uuid.New()
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityCopied}

	repo.On("Exists", ctx, domain.AuditMatterDocumentTo, matterID).Return(true, nil)
	repo.On("Exists", ctx, domain.AuditDocument, docID).Return(true, nil)
	repo.On("AttachExisting", ctx, activity, actor).Return(nil)
	repo.On("Create", ctx, mock.MatchedBy(func(r *domain.ActivityRecord) bool {
		return r.Kind == domain.AuditMatterDocumentTo &&
			r.SubjectID == matterID &&
			r.DocumentID != nil && *r.DocumentID == docID &&
			r.ActivityID == activity.ID
	})).Return(nil)

	err := rec.RecordTransfer(ctx, domain.DirectionTo, matterID, docID, activity, actor)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuditRecorder_RecordTransfer_RequiresMatterDocumentActivity(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyDocument, Name: domain.ActivitySaved}

	err := rec.RecordTransfer(context.Background(), domain.DirectionFrom, uuid.New(), uuid.New(), activity, testActor())

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditRecorder_RecordTransfer_UnknownDirection(t *testing.T) {
	repo := new(mocks.MockActivityRecordRepo)
	rec := service.NewAuditRecorder(repo)
	activity := &domain.Activity{ID: uuid.New(), Family: domain.FamilyMatterDocument, Name: domain.ActivityMoved}

	for _, direction := range []domain.TransferDirection{"", "sideways"} {
		err := rec.RecordTransfer(context.Background(), direction, uuid.New(), uuid.New(), activity, testActor())

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "direction", ve.Field)
	}
	repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
