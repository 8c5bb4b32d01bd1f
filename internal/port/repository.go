package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docket/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
}

// MatterRepository defines the contract for matter persistence.
type MatterRepository interface {
	Create(ctx context.Context, matter *domain.Matter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error)
	GetByDescription(ctx context.Context, description string) (*domain.Matter, error)
	List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error)
	Update(ctx context.Context, matter *domain.Matter) error
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByMatter(ctx context.Context, matterID uuid.UUID, includeDeleted bool, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
	UpdateMatter(ctx context.Context, documentID, matterID uuid.UUID) error
}

// RevisionRepository defines the contract for revision persistence.
// ListByDocument returns revisions in insertion order.
type RevisionRepository interface {
	Create(ctx context.Context, rev *domain.Revision) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error)
	NextRevisionNumber(ctx context.Context, documentID uuid.UUID) (int, error)
	Update(ctx context.Context, rev *domain.Revision) error
}

// ActivityRepository reads the seeded activity catalog.
type ActivityRepository interface {
	List(ctx context.Context) ([]domain.Activity, error)
	GetByFamilyAndName(ctx context.Context, family domain.ActivityFamily, name domain.ActivityName) (*domain.Activity, error)
}

// ActivityRecordRepository persists immutable activity-user records.
type ActivityRecordRepository interface {
	// AttachExisting verifies that the shared activity and user rows are already
	// persisted and holds them for the rest of the transaction. It never inserts.
	AttachExisting(ctx context.Context, activity *domain.Activity, user *domain.User) error
	// Exists reports whether the subject entity of the given kind is persisted.
	Exists(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID) (bool, error)
	Create(ctx context.Context, rec *domain.ActivityRecord) error
	ListBySubject(ctx context.Context, kind domain.AuditKind, subjectID uuid.UUID, offset, limit int) ([]domain.ActivityRecordView, int, error)
	// ListTransfers returns From and To records naming the document, oldest first.
	ListTransfers(ctx context.Context, documentID uuid.UUID) ([]domain.ActivityRecordView, error)
}

// TransferMarkerRepository persists staged transfer file operations.
type TransferMarkerRepository interface {
	Create(ctx context.Context, marker *domain.TransferMarker) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferMarker, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus, lastErr string) error
	// ListByStatus returns markers in status last updated before olderThan, oldest first.
	ListByStatus(ctx context.Context, status domain.TransferStatus, olderThan time.Time, limit int) ([]domain.TransferMarker, error)
}
