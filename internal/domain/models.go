package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an actor that performs audited actions.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Matter is a client/case folder grouping documents.
type Matter struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Description  string    `db:"description" json:"description"`
	IsArchived   bool      `db:"is_archived" json:"is_archived"`
	IsDeleted    bool      `db:"is_deleted" json:"is_deleted"`
	CreationDate time.Time `db:"creation_date" json:"creation_date"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document is a named file belonging to exactly one matter.
type Document struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MatterID     uuid.UUID `db:"matter_id" json:"matter_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	Extension    string    `db:"extension" json:"extension"`
	IsCheckedOut bool      `db:"is_checked_out" json:"is_checked_out"`
	IsDeleted    bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Revision is one numbered content snapshot of a document. Seq is the
// store-assigned insertion order, used to break revision number ties.
type Revision struct {
	ID               uuid.UUID `db:"id" json:"id"`
	DocumentID       uuid.UUID `db:"document_id" json:"document_id"`
	RevisionNumber   int       `db:"revision_number" json:"revision_number"`
	Seq              int64     `db:"seq" json:"-"`
	CreationDate     time.Time `db:"creation_date" json:"creation_date"`
	ModificationDate time.Time `db:"modification_date" json:"modification_date"`
	IsDeleted        bool      `db:"is_deleted" json:"is_deleted"`
}

// Activity is a catalog-defined verb scoped to one family.
type Activity struct {
	ID     uuid.UUID      `db:"id" json:"id"`
	Family ActivityFamily `db:"family" json:"family"`
	Name   ActivityName   `db:"name" json:"name"`
}

// ActivityRecord is an immutable "user U performed activity A on subject S at T"
// fact. SubjectID is the matter, document or revision id for the single-entity
// kinds. For transfer kinds SubjectID is the matter and DocumentID the document
// on that side of the transfer.
type ActivityRecord struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Kind       AuditKind  `db:"kind" json:"kind"`
	SubjectID  uuid.UUID  `db:"subject_id" json:"subject_id"`
	DocumentID *uuid.UUID `db:"document_id" json:"document_id,omitempty"`
	ActivityID uuid.UUID  `db:"activity_id" json:"activity_id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// ActivityRecordView is an ActivityRecord joined with its activity and user
// for history listings.
type ActivityRecordView struct {
	ActivityRecord
	ActivityName ActivityName `db:"activity_name" json:"activity_name"`
	UserName     string       `db:"user_name" json:"user_name"`
}

// TransferMarker stages the filesystem half of a transfer. It is written in the
// same transaction as the database half so an interrupted or failed file
// operation can be found and retried.
type TransferMarker struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	OperationID      uuid.UUID      `db:"operation_id" json:"operation_id"`
	Operation        TransferOp     `db:"operation" json:"operation"`
	DocumentID       uuid.UUID      `db:"document_id" json:"document_id"`
	TargetDocumentID uuid.UUID      `db:"target_document_id" json:"target_document_id"`
	SourceMatterID   uuid.UUID      `db:"source_matter_id" json:"source_matter_id"`
	TargetMatterID   uuid.UUID      `db:"target_matter_id" json:"target_matter_id"`
	SourcePath       string         `db:"source_path" json:"source_path"`
	DestinationPath  string         `db:"destination_path" json:"destination_path"`
	Status           TransferStatus `db:"status" json:"status"`
	LastError        string         `db:"last_error" json:"last_error"`
	Attempts         int            `db:"attempts" json:"attempts"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}
