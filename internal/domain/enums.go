package domain

// ActivityFamily scopes an activity to the kind of entity it applies to.
type ActivityFamily string

const (
	FamilyMatter         ActivityFamily = "matter"
	FamilyDocument       ActivityFamily = "document"
	FamilyRevision       ActivityFamily = "revision"
	FamilyMatterDocument ActivityFamily = "matter_document"
)

// ActivityName is one of the catalog verbs.
type ActivityName string

const (
	ActivityCreated    ActivityName = "CREATED"
	ActivitySaved      ActivityName = "SAVED"
	ActivityDeleted    ActivityName = "DELETED"
	ActivityCheckedOut ActivityName = "CHECKED OUT"
	ActivityCheckedIn  ActivityName = "CHECKED IN"
	ActivityRestored   ActivityName = "RESTORED"
	ActivityMoved      ActivityName = "MOVED"
	ActivityCopied     ActivityName = "COPIED"
	ActivityViewed     ActivityName = "VIEWED"
)

// ValidActivityNames is the closed set of catalog verbs.
var ValidActivityNames = map[ActivityName]bool{
	ActivityCreated:    true,
	ActivitySaved:      true,
	ActivityDeleted:    true,
	ActivityCheckedOut: true,
	ActivityCheckedIn:  true,
	ActivityRestored:   true,
	ActivityMoved:      true,
	ActivityCopied:     true,
	ActivityViewed:     true,
}

// AuditKind identifies which activity-user record set a record belongs to.
type AuditKind string

const (
	AuditMatter             AuditKind = "matter"
	AuditDocument           AuditKind = "document"
	AuditRevision           AuditKind = "revision"
	AuditMatterDocumentFrom AuditKind = "matter_document_from"
	AuditMatterDocumentTo   AuditKind = "matter_document_to"
)

// Family returns the activity family records of this kind reference.
func (k AuditKind) Family() ActivityFamily {
	switch k {
	case AuditMatter:
		return FamilyMatter
	case AuditDocument:
		return FamilyDocument
	case AuditRevision:
		return FamilyRevision
	case AuditMatterDocumentFrom, AuditMatterDocumentTo:
		return FamilyMatterDocument
	default:
		return ""
	}
}

// IsTransfer reports whether k is one half of a cross-matter transfer record.
func (k AuditKind) IsTransfer() bool {
	return k == AuditMatterDocumentFrom || k == AuditMatterDocumentTo
}

// TransferDirection selects the From or To half of a transfer record.
type TransferDirection string

const (
	DirectionFrom TransferDirection = "from"
	DirectionTo   TransferDirection = "to"
)

// Kind returns the audit kind for the direction, or "" for an unknown direction.
func (d TransferDirection) Kind() AuditKind {
	switch d {
	case DirectionFrom:
		return AuditMatterDocumentFrom
	case DirectionTo:
		return AuditMatterDocumentTo
	default:
		return ""
	}
}

// TransferOp is the requested cross-matter operation.
type TransferOp string

const (
	TransferMove TransferOp = "move"
	TransferCopy TransferOp = "copy"
)

// ValidTransferOps is the closed set of transfer operations.
var ValidTransferOps = map[TransferOp]bool{
	TransferMove: true,
	TransferCopy: true,
}

// Activity returns the matter-document catalog verb recorded for the operation.
func (o TransferOp) Activity() ActivityName {
	if o == TransferMove {
		return ActivityMoved
	}
	return ActivityCopied
}

// TransferStatus is the lifecycle of a staged file operation.
type TransferStatus string

const (
	TransferStatusPending    TransferStatus = "pending"
	TransferStatusCompleted  TransferStatus = "completed"
	TransferStatusIncomplete TransferStatus = "incomplete"
)
