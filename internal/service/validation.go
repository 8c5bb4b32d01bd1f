package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/port"
	"docket/internal/storage"
)

const (
	maxDescriptionLength = 500
	maxFileNameLength    = 255
	maxExtensionLength   = 32
)

var fileNamePattern = regexp.MustCompile(`^[^/\\]+$`)

// ResourceValidator checks preconditions before a mutation. Existence checks
// return the loaded entity so callers do not fetch it twice.
type ResourceValidator interface {
	ValidateMatterExists(ctx context.Context, id uuid.UUID) (*domain.Matter, error)
	ValidateDocumentExists(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ValidateRevisionExists(ctx context.Context, id uuid.UUID) (*domain.Revision, error)
	ValidateNotNull(field string, value interface{}) error
	ValidateGuid(field string, id uuid.UUID) error
	ValidateStringNotEmpty(field, value string) error
}

type resourceValidator struct {
	matterRepo   port.MatterRepository
	documentRepo port.DocumentRepository
	revisionRepo port.RevisionRepository
}

// NewResourceValidator creates a new ResourceValidator.
func NewResourceValidator(
	matterRepo port.MatterRepository,
	documentRepo port.DocumentRepository,
	revisionRepo port.RevisionRepository,
) ResourceValidator {
	return &resourceValidator{
		matterRepo:   matterRepo,
		documentRepo: documentRepo,
		revisionRepo: revisionRepo,
	}
}

func (v *resourceValidator) ValidateMatterExists(ctx context.Context, id uuid.UUID) (*domain.Matter, error) {
	if err := v.ValidateGuid("matterId", id); err != nil {
		return nil, err
	}
	return v.matterRepo.GetByID(ctx, id)
}

func (v *resourceValidator) ValidateDocumentExists(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if err := v.ValidateGuid("documentId", id); err != nil {
		return nil, err
	}
	return v.documentRepo.GetByID(ctx, id)
}

func (v *resourceValidator) ValidateRevisionExists(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	if err := v.ValidateGuid("revisionId", id); err != nil {
		return nil, err
	}
	return v.revisionRepo.GetByID(ctx, id)
}

func (v *resourceValidator) ValidateNotNull(field string, value interface{}) error {
	return fieldError(field, validation.Validate(value, validation.NotNil))
}

func (v *resourceValidator) ValidateGuid(field string, id uuid.UUID) error {
	return fieldError(field, validation.Validate(id, notNilUUID))
}

func (v *resourceValidator) ValidateStringNotEmpty(field, value string) error {
	return fieldError(field, validation.Validate(strings.TrimSpace(value), validation.Required))
}

var notNilUUID = validation.By(func(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if !ok {
		return errors.New("must be a uuid")
	}
	if id == uuid.Nil {
		return errors.New("must not be the nil uuid")
	}
	return nil
})

var validExtension = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if _, err := storage.NormalizeExtension(s); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return errors.New(ve.Message)
		}
		return err
	}
	return nil
})

func validateActor(actor *domain.User) error {
	if actor == nil {
		return domain.NewValidationError("actor", "is required")
	}
	if actor.ID == uuid.Nil {
		return domain.NewValidationError("actor", "must have an id")
	}
	return nil
}

// fieldError converts an ozzo error for a single value into a ValidationError.
func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	var ie validation.InternalError
	if errors.As(err, &ie) {
		return fmt.Errorf("validating %s: %w", field, err)
	}
	return domain.NewValidationError(field, err.Error())
}

// structError converts ozzo ValidateStruct errors into a ValidationError for
// the first offending field, in name order.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return fieldError("", err)
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return domain.NewValidationError(fields[0], errs[fields[0]].Error())
}
