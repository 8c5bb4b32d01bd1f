package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/port"
)

// CreateMatterInput is the DTO for creating a matter.
type CreateMatterInput struct {
	Description string `json:"description"`
}

// UpdateMatterInput is the DTO for updating a matter.
type UpdateMatterInput struct {
	Description string `json:"description"`
}

func validateDescription(description *string) error {
	*description = strings.TrimSpace(*description)
	return fieldError("description", validation.Validate(*description,
		validation.Required,
		validation.RuneLength(1, maxDescriptionLength),
	))
}

// MatterService defines the matter lifecycle contract.
type MatterService interface {
	Create(ctx context.Context, actor *domain.User, input *CreateMatterInput) (*domain.Matter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error)
	List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input *UpdateMatterInput) (*domain.Matter, error)
	Archive(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error)
	// Restore clears both the deleted and archived flags.
	Restore(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error)
}

type matterService struct {
	txm        port.TransactionManager
	matterRepo port.MatterRepository
	validator  ResourceValidator
	catalog    port.ActivityCatalog
	audit      AuditRecorder
}

// NewMatterService creates a new MatterService implementation.
func NewMatterService(
	txm port.TransactionManager,
	matterRepo port.MatterRepository,
	validator ResourceValidator,
	catalog port.ActivityCatalog,
	audit AuditRecorder,
) MatterService {
	return &matterService{
		txm:        txm,
		matterRepo: matterRepo,
		validator:  validator,
		catalog:    catalog,
		audit:      audit,
	}
}

func (s *matterService) Create(ctx context.Context, actor *domain.User, input *CreateMatterInput) (*domain.Matter, error) {
	op := startOperation(ctx, "create_matter", actor, nil)
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if input == nil {
		return nil, op.finish(domain.NewValidationError("input", "is required"))
	}
	if err := validateDescription(&input.Description); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyMatter, domain.ActivityCreated)
	if err != nil {
		return nil, op.finish(err)
	}

	matter := &domain.Matter{Description: input.Description}
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUniqueDescription(ctx, input.Description, uuid.Nil); err != nil {
			return err
		}
		if err := s.matterRepo.Create(ctx, matter); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.AuditMatter, matter.ID, activity, actor)
	})
	if err != nil {
		return nil, op.finish(err)
	}
	op.with("matter_id", matter.ID)
	return matter, op.finish(nil)
}

func (s *matterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Matter, error) {
	return s.validator.ValidateMatterExists(ctx, id)
}

func (s *matterService) List(ctx context.Context, includeDeleted bool, offset, limit int) ([]domain.Matter, int, error) {
	return s.matterRepo.List(ctx, includeDeleted, offset, limit)
}

func (s *matterService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input *UpdateMatterInput) (*domain.Matter, error) {
	if input == nil {
		return nil, domain.NewValidationError("input", "is required")
	}
	if err := validateDescription(&input.Description); err != nil {
		return nil, err
	}
	return s.transition(ctx, "update_matter", actor, id, domain.ActivitySaved, func(ctx context.Context, m *domain.Matter) error {
		if err := s.ensureUniqueDescription(ctx, input.Description, m.ID); err != nil {
			return err
		}
		m.Description = input.Description
		return nil
	})
}

func (s *matterService) Archive(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return s.transition(ctx, "archive_matter", actor, id, domain.ActivitySaved, func(_ context.Context, m *domain.Matter) error {
		m.IsArchived = true
		return nil
	})
}

func (s *matterService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return s.transition(ctx, "delete_matter", actor, id, domain.ActivityDeleted, func(_ context.Context, m *domain.Matter) error {
		m.IsDeleted = true
		return nil
	})
}

func (s *matterService) Restore(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Matter, error) {
	return s.transition(ctx, "restore_matter", actor, id, domain.ActivityRestored, func(_ context.Context, m *domain.Matter) error {
		m.IsDeleted = false
		m.IsArchived = false
		return nil
	})
}

// transition loads the matter, applies mutate, saves it and records name, all
// in one transaction.
func (s *matterService) transition(
	ctx context.Context,
	opName string,
	actor *domain.User,
	id uuid.UUID,
	name domain.ActivityName,
	mutate func(ctx context.Context, m *domain.Matter) error,
) (*domain.Matter, error) {
	op := startOperation(ctx, opName, actor, logrus.Fields{"matter_id": id})
	if err := validateActor(actor); err != nil {
		return nil, op.finish(err)
	}
	if err := s.validator.ValidateGuid("matterId", id); err != nil {
		return nil, op.finish(err)
	}
	activity, err := s.catalog.Resolve(domain.FamilyMatter, name)
	if err != nil {
		return nil, op.finish(err)
	}

	var matter *domain.Matter
	err = s.txm.ExecTx(ctx, func(ctx context.Context) error {
		m, err := s.validator.ValidateMatterExists(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(ctx, m); err != nil {
			return err
		}
		if err := s.matterRepo.Update(ctx, m); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, domain.AuditMatter, m.ID, activity, actor); err != nil {
			return err
		}
		matter = m
		return nil
	})
	if err != nil {
		return nil, op.finish(err)
	}
	return matter, op.finish(nil)
}

func (s *matterService) ensureUniqueDescription(ctx context.Context, description string, self uuid.UUID) error {
	existing, err := s.matterRepo.GetByDescription(ctx, description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return domain.ErrDuplicateMatter
	}
	return nil
}
