package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/metrics"
)

type parentOpKey struct{}

// withParentOperation marks ctx as running inside the operation parentID.
// Lifecycle calls started from it leave their outcome to the parent, which
// owns the transaction they commit in.
func withParentOperation(ctx context.Context, parentID uuid.UUID) context.Context {
	return context.WithValue(ctx, parentOpKey{}, parentID)
}

func parentOperation(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(parentOpKey{}).(uuid.UUID)
	return id, ok
}

// operation carries the log context for one lifecycle call.
type operation struct {
	name    string
	id      uuid.UUID
	nested  bool
	started time.Time
	log     *logrus.Entry
}

func startOperation(ctx context.Context, name string, actor *domain.User, fields logrus.Fields) *operation {
	op := &operation{name: name, id: uuid.New(), started: time.Now()}
	entry := logrus.WithFields(fields).WithFields(logrus.Fields{
		"op_id":     op.id,
		"operation": name,
	})
	if parentID, ok := parentOperation(ctx); ok {
		op.nested = true
		entry = entry.WithField("parent_op_id", parentID)
	}
	if actor != nil {
		entry = entry.WithField("actor_id", actor.ID)
	}
	op.log = entry
	op.log.Debug(name + ": started")
	return op
}

func (o *operation) with(key string, value interface{}) {
	o.log = o.log.WithField(key, value)
}

// finish logs the outcome and records the lifecycle metric. It returns err
// unchanged so callers can `return op.finish(err)`. A nested operation only
// logs at debug and records nothing; its parent may still roll back.
func (o *operation) finish(err error) error {
	entry := o.log.WithField("elapsed", time.Since(o.started))
	if o.nested {
		entry.WithError(err).Debug(o.name + ": finished within parent operation")
		return err
	}
	switch {
	case err == nil:
		entry.Info(o.name + ": ok")
	case isExpected(err):
		entry.WithError(err).Warn(o.name + ": rejected")
	default:
		entry.WithError(err).Error(o.name + ": failed")
	}
	metrics.ObserveLifecycle(o.name, err)
	return err
}

// isExpected reports whether err is a precondition failure rather than a fault.
func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateMatter) ||
		errors.Is(err, domain.ErrNoRevisions) ||
		errors.Is(err, domain.ErrDocumentNotInMatter) ||
		errors.Is(err, domain.ErrSameMatter) ||
		errors.Is(err, domain.ErrDocumentLocked)
}
