package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docket/internal/domain"
	"docket/internal/metrics"
	"docket/internal/port"
)

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	Completed []uuid.UUID `json:"completed"`
	Failed    []uuid.UUID `json:"failed"`
	Skipped   []uuid.UUID `json:"skipped"`
}

// TransferReconciler retries the file step of transfers whose database half
// committed but whose file operation did not finish.
type TransferReconciler interface {
	// ListIncomplete returns incomplete markers and pending markers older than
	// the configured staleness window.
	ListIncomplete(ctx context.Context, limit int) ([]domain.TransferMarker, error)
	Reconcile(ctx context.Context, limit int) (*ReconcileReport, error)
	ReconcileMarker(ctx context.Context, markerID uuid.UUID) (*domain.TransferMarker, error)
}

type transferReconciler struct {
	markerRepo port.TransferMarkerRepository
	locker     port.DocumentLocker
	files      port.FileStore
	staleAfter time.Duration
	now        func() time.Time
}

// NewTransferReconciler creates a new TransferReconciler.
func NewTransferReconciler(
	markerRepo port.TransferMarkerRepository,
	locker port.DocumentLocker,
	files port.FileStore,
	staleAfter time.Duration,
) TransferReconciler {
	return &transferReconciler{
		markerRepo: markerRepo,
		locker:     locker,
		files:      files,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (r *transferReconciler) ListIncomplete(ctx context.Context, limit int) ([]domain.TransferMarker, error) {
	now := r.now().UTC()
	incomplete, err := r.markerRepo.ListByStatus(ctx, domain.TransferStatusIncomplete, now, limit)
	if err != nil {
		return nil, err
	}
	stale, err := r.markerRepo.ListByStatus(ctx, domain.TransferStatusPending, now.Add(-r.staleAfter), limit)
	if err != nil {
		return nil, err
	}

	markers := append(incomplete, stale...)
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].UpdatedAt.Before(markers[j].UpdatedAt)
	})
	if limit > 0 && len(markers) > limit {
		markers = markers[:limit]
	}
	return markers, nil
}

func (r *transferReconciler) Reconcile(ctx context.Context, limit int) (*ReconcileReport, error) {
	markers, err := r.ListIncomplete(ctx, limit)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	for i := range markers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		m := &markers[i]
		err := r.reconcile(ctx, m)
		switch {
		case err == nil:
			report.Completed = append(report.Completed, m.ID)
		case errors.Is(err, domain.ErrDocumentLocked):
			report.Skipped = append(report.Skipped, m.ID)
		default:
			report.Failed = append(report.Failed, m.ID)
		}
	}

	logrus.WithFields(logrus.Fields{
		"completed": len(report.Completed),
		"failed":    len(report.Failed),
		"skipped":   len(report.Skipped),
	}).Info("transferReconciler.Reconcile: pass finished")
	return report, nil
}

func (r *transferReconciler) ReconcileMarker(ctx context.Context, markerID uuid.UUID) (*domain.TransferMarker, error) {
	m, err := r.markerRepo.GetByID(ctx, markerID)
	if err != nil {
		return nil, err
	}
	if m.Status == domain.TransferStatusCompleted {
		return m, nil
	}
	if err := r.reconcile(ctx, m); err != nil {
		return m, err
	}
	return r.markerRepo.GetByID(ctx, markerID)
}

// reconcile retries one marker's file step. It is idempotent: a file already
// at its destination counts as done.
func (r *transferReconciler) reconcile(ctx context.Context, m *domain.TransferMarker) error {
	log := logrus.WithFields(logrus.Fields{
		"op_id":       m.OperationID,
		"marker_id":   m.ID,
		"operation":   m.Operation,
		"document_id": m.DocumentID,
	})

	release, err := r.locker.TryLock(ctx, m.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentLocked) {
			metrics.ReconciledMarkers.WithLabelValues(metrics.OutcomeLocked).Inc()
			log.Info("transferReconciler: document locked, skipping")
		}
		return err
	}
	defer release()

	if err := r.retry(ctx, m); err != nil {
		metrics.ReconciledMarkers.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.WithError(err).Warn("transferReconciler: retry failed")
		if uerr := r.markerRepo.UpdateStatus(context.WithoutCancel(ctx), m.ID, domain.TransferStatusIncomplete, err.Error()); uerr != nil {
			log.WithError(uerr).Error("transferReconciler: updating marker failed")
		}
		return err
	}

	if err := r.markerRepo.UpdateStatus(context.WithoutCancel(ctx), m.ID, domain.TransferStatusCompleted, ""); err != nil {
		return err
	}
	metrics.ReconciledMarkers.WithLabelValues(metrics.OutcomeOK).Inc()
	log.Info("transferReconciler: marker completed")
	return nil
}

func (r *transferReconciler) retry(ctx context.Context, m *domain.TransferMarker) error {
	dstExists, err := r.files.Exists(ctx, m.DestinationPath)
	if err != nil {
		return err
	}
	srcExists, err := r.files.Exists(ctx, m.SourcePath)
	if err != nil {
		return err
	}

	switch m.Operation {
	case domain.TransferMove:
		if dstExists && !srcExists {
			return nil
		}
		if !srcExists {
			return fmt.Errorf("%w: source %s is missing", domain.ErrFilesystem, m.SourcePath)
		}
		if dstExists {
			return r.finishMove(ctx, m)
		}
		if err := r.files.EnsureDirectory(ctx, m.TargetMatterID); err != nil {
			return err
		}
		return r.files.Move(ctx, m.SourcePath, m.DestinationPath)
	default:
		if dstExists {
			return nil
		}
		if !srcExists {
			return fmt.Errorf("%w: source %s is missing", domain.ErrFilesystem, m.SourcePath)
		}
		if err := r.files.EnsureDirectory(ctx, m.TargetMatterID); err != nil {
			return err
		}
		return r.files.Copy(ctx, m.SourcePath, m.DestinationPath)
	}
}

// finishMove handles a move that copied but never removed its source. The
// source is dropped only when both objects have the same size.
func (r *transferReconciler) finishMove(ctx context.Context, m *domain.TransferMarker) error {
	srcSize, err := r.files.Size(ctx, m.SourcePath)
	if err != nil {
		return err
	}
	dstSize, err := r.files.Size(ctx, m.DestinationPath)
	if err != nil {
		return err
	}
	if srcSize != dstSize {
		return fmt.Errorf("%w: both %s (%d bytes) and %s (%d bytes) exist",
			domain.ErrFilesystem, m.SourcePath, srcSize, m.DestinationPath, dstSize)
	}
	if err := r.files.Remove(ctx, m.SourcePath); err != nil {
		return fmt.Errorf("%w: removing moved source: %w", domain.ErrFilesystem, err)
	}
	return nil
}
