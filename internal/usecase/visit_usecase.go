package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/metrics"
)

// VisitRecorder runs the visit flow: classify the visit, bump the page
// counter for non-owners, and attribute tags when the visit is new or the
// page changed.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, pageUID, userUID string) (entity.VisitResult, error)
}

type visitUseCase struct {
	pages   PageService
	history HistoryTracker
	ledger  Ledger
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewVisitRecorder creates a new VisitRecorder.
func NewVisitRecorder(pages PageService, history HistoryTracker, ledger Ledger, log *zap.Logger, m *metrics.Metrics) VisitRecorder {
	return &visitUseCase{pages: pages, history: history, ledger: ledger, log: log.Named("visits"), metrics: m}
}

// RecordVisit returns ErrNoDataTags when the visit should have been recorded
// but the page carries no tags. The history row is updated regardless.
// Owner visits leave the page counters and the ledger untouched.
func (uc *visitUseCase) RecordVisit(ctx context.Context, pageUID, userUID string) (entity.VisitResult, error) {
	result, err := uc.history.UpdateHistory(ctx, pageUID, userUID)
	if err != nil {
		return "", err
	}
	uc.metrics.IncVisit(string(result))
	if result == entity.VisitPageOwner {
		return result, nil
	}

	if err := uc.pages.CountVisit(ctx, pageUID); err != nil {
		return "", err
	}

	if !result.TriggersRecording() {
		return result, nil
	}
	if err := uc.ledger.RecordForUser(ctx, pageUID, userUID); err != nil {
		uc.log.Debug("Visit not recorded in ledger", zap.String("page_uid", pageUID), zap.String("result", string(result)), zap.Error(err))
		return result, err
	}
	return result, nil
}
