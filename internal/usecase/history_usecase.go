package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
	"github.com/fullstack0516/express-digital-asset-backend/internal/repository"
	"github.com/fullstack0516/express-digital-asset-backend/pkg/utils"
)

// HistoryTracker classifies a user's visit to a page and updates the stored history.
type HistoryTracker interface {
	UpdateHistory(ctx context.Context, pageUID, userUID string) (entity.VisitResult, error)
}

type historyUseCase struct {
	pages   repository.PageRepository
	history repository.PageHistoryRepository
	clock   Clock
	log     *zap.Logger
}

// NewHistoryTracker creates a new HistoryTracker.
func NewHistoryTracker(
	pages repository.PageRepository,
	history repository.PageHistoryRepository,
	clock Clock,
	log *zap.Logger,
) HistoryTracker {
	return &historyUseCase{pages: pages, history: history, clock: clock, log: log.Named("history")}
}

func (uc *historyUseCase) UpdateHistory(ctx context.Context, pageUID, userUID string) (entity.VisitResult, error) {
	page, err := loadPage(ctx, uc.pages, pageUID)
	if err != nil {
		return "", err
	}
	if page.PageOwner == userUID {
		return entity.VisitPageOwner, nil
	}

	now := uc.clock.now()
	existing, err := uc.history.FindByUserAndPage(ctx, userUID, pageUID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		row := &entity.PageHistory{
			UID:                utils.NewUID(),
			UserUID:            userUID,
			PageUID:            pageUID,
			NumberOfVisits:     1,
			CreatedIso:         now,
			LastUpdateIso:      now,
			LastPagePublishIso: page.LastPublishIso,
		}
		if err := uc.history.Create(ctx, row); err != nil {
			return "", fmt.Errorf("failed to create page history: %w", err)
		}
		return entity.VisitCreatedNew, nil
	case err != nil:
		return "", fmt.Errorf("failed to load page history: %w", err)
	}

	if entity.SamePublishInstant(existing.LastPagePublishIso, page.LastPublishIso) {
		if err := uc.history.RecordRevisit(ctx, existing.UID, now, nil); err != nil {
			return "", fmt.Errorf("failed to update page history %s: %w", existing.UID, err)
		}
		return entity.VisitUpdated, nil
	}

	if err := uc.history.RecordRevisit(ctx, existing.UID, now, page.LastPublishIso); err != nil {
		return "", fmt.Errorf("failed to update page history %s: %w", existing.UID, err)
	}
	uc.log.Debug("Page changed since last visit", zap.String("page_uid", pageUID), zap.String("user_uid", userUID))
	return entity.VisitPageChanged, nil
}
